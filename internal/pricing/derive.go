package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/farmbasket/cart-service/internal/unit"
)

// DerivedPrice carries the price of one canonical unit (one kilogram, one
// piece, one dozen) derived from a product's listed base price.
type DerivedPrice struct {
	PerCanonicalUnit decimal.Decimal
}

// Derive computes the price per canonical unit from a product's base price
// and its normalized unit. For piece and dozen families the base price
// already is the canonical price. For the kg family the base price covers
// BaseAmount kilograms, so ₹100 per 250g derives to ₹400/kg. A zero or
// unset scale factor is treated as 1 so malformed product data can never
// divide by zero.
func Derive(basePrice float64, u unit.NormalizedUnit) DerivedPrice {
	price := decimal.NewFromFloat(basePrice)

	if u.Family != unit.FamilyKg {
		return DerivedPrice{PerCanonicalUnit: price}
	}

	base := u.BaseAmount
	if base <= 0 {
		base = 1
	}
	return DerivedPrice{PerCanonicalUnit: price.Div(decimal.NewFromFloat(base))}
}

// ForQty returns the price of qty canonical units at full precision.
// Rounding is the display layer's job.
func (d DerivedPrice) ForQty(qty float64) decimal.Decimal {
	return d.PerCanonicalUnit.Mul(decimal.NewFromFloat(qty))
}

// PerUnit returns the per-canonical-unit price as a float for storage on a
// cart line, where it stays frozen at add time.
func (d DerivedPrice) PerUnit() float64 {
	return d.PerCanonicalUnit.InexactFloat64()
}

// LineTotal recomputes a cart line's total from its frozen unit price and
// current quantity, using decimal arithmetic to keep money exact.
func LineTotal(unitPrice, qty float64) float64 {
	return decimal.NewFromFloat(unitPrice).
		Mul(decimal.NewFromFloat(qty)).
		InexactFloat64()
}

// Sum adds a series of money amounts without accumulating float error.
func Sum(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	return total.InexactFloat64()
}
