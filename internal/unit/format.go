package unit

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Prices are shown in Indian Rupees everywhere. The digit grouping follows
// the en-IN locale (1,00,000 style above a lakh).
var inr = message.NewPrinter(language.MustParse("en-IN"))

// UnitsDisplay renders a canonical quantity as the human label that also
// keys the cart line variant. Kg-family quantities below 1 are shown in
// grams; at 1kg and above they cross over to kilograms.
func UnitsDisplay(qty float64, family Family) string {
	switch family {
	case FamilyPiece:
		return formatNumber(qty) + " pc"
	case FamilyDozen:
		return formatNumber(qty) + " dz"
	default:
		if qty < 1 {
			return formatNumber(qty*1000) + "g"
		}
		return formatNumber(qty) + "kg"
	}
}

// FormatQuantity renders a cart line's quantity for display, inferring the
// unit family from the line's stored units label. It applies the same
// grams/kilograms crossover as UnitsDisplay: a line holding 1.0 canonical
// kg reads "1kg", never "1000g".
func FormatQuantity(qty float64, unitsDisplay string) string {
	return UnitsDisplay(qty, FamilyOf(unitsDisplay))
}

// FamilyOf recovers the unit family from a units label ("250g", "1kg",
// "2 pc", "1 dz"). Unknown labels fall back to the kg family, mirroring
// Normalize.
func FamilyOf(unitsDisplay string) Family {
	s := strings.ToLower(strings.TrimSpace(unitsDisplay))
	switch {
	case strings.HasSuffix(s, "pc"):
		return FamilyPiece
	case strings.HasSuffix(s, "dz"):
		return FamilyDozen
	default:
		return FamilyKg
	}
}

// FormatCurrency renders a rupee amount with exactly two fractional digits.
// Rounding happens here and only here; all upstream arithmetic keeps full
// precision.
func FormatCurrency(amount float64) string {
	rounded := decimal.NewFromFloat(amount).Round(2).InexactFloat64()
	return inr.Sprintf("₹%.2f", rounded)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
