package http

import (
	"time"

	"github.com/farmbasket/cart-service/internal/catalog"
	"github.com/farmbasket/cart-service/internal/domain"
	"github.com/farmbasket/cart-service/internal/orders"
	"github.com/farmbasket/cart-service/internal/pricing"
	"github.com/farmbasket/cart-service/internal/unit"
)

// ProductView is everything a product card needs: the raw listing plus the
// derived canonical price, the purchase ladder and the stepper increment.
type ProductView struct {
	ID                  string       `json:"id"`
	Name                string       `json:"name"`
	Description         string       `json:"description"`
	ImageURL            string       `json:"image_url"`
	BasePrice           float64      `json:"base_price"`
	BaseUnit            string       `json:"base_unit"`
	UnitFamily          string       `json:"unit_family"`
	PricePerUnit        float64      `json:"price_per_unit"`
	PricePerUnitDisplay string       `json:"price_per_unit_display"`
	Options             []OptionView `json:"options"`
	Step                float64      `json:"step"`
	AvailableQuantity   *float64     `json:"available_quantity,omitempty"`
}

type OptionView struct {
	Label        string  `json:"label"`
	Value        float64 `json:"value"`
	Price        float64 `json:"price"`
	PriceDisplay string  `json:"price_display"`
}

type ProductsResponse struct {
	Products []ProductView `json:"products"`
}

type CartLineView struct {
	ProductID         string  `json:"product_id"`
	ProductName       string  `json:"product_name"`
	UnitsDisplay      string  `json:"units_display"`
	Quantity          float64 `json:"quantity"`
	QuantityDisplay   string  `json:"quantity_display"`
	UnitPrice         float64 `json:"unit_price"`
	UnitPriceDisplay  string  `json:"unit_price_display"`
	TotalPrice        float64 `json:"total_price"`
	TotalPriceDisplay string  `json:"total_price_display"`
	Step              float64 `json:"step"`
}

type CartView struct {
	UserID       string         `json:"user_id"`
	Items        []CartLineView `json:"items"`
	Total        float64        `json:"total"`
	TotalDisplay string         `json:"total_display"`
}

type OrderView struct {
	ID           string             `json:"id"`
	Status       string             `json:"status"`
	Currency     string             `json:"currency"`
	Total        float64            `json:"total"`
	TotalDisplay string             `json:"total_display"`
	Items        []orders.OrderItem `json:"items"`
	CreatedAt    time.Time          `json:"created_at"`
}

type OrdersResponse struct {
	Orders []OrderView `json:"orders"`
}

func toProductView(p *catalog.Product) ProductView {
	normalized := unit.Normalize(p.BaseUnit)
	derived := pricing.Derive(p.BasePrice, normalized)

	opts := unit.Options(normalized)
	options := make([]OptionView, len(opts))
	for i, opt := range opts {
		price := derived.ForQty(opt.Value).InexactFloat64()
		options[i] = OptionView{
			Label:        opt.Label,
			Value:        opt.Value,
			Price:        price,
			PriceDisplay: unit.FormatCurrency(price),
		}
	}

	return ProductView{
		ID:                  p.ID,
		Name:                p.Name,
		Description:         p.Description,
		ImageURL:            p.ImageURL,
		BasePrice:           p.BasePrice,
		BaseUnit:            p.BaseUnit,
		UnitFamily:          string(normalized.Family),
		PricePerUnit:        derived.PerUnit(),
		PricePerUnitDisplay: unit.FormatCurrency(derived.PerUnit()) + "/" + unitSuffix(normalized.Family),
		Options:             options,
		Step:                unit.Step(normalized),
		AvailableQuantity:   p.AvailableQuantity,
	}
}

func toCartView(cart *domain.Cart) CartView {
	items := make([]CartLineView, len(cart.Items))
	for i, line := range cart.Items {
		items[i] = CartLineView{
			ProductID:         line.ProductID,
			ProductName:       line.ProductName,
			UnitsDisplay:      line.UnitsDisplay,
			Quantity:          line.Quantity,
			QuantityDisplay:   unit.FormatQuantity(line.Quantity, line.UnitsDisplay),
			UnitPrice:         line.UnitPrice,
			UnitPriceDisplay:  unit.FormatCurrency(line.UnitPrice),
			TotalPrice:        line.TotalPrice,
			TotalPriceDisplay: unit.FormatCurrency(line.TotalPrice),
			Step:              line.Step,
		}
	}

	total := cart.Total()
	return CartView{
		UserID:       cart.UserID,
		Items:        items,
		Total:        total,
		TotalDisplay: unit.FormatCurrency(total),
	}
}

func toOrderView(o *orders.Order) OrderView {
	return OrderView{
		ID:           o.ID.String(),
		Status:       string(o.Status),
		Currency:     o.Currency,
		Total:        o.TotalAmount,
		TotalDisplay: unit.FormatCurrency(o.TotalAmount),
		Items:        o.Items,
		CreatedAt:    o.CreatedAt,
	}
}

func unitSuffix(family unit.Family) string {
	switch family {
	case unit.FamilyPiece:
		return "pc"
	case unit.FamilyDozen:
		return "dz"
	default:
		return "kg"
	}
}
