package catalog

import "time"

// Product is a listing as entered by a farmer or seller. BaseUnit is the
// free-text unit the price was quoted against ("1kg", "250g", "piece",
// "dozen") and may be empty; AvailableQuantity caps the purchasable amount
// in canonical units and is nil when the seller did not set one.
type Product struct {
	ID                string
	Name              string
	Description       string
	BasePrice         float64
	BaseUnit          string
	AvailableQuantity *float64
	ImageURL          string
	CreatedAt         time.Time
}
