package domain

import (
	"errors"
	"time"

	"github.com/farmbasket/cart-service/internal/pricing"
)

// ErrUnauthenticated is returned when a cart mutation is attempted without
// an authenticated session. This is the one business rule the cart
// aggregate enforces itself rather than leaving to the HTTP boundary.
var ErrUnauthenticated = errors.New("no authenticated session")

// Session is the authenticated caller context supplied by the auth
// collaborator. It is passed in explicitly; nothing here reads ambient
// global state.
type Session struct {
	UserID string
}

func (s Session) Authenticated() bool {
	return s.UserID != ""
}

// Cart is one user's cart document. Line order is insertion order and is
// preserved through every mutation.
type Cart struct {
	ID        string     `bson:"_id,omitempty" json:"-"`
	UserID    string     `bson:"user_id" json:"user_id"`
	Items     []CartLine `bson:"items" json:"items"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}

// CartLine is one product variant in the cart, keyed by
// (ProductID, UnitsDisplay): 250g and 1kg of the same product are distinct
// lines. UnitPrice is frozen at add time; TotalPrice is derived and
// recomputed on every mutation.
type CartLine struct {
	ProductID    string    `bson:"product_id" json:"product_id"`
	ProductName  string    `bson:"product_name" json:"product_name"`
	UnitsDisplay string    `bson:"units_display" json:"units_display"`
	Quantity     float64   `bson:"quantity" json:"quantity"`
	UnitPrice    float64   `bson:"unit_price" json:"unit_price"`
	TotalPrice   float64   `bson:"total_price" json:"total_price"`
	Step         float64   `bson:"step" json:"step"`
	AddedAt      time.Time `bson:"added_at" json:"added_at"`
}

// AddRequest carries everything needed to open or grow a cart line. The
// caller derives UnitPrice and Step from the product at this moment; they
// stay frozen on the line afterwards.
type AddRequest struct {
	ProductID    string
	ProductName  string
	UnitsDisplay string
	Quantity     float64
	UnitPrice    float64
	Step         float64
}

// AddLine merges an add-to-cart request into the cart and returns the next
// cart value. Repeat adds of the same (product, units) variant grow the
// existing line instead of duplicating it. The input cart is not mutated.
func AddLine(cart Cart, sess Session, req AddRequest) (Cart, error) {
	if !sess.Authenticated() {
		return cart, ErrUnauthenticated
	}

	next := cloneCart(cart)
	next.UserID = sess.UserID

	for i := range next.Items {
		if sameLine(next.Items[i], req.ProductID, req.UnitsDisplay) {
			next.Items[i].Quantity += req.Quantity
			next.Items[i].TotalPrice = pricing.LineTotal(next.Items[i].UnitPrice, next.Items[i].Quantity)
			return next, nil
		}
	}

	next.Items = append(next.Items, CartLine{
		ProductID:    req.ProductID,
		ProductName:  req.ProductName,
		UnitsDisplay: req.UnitsDisplay,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		TotalPrice:   pricing.LineTotal(req.UnitPrice, req.Quantity),
		Step:         req.Step,
		AddedAt:      time.Now(),
	})
	return next, nil
}

// UpdateQuantity sets the quantity of the line keyed by
// (productID, unitsDisplay) and recomputes its total. A missing line is a
// no-op, not an error. The caller is responsible for clamping the quantity
// to the line's step bounds; no re-clamping happens here.
func UpdateQuantity(cart Cart, productID, unitsDisplay string, qty float64) Cart {
	next := cloneCart(cart)
	for i := range next.Items {
		if sameLine(next.Items[i], productID, unitsDisplay) {
			next.Items[i].Quantity = qty
			next.Items[i].TotalPrice = pricing.LineTotal(next.Items[i].UnitPrice, qty)
			break
		}
	}
	return next
}

// RemoveLine filters out the line keyed by (productID, unitsDisplay).
// Removing a line that does not exist is a no-op.
func RemoveLine(cart Cart, productID, unitsDisplay string) Cart {
	next := cloneCart(cart)
	items := next.Items[:0:0]
	for _, line := range next.Items {
		if !sameLine(line, productID, unitsDisplay) {
			items = append(items, line)
		}
	}
	next.Items = items
	return next
}

// Total is the cart's grand total at full precision.
func (c Cart) Total() float64 {
	totals := make([]float64, len(c.Items))
	for i, line := range c.Items {
		totals[i] = line.TotalPrice
	}
	return pricing.Sum(totals...)
}

func (c Cart) Empty() bool {
	return len(c.Items) == 0
}

func sameLine(line CartLine, productID, unitsDisplay string) bool {
	return line.ProductID == productID && line.UnitsDisplay == unitsDisplay
}

func cloneCart(cart Cart) Cart {
	next := cart
	next.Items = make([]CartLine, len(cart.Items))
	copy(next.Items, cart.Items)
	return next
}
