package repository

import (
	"context"
	"errors"

	"github.com/farmbasket/cart-service/internal/domain"
)

var ErrCartNotFound = errors.New("cart not found")

// CartRepository is the document-store collaborator: the cart aggregate is
// mutated in memory by the domain package, then handed here whole. Two
// devices writing the same user's cart resolve last-write-wins.
type CartRepository interface {
	GetCart(ctx context.Context, userID string) (*domain.Cart, error)
	UpsertCart(ctx context.Context, cart *domain.Cart) error
	DeleteCart(ctx context.Context, userID string) error
}
