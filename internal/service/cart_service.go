package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"

	"github.com/farmbasket/cart-service/internal/cache"
	"github.com/farmbasket/cart-service/internal/catalog"
	"github.com/farmbasket/cart-service/internal/domain"
	"github.com/farmbasket/cart-service/internal/events"
	"github.com/farmbasket/cart-service/internal/orders"
	"github.com/farmbasket/cart-service/internal/pricing"
	"github.com/farmbasket/cart-service/internal/repository"
	"github.com/farmbasket/cart-service/internal/unit"
)

// ProductSource supplies listings; only base price, base unit and available
// quantity matter to the cart flow.
type ProductSource interface {
	GetAllProducts(ctx context.Context) ([]*catalog.Product, error)
	GetProduct(ctx context.Context, id string) (*catalog.Product, error)
}

type OrderStore interface {
	CreateOrder(ctx context.Context, order *orders.Order) error
	ListOrdersByUserID(ctx context.Context, userID string) ([]*orders.Order, error)
}

type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event events.OrderPlaced) error
}

type CartService struct {
	repo      repository.CartRepository
	cache     cache.CartCache
	catalog   ProductSource
	orders    OrderStore
	publisher EventPublisher
	breaker   *gobreaker.CircuitBreaker[*catalog.Product]
	sfg       singleflight.Group // Prevents cache stampede
}

func NewCartService(repo repository.CartRepository, cache cache.CartCache, products ProductSource, orderStore OrderStore, publisher EventPublisher) *CartService {
	return &CartService{
		repo:      repo,
		cache:     cache,
		catalog:   products,
		orders:    orderStore,
		publisher: publisher,
		breaker: gobreaker.NewCircuitBreaker[*catalog.Product](gobreaker.Settings{
			Name: "catalog",
		}),
	}
}

func (s *CartService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(userID, func() (interface{}, error) {

		cart, err := s.cache.Get(ctx, userID)
		if err == nil {
			return cart, nil // cart is in cache
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v \n", err) // log cache error but continue
		}

		cart, errGet := s.repo.GetCart(ctx, userID)
		if errGet != nil && errors.Is(errGet, repository.ErrCartNotFound) { // not found cart return empty cart
			return &domain.Cart{
				UserID:    userID,
				Items:     nil,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}, nil
		}
		if errGet != nil {
			return nil, errGet
		}

		// set cache
		go func() {
			errSet := s.cache.Set(context.Background(), userID, cart)
			if errSet != nil {
				log.Printf("cache set error: %v \n", errSet)
			}
		}()

		return cart, nil // cart was not in cache, return it from repo
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

func (s *CartService) Products(ctx context.Context) ([]*catalog.Product, error) {
	return s.catalog.GetAllProducts(ctx)
}

// Product looks up one listing through a circuit breaker so a struggling
// catalog store sheds load instead of queueing every product card render.
func (s *CartService) Product(ctx context.Context, id string) (*catalog.Product, error) {
	return s.breaker.Execute(func() (*catalog.Product, error) {
		return s.catalog.GetProduct(ctx, id)
	})
}

// AddToCart derives the unit price and variant key for the selection, then
// merges it into the user's cart and persists the result. The quantity is
// expressed in canonical units and must already be validated against the
// family's ladder and the product's availability by the caller.
func (s *CartService) AddToCart(ctx context.Context, sess domain.Session, productID string, qty float64) (*domain.Cart, error) {
	if !sess.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}

	product, err := s.Product(ctx, productID)
	if err != nil {
		return nil, err
	}

	normalized := unit.Normalize(product.BaseUnit)
	derived := pricing.Derive(product.BasePrice, normalized)

	cart, err := s.currentCart(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}

	next, err := domain.AddLine(*cart, sess, domain.AddRequest{
		ProductID:    product.ID,
		ProductName:  product.Name,
		UnitsDisplay: unit.UnitsDisplay(qty, normalized.Family),
		Quantity:     qty,
		UnitPrice:    derived.PerUnit(),
		Step:         unit.Step(normalized),
	})
	if err != nil {
		return nil, err
	}

	if errUpsert := s.repo.UpsertCart(ctx, &next); errUpsert != nil {
		log.Printf("repo upsert cart error: %v \n", errUpsert)
		return nil, errUpsert
	}

	invalidateCache(s, sess.UserID)
	return &next, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID, unitsDisplay string, qty float64) (*domain.Cart, error) {
	cart, err := s.currentCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart.Empty() {
		return cart, nil // nothing to update
	}

	next := domain.UpdateQuantity(*cart, productID, unitsDisplay, qty)
	if errUpsert := s.repo.UpsertCart(ctx, &next); errUpsert != nil {
		log.Printf("repo upsert cart error: %v \n", errUpsert)
		return nil, errUpsert
	}

	invalidateCache(s, userID)
	return &next, nil
}

func (s *CartService) RemoveLine(ctx context.Context, userID, productID, unitsDisplay string) (*domain.Cart, error) {
	cart, err := s.currentCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart.Empty() {
		return cart, nil // nothing to remove
	}

	next := domain.RemoveLine(*cart, productID, unitsDisplay)
	if errUpsert := s.repo.UpsertCart(ctx, &next); errUpsert != nil {
		log.Printf("repo upsert cart error: %v \n", errUpsert)
		return nil, errUpsert
	}

	invalidateCache(s, userID)
	return &next, nil
}

func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	errDelete := s.repo.DeleteCart(ctx, userID)
	if errDelete != nil && !errors.Is(errDelete, repository.ErrCartNotFound) {
		log.Printf("repo delete cart error: %v \n", errDelete)
		return errDelete
	}

	invalidateCache(s, userID)
	return nil
}

// Checkout snapshots the cart into an order, publishes the order-placed
// event and clears the cart. Event publish failure is logged, not
// surfaced: the order row is already committed at that point.
func (s *CartService) Checkout(ctx context.Context, sess domain.Session) (*orders.Order, error) {
	if !sess.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}

	cart, err := s.repo.GetCart(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, ErrEmptyCart
		}
		return nil, err
	}
	if cart.Empty() {
		return nil, ErrEmptyCart
	}

	now := time.Now()
	order := &orders.Order{
		ID:          uuid.New(),
		UserID:      sess.UserID,
		TotalAmount: cart.Total(),
		Currency:    "INR",
		Status:      orders.OrderStatusConfirmed,
		Items:       snapshotItems(cart),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if errCreate := s.orders.CreateOrder(ctx, order); errCreate != nil {
		log.Printf("order create error: %v \n", errCreate)
		return nil, errCreate
	}

	errPublish := s.publisher.PublishOrderPlaced(ctx, events.OrderPlaced{
		OrderID:     order.ID.String(),
		UserID:      order.UserID,
		Items:       order.Items,
		TotalAmount: order.TotalAmount,
		Currency:    order.Currency,
		PlacedAt:    now,
	})
	if errPublish != nil {
		log.Printf("order placed publish error: %v \n", errPublish)
	}

	if errClear := s.ClearCart(ctx, sess.UserID); errClear != nil {
		log.Printf("clear cart after checkout error: %v \n", errClear)
	}

	return order, nil
}

func (s *CartService) Orders(ctx context.Context, sess domain.Session) ([]*orders.Order, error) {
	if !sess.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	return s.orders.ListOrdersByUserID(ctx, sess.UserID)
}

func (s *CartService) currentCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.GetCart(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return &domain.Cart{UserID: userID}, nil
		}
		return nil, err
	}
	return cart, nil
}

func snapshotItems(cart *domain.Cart) []orders.OrderItem {
	items := make([]orders.OrderItem, len(cart.Items))
	for i, line := range cart.Items {
		items[i] = orders.OrderItem{
			ProductID:    line.ProductID,
			ProductName:  line.ProductName,
			UnitsDisplay: line.UnitsDisplay,
			Quantity:     line.Quantity,
			UnitPrice:    line.UnitPrice,
			TotalPrice:   line.TotalPrice,
		}
	}
	return items
}

func invalidateCache(s *CartService, userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	errInvalidate := s.cache.Delete(ctx, userID)
	if errInvalidate != nil {
		log.Printf("cache invalidate error: %v \n", errInvalidate)
	}
}
