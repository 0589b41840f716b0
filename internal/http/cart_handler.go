package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sony/gobreaker/v2"

	"github.com/farmbasket/cart-service/internal/catalog"
	"github.com/farmbasket/cart-service/internal/domain"
	"github.com/farmbasket/cart-service/internal/orders"
	"github.com/farmbasket/cart-service/internal/service"
	"github.com/farmbasket/cart-service/internal/unit"
)

// CartService is the slice of the service layer the cart endpoints need.
type CartService interface {
	GetCart(ctx context.Context, userID string) (*domain.Cart, error)
	AddToCart(ctx context.Context, sess domain.Session, productID string, qty float64) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, userID, productID, unitsDisplay string, qty float64) (*domain.Cart, error)
	RemoveLine(ctx context.Context, userID, productID, unitsDisplay string) (*domain.Cart, error)
	ClearCart(ctx context.Context, userID string) error
	Checkout(ctx context.Context, sess domain.Session) (*orders.Order, error)
	Product(ctx context.Context, id string) (*catalog.Product, error)
}

type CartHandler struct {
	svc     CartService
	timeout time.Duration
}

func NewCartHandler(svc CartService, timeout time.Duration) *CartHandler {
	return &CartHandler{
		svc:     svc,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID string  `json:"product_id"`
	Quantity  float64 `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	UnitsDisplay string  `json:"units_display"`
	Quantity     float64 `json:"quantity"`
}

type CheckoutResponse struct {
	OrderID      string `json:"order_id"`
	Status       string `json:"status"`
	TotalDisplay string `json:"total_display"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing user authentication")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Quantity <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be positive")
		return
	}

	product, err := h.svc.Product(ctx, req.ProductID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// Stock and ladder checks live here, not in the cart aggregate: the
	// aggregate computes, the caller validates against the listing.
	normalized := unit.Normalize(product.BaseUnit)
	if !unit.ValidOption(normalized, req.Quantity) {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity is not a purchasable option for this unit")
		return
	}
	if product.AvailableQuantity != nil && req.Quantity > *product.AvailableQuantity {
		respondError(w, http.StatusConflict, "quantity_exceeds_availability", "requested quantity exceeds available stock")
		return
	}

	cart, err := h.svc.AddToCart(ctx, domain.Session{UserID: userID}, req.ProductID, req.Quantity)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toCartView(cart))
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing user authentication")
		return
	}

	cart, err := h.svc.GetCart(ctx, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartView(cart))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing user authentication")
		return
	}

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.UnitsDisplay == "" {
		respondError(w, http.StatusBadRequest, "invalid_units", "units_display is required")
		return
	}
	if req.Quantity < 0 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must not be negative")
		return
	}

	// The stepper never goes below one step; clamp before handing to the
	// aggregate, which does not re-clamp.
	qty := req.Quantity
	if cart, err := h.svc.GetCart(ctx, userID); err == nil {
		for _, line := range cart.Items {
			if line.ProductID == productID && line.UnitsDisplay == req.UnitsDisplay {
				if qty < line.Step {
					qty = line.Step
				}
				break
			}
		}
	}

	cart, err := h.svc.UpdateQuantity(ctx, userID, productID, req.UnitsDisplay, qty)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartView(cart))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing user authentication")
		return
	}

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	unitsDisplay := r.URL.Query().Get("units")
	if unitsDisplay == "" {
		respondError(w, http.StatusBadRequest, "invalid_units", "units query parameter is required")
		return
	}

	cart, err := h.svc.RemoveLine(ctx, userID, productID, unitsDisplay)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartView(cart))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing user authentication")
		return
	}

	if err := h.svc.ClearCart(ctx, userID); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartView(&domain.Cart{UserID: userID}))
}

func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing user authentication")
		return
	}

	order, err := h.svc.Checkout(ctx, domain.Session{UserID: userID})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, CheckoutResponse{
		OrderID:      order.ID.String(),
		Status:       string(order.Status),
		TotalDisplay: unit.FormatCurrency(order.TotalAmount),
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:   message,
		Code:    code,
		Details: "",
	})
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		respondError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
	case errors.Is(err, catalog.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, orders.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, service.ErrEmptyCart):
		respondError(w, http.StatusConflict, "empty_cart", err.Error())
	case errors.Is(err, orders.ErrDuplicateOrder):
		respondError(w, http.StatusConflict, "duplicate_order", err.Error())
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, "timeout", err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
