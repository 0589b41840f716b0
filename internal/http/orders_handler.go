package http

import (
	"context"
	"net/http"
	"time"

	"github.com/farmbasket/cart-service/internal/domain"
	"github.com/farmbasket/cart-service/internal/orders"
)

type OrderLister interface {
	Orders(ctx context.Context, sess domain.Session) ([]*orders.Order, error)
}

type OrdersHandler struct {
	svc     OrderLister
	timeout time.Duration
}

func NewOrdersHandler(svc OrderLister, timeout time.Duration) *OrdersHandler {
	return &OrdersHandler{
		svc:     svc,
		timeout: timeout,
	}
}

func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing user authentication")
		return
	}

	list, err := h.svc.Orders(ctx, domain.Session{UserID: userID})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	views := make([]OrderView, len(list))
	for i, o := range list {
		views[i] = toOrderView(o)
	}

	respondJSON(w, http.StatusOK, &OrdersResponse{Orders: views})
}
