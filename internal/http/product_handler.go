package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/farmbasket/cart-service/internal/catalog"
)

// ProductSource is the slice of the service layer the product endpoints
// need.
type ProductSource interface {
	Products(ctx context.Context) ([]*catalog.Product, error)
	Product(ctx context.Context, id string) (*catalog.Product, error)
}

type ProductHandler struct {
	svc     ProductSource
	timeout time.Duration
}

func NewProductHandler(svc ProductSource, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		svc:     svc,
		timeout: timeout,
	}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	res, err := h.svc.Products(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	products := make([]ProductView, len(res))
	for i, p := range res {
		products[i] = toProductView(p)
	}

	respondJSON(w, http.StatusOK, &ProductsResponse{Products: products})
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	product, err := h.svc.Product(ctx, productID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toProductView(product))
}
