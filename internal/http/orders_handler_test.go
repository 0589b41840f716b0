package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmbasket/cart-service/internal/orders"
)

func TestListOrders(t *testing.T) {
	fake := &fakeService{orders: []*orders.Order{
		{
			ID:          uuid.New(),
			UserID:      "u1",
			TotalAmount: 130,
			Currency:    "INR",
			Status:      orders.OrderStatusConfirmed,
			Items: []orders.OrderItem{
				{ProductID: "p3", ProductName: "Eggs", UnitsDisplay: "1 dz", Quantity: 1, UnitPrice: 90, TotalPrice: 90},
				{ProductID: "p1", ProductName: "Tomatoes", UnitsDisplay: "1kg", Quantity: 1, UnitPrice: 40, TotalPrice: 40},
			},
		},
	}}
	handler := NewOrdersHandler(fake, 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.List(recorder, authedRequest("GET", "/api/v1/orders", ""))

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp OrdersResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	require.Len(t, resp.Orders, 1)
	assert.Equal(t, "CONFIRMED", resp.Orders[0].Status)
	assert.Equal(t, "₹130.00", resp.Orders[0].TotalDisplay)
	assert.Len(t, resp.Orders[0].Items, 2)
}

func TestListOrders_Unauthenticated(t *testing.T) {
	handler := NewOrdersHandler(&fakeService{}, 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.List(recorder, httptest.NewRequest("GET", "/api/v1/orders", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
