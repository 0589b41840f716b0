package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProducts(t *testing.T) {
	fake := &fakeService{product: testProduct()}
	handler := NewProductHandler(fake, 5*time.Second)

	recorder := httptest.NewRecorder()
	handler.List(recorder, httptest.NewRequest("GET", "/api/v1/products", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp ProductsResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	require.Len(t, resp.Products, 1)

	card := resp.Products[0]
	assert.Equal(t, "p1", card.ID)
	assert.Equal(t, "kg", card.UnitFamily)
	assert.Equal(t, 40.0, card.PricePerUnit)
	assert.Equal(t, "₹40.00/kg", card.PricePerUnitDisplay)
	assert.Equal(t, 0.25, card.Step)

	require.Len(t, card.Options, 3)
	assert.Equal(t, "250g", card.Options[0].Label)
	assert.Equal(t, "₹10.00", card.Options[0].PriceDisplay)
	assert.Equal(t, "1kg", card.Options[2].Label)
	assert.Equal(t, "₹40.00", card.Options[2].PriceDisplay)
}

func TestGetProduct(t *testing.T) {
	fake := &fakeService{product: testProduct()}
	handler := NewProductHandler(fake, 5*time.Second)

	recorder := httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest("GET", "/api/v1/products/p1", nil), "product_id", "p1")
	handler.Get(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var card ProductView
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&card))
	assert.Equal(t, "Tomatoes", card.Name)
	require.NotNil(t, card.AvailableQuantity)
	assert.Equal(t, 2.0, *card.AvailableQuantity)
}

func TestGetProduct_NotFound(t *testing.T) {
	fake := &fakeService{product: testProduct()}
	handler := NewProductHandler(fake, 5*time.Second)

	recorder := httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest("GET", "/api/v1/products/nope", nil), "product_id", "nope")
	handler.Get(recorder, req)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
