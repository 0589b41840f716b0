package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmbasket/cart-service/internal/catalog"
)

func setupTestDB(t *testing.T) *catalog.Repository {
	// Use in-memory database for tests
	repo, err := catalog.NewRepository(":memory:")
	if err != nil {
		t.Fatalf("Failed to create test repository: %v", err)
	}

	if err := repo.RunMigrations("./migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return repo
}

func TestGetAllProducts_ReturnsSeededProducts(t *testing.T) {
	repo := setupTestDB(t)
	defer repo.Close()

	products, err := repo.GetAllProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 5)
}

func TestGetProduct_ReturnsProduct(t *testing.T) {
	repo := setupTestDB(t)
	defer repo.Close()

	product, err := repo.GetProduct(context.Background(), "p1")
	require.NoError(t, err)
	require.NotNil(t, product)

	assert.Equal(t, "Tomatoes", product.Name)
	assert.Equal(t, 40.0, product.BasePrice)
	assert.Equal(t, "1kg", product.BaseUnit)
	require.NotNil(t, product.AvailableQuantity)
	assert.Equal(t, 25.0, *product.AvailableQuantity)
}

func TestGetProduct_NullableColumns(t *testing.T) {
	repo := setupTestDB(t)
	defer repo.Close()

	product, err := repo.GetProduct(context.Background(), "p5")
	require.NoError(t, err)
	assert.Nil(t, product.AvailableQuantity)
}

func TestGetProduct_NotFound(t *testing.T) {
	repo := setupTestDB(t)
	defer repo.Close()

	product, err := repo.GetProduct(context.Background(), "missing")
	assert.Nil(t, product)
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestGetAllProducts_CancelledContext(t *testing.T) {
	repo := setupTestDB(t)
	defer repo.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.GetAllProducts(ctx)
	assert.Error(t, err)
}
