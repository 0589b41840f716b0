package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"

	"github.com/farmbasket/cart-service/internal/domain"
)

func setupTestDB(t *testing.T) (CartRepository, func()) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := ConnectMongoDB(ctx, uri, "testdb")
	require.NoError(t, err)

	repo := NewMongoRepository(db)

	err = CreateIndexes(ctx, db)
	require.NoError(t, err)

	cleanup := func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return repo, cleanup
}

func TestGetCart_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	cart, err := repo.GetCart(ctx, "nonexistent")

	assert.ErrorIs(t, err, ErrCartNotFound)
	assert.Nil(t, cart)
}

func TestUpsertCart_CreatesThenUpdates(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	cart := &domain.Cart{
		UserID: "user123",
		Items: []domain.CartLine{
			{ProductID: "p1", UnitsDisplay: "250g", Quantity: 0.25, UnitPrice: 40, TotalPrice: 10, Step: 0.25},
		},
	}

	err := repo.UpsertCart(ctx, cart)
	require.NoError(t, err)

	got, err := repo.GetCart(ctx, "user123")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "p1", got.Items[0].ProductID)
	assert.Equal(t, "250g", got.Items[0].UnitsDisplay)
	assert.Equal(t, 0.25, got.Items[0].Quantity)
	assert.False(t, got.CreatedAt.IsZero())

	// Second upsert replaces the document rather than duplicating it.
	cart.Items[0].Quantity = 0.5
	cart.Items[0].TotalPrice = 20
	err = repo.UpsertCart(ctx, cart)
	require.NoError(t, err)

	got, err = repo.GetCart(ctx, "user123")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 0.5, got.Items[0].Quantity)
	assert.Equal(t, 20.0, got.Items[0].TotalPrice)
}

func TestDeleteCart(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	cart := &domain.Cart{
		UserID: "user123",
		Items:  []domain.CartLine{{ProductID: "p1", UnitsDisplay: "1kg", Quantity: 1}},
	}
	require.NoError(t, repo.UpsertCart(ctx, cart))

	err := repo.DeleteCart(ctx, "user123")
	require.NoError(t, err)

	_, err = repo.GetCart(ctx, "user123")
	assert.ErrorIs(t, err, ErrCartNotFound)

	// Deleting a missing cart reports not found.
	err = repo.DeleteCart(ctx, "user123")
	assert.ErrorIs(t, err, ErrCartNotFound)
}
