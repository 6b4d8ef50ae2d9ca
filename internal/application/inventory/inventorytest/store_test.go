package inventorytest_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-movements-api/internal/application/inventory/inventorytest"
	"github.com/jhoicas/inventory-movements-api/internal/domain/entity"
	"github.com/jhoicas/inventory-movements-api/internal/domain/repository"
)

func TestStore_Run_CancelledContextDiscardsWrites(t *testing.T) {
	store := inventorytest.NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	id := uuid.NewString()

	err := store.Run(ctx, func(_ repository.MovementRepository, productRepo repository.ProductRepository) error {
		require.NoError(t, productRepo.Create(ctx, &entity.Product{ID: id, Name: "A", SKU: "A"}))
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, store.Product(id), "la escritura no debe quedar confirmada")
}

func TestStore_Run_KeepsWritesOnSuccess(t *testing.T) {
	store := inventorytest.NewStore()
	id := uuid.NewString()

	err := store.Run(context.Background(), func(_ repository.MovementRepository, productRepo repository.ProductRepository) error {
		return productRepo.Create(context.Background(), &entity.Product{ID: id, Name: "A", SKU: "A"})
	})
	require.NoError(t, err)
	assert.NotNil(t, store.Product(id))
}
