package mocks

import (
	"context"

	"github.com/jhoicas/inventory-movements-api/internal/domain/repository"
)

// TxRunner ejecuta fn directamente con los repos mock (sin transacción real).
type TxRunner struct {
	Movements repository.MovementRepository
	Products  repository.ProductRepository
}

func (r *TxRunner) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(r.Movements, r.Products)
}
