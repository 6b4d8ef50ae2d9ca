package repository

import (
	"context"

	"github.com/jhoicas/inventory-movements-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para movimientos de stock.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	// GetForUpdate obtiene el movimiento y bloquea su fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Movement, error)
	Update(ctx context.Context, movement *entity.Movement) error
	// Delete elimina el movimiento y devuelve la fila borrada (nil si no existía).
	Delete(ctx context.Context, id string) (*entity.Movement, error)
	DeleteByProduct(ctx context.Context, productID string) (int64, error)
	ListByType(ctx context.Context, movementType entity.MovementType) ([]*entity.Movement, error)
	// ListByProduct devuelve el historial ordenado por created_at descendente.
	ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error)
	ListStockEntries(ctx context.Context, productID string) ([]entity.StockEntry, error)
	CountByProduct(ctx context.Context, productID string) (int, error)
}
