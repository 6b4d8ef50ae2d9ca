package inventory

import (
	"context"

	"github.com/jhoicas/inventory-movements-api/internal/domain/entity"
	"github.com/jhoicas/inventory-movements-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que cada escritura de movimiento y su conciliación se confirmen juntas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// HistoryPDFGenerator genera el reporte PDF del historial de movimientos de un producto.
type HistoryPDFGenerator interface {
	GenerateHistoryPDF(ctx context.Context, product *entity.Product, movements []*entity.Movement) ([]byte, error)
}
