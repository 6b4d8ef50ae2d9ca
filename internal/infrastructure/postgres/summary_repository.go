package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventory-movements-api/internal/domain/repository"
)

var _ repository.SummaryRepository = (*SummaryRepo)(nil)

// SummaryRepo consultas de agregación read-only para el resumen de inventario.
type SummaryRepo struct {
	q Querier
}

// NewSummaryRepository construye el adaptador.
func NewSummaryRepository(q Querier) *SummaryRepo {
	return &SummaryRepo{q: q}
}

// GetStockTotals suma unidades y valor a precio de venta sobre todo el catálogo.
// El stock negativo no suma unidades ni valor.
func (r *SummaryRepo) GetStockTotals(ctx context.Context) (repository.StockTotals, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(GREATEST(stock, 0)), 0),
		       COALESCE(SUM(price * GREATEST(stock, 0)), 0),
		       COUNT(*) FILTER (WHERE stock <= 0)
		FROM products`
	var t repository.StockTotals
	if err := r.q.QueryRow(ctx, query).Scan(&t.Products, &t.UnitsOnHand, &t.StockValue, &t.OutOfStock); err != nil {
		return repository.StockTotals{}, fmt.Errorf("stock totals: %w", err)
	}
	return t, nil
}

// GetSalesTotals agrupa las ventas por estado de pago (importe = precio * cantidad).
func (r *SummaryRepo) GetSalesTotals(ctx context.Context) (repository.SalesTotals, error) {
	query := `
		SELECT COUNT(*) FILTER (WHERE payment_status = 'pending'),
		       COALESCE(SUM(COALESCE(price, 0) * quantity) FILTER (WHERE payment_status = 'pending'), 0),
		       COUNT(*) FILTER (WHERE payment_status = 'paid'),
		       COALESCE(SUM(COALESCE(price, 0) * quantity) FILTER (WHERE payment_status = 'paid'), 0)
		FROM movements
		WHERE type = 'sale'`
	var t repository.SalesTotals
	if err := r.q.QueryRow(ctx, query).Scan(&t.PendingCount, &t.PendingAmount, &t.PaidCount, &t.PaidAmount); err != nil {
		return repository.SalesTotals{}, fmt.Errorf("sales totals: %w", err)
	}
	return t, nil
}
