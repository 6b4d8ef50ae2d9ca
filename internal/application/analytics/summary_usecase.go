// Package analytics contiene el resumen de inventario para el tablero.
package analytics

import (
	"context"

	"github.com/jhoicas/inventory-movements-api/internal/application/dto"
	"github.com/jhoicas/inventory-movements-api/internal/domain/repository"
	"golang.org/x/sync/errgroup"
)

// SummaryUseCase arma el resumen de inventario a partir de consultas read-only.
type SummaryUseCase struct {
	repo repository.SummaryRepository
}

// NewSummaryUseCase construye el caso de uso.
func NewSummaryUseCase(repo repository.SummaryRepository) *SummaryUseCase {
	return &SummaryUseCase{repo: repo}
}

// GetSummary ejecuta en paralelo los totales de stock y de ventas.
func (uc *SummaryUseCase) GetSummary(ctx context.Context) (*dto.InventorySummaryDTO, error) {
	var (
		stock repository.StockTotals
		sales repository.SalesTotals
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stock, err = uc.repo.GetStockTotals(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		sales, err = uc.repo.GetSalesTotals(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.InventorySummaryDTO{
		Products:      stock.Products,
		UnitsOnHand:   stock.UnitsOnHand,
		StockValue:    stock.StockValue,
		OutOfStock:    stock.OutOfStock,
		PendingSales:  sales.PendingCount,
		PendingAmount: sales.PendingAmount,
		PaidSales:     sales.PaidCount,
		PaidAmount:    sales.PaidAmount,
	}, nil
}
