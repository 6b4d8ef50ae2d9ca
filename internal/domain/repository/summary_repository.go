package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// StockTotals agregados sobre el catálogo.
type StockTotals struct {
	Products    int
	UnitsOnHand int
	StockValue  decimal.Decimal // Σ price * stock
	OutOfStock  int
}

// SalesTotals agregados de ventas por estado de pago.
type SalesTotals struct {
	PendingCount  int
	PendingAmount decimal.Decimal // Σ price * quantity de ventas pendientes
	PaidCount     int
	PaidAmount    decimal.Decimal
}

// SummaryRepository consultas read-only para el resumen de inventario.
type SummaryRepository interface {
	GetStockTotals(ctx context.Context) (StockTotals, error)
	GetSalesTotals(ctx context.Context) (SalesTotals, error)
}
