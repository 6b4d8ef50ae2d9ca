package dto

import "github.com/shopspring/decimal"

// InventorySummaryDTO respuesta de GET /api/inventory/summary.
type InventorySummaryDTO struct {
	Products      int             `json:"products"`
	UnitsOnHand   int             `json:"units_on_hand"`
	StockValue    decimal.Decimal `json:"stock_value"` // Σ precio * stock
	OutOfStock    int             `json:"out_of_stock"`
	PendingSales  int             `json:"pending_sales"`
	PendingAmount decimal.Decimal `json:"pending_amount"`
	PaidSales     int             `json:"paid_sales"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
}
