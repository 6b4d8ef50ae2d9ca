package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de las fechas de calendario de los movimientos.
const DateLayout = "2006-01-02"

// MovementRequest cuerpo para crear o editar un movimiento. El tipo lo fija el endpoint
// (/api/inputs, /api/outputs, /api/sales); los campos ajenos al tipo se ignoran.
type MovementRequest struct {
	ProductID     string      `json:"product_id" validate:"required,uuid"`
	Quantity      FormInt     `json:"quantity" validate:"required,gt=0"`
	Date          string      `json:"date" validate:"required"` // YYYY-MM-DD
	Note          string      `json:"note"`                     // input, sale
	Reason        string      `json:"reason"`                   // output
	CustomerName  string      `json:"customer_name"`            // sale
	Price         FormDecimal `json:"price"`                    // sale
	PaymentStatus string      `json:"payment_status"`           // sale: pending | paid
}

// MovementResponse proyección de un movimiento; solo se incluyen los campos de su tipo.
type MovementResponse struct {
	ID            string           `json:"id"`
	ProductID     string           `json:"product_id"`
	Type          string           `json:"type"`
	Quantity      int              `json:"quantity"`
	Date          string           `json:"date"`
	Note          string           `json:"note,omitempty"`
	Reason        string           `json:"reason,omitempty"`
	CustomerName  string           `json:"customer_name,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	PaymentStatus string           `json:"payment_status,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// MovementListResponse lista de movimientos de un tipo.
type MovementListResponse struct {
	Type  string             `json:"type"`
	Items []MovementResponse `json:"items"`
	Total int                `json:"total"`
}

// MovementHistoryResponse historial de un producto, más recientes primero.
type MovementHistoryResponse struct {
	Product   ProductResponse    `json:"product"`
	Movements []MovementResponse `json:"movements"`
}
