package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType discrimina los cuatro tipos de movimiento de stock.
type MovementType string

// Tipos de movimiento.
const (
	MovementTypeInitial MovementType = "initial" // stock inicial al crear el producto
	MovementTypeInput   MovementType = "input"   // entrada
	MovementTypeOutput  MovementType = "output"  // salida (merma, daño, consumo)
	MovementTypeSale    MovementType = "sale"    // venta
)

// Estados de pago de una venta.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// InitialStockNote nota fija del movimiento sintético de stock inicial.
const InitialStockNote = "Initial stock registered"

// Valid indica si el tipo es uno de los cuatro conocidos.
func (t MovementType) Valid() bool {
	return t.Sign() != 0
}

// Sign devuelve +1 para tipos que suman stock, -1 para los que restan y 0 para
// tipos desconocidos (no afectan la conciliación).
func (t MovementType) Sign() int {
	switch t {
	case MovementTypeInitial, MovementTypeInput:
		return 1
	case MovementTypeOutput, MovementTypeSale:
		return -1
	default:
		return 0
	}
}

// UserEditable indica si el tipo se registra desde un formulario (initial solo lo genera el sistema).
func (t MovementType) UserEditable() bool {
	switch t {
	case MovementTypeInput, MovementTypeOutput, MovementTypeSale:
		return true
	default:
		return false
	}
}

// ValidPaymentStatus valida el estado de pago de una venta.
func ValidPaymentStatus(s string) bool {
	return s == PaymentStatusPending || s == PaymentStatusPaid
}

// Movement es un cambio registrado en el stock de un producto.
// Los campos opcionales dependen del tipo: Note (initial, input, sale), Reason (output),
// CustomerName/Price/PaymentStatus (sale).
type Movement struct {
	ID            string
	ProductID     string
	Type          MovementType
	Quantity      int // siempre positivo; el signo lo da Type
	Date          time.Time
	Note          string
	Reason        string
	CustomerName  string
	Price         decimal.Decimal
	PaymentStatus string
	CreatedAt     time.Time
}

// Delta cantidad con signo que aporta el movimiento al stock.
func (m *Movement) Delta() int {
	return m.Type.Sign() * m.Quantity
}

// Normalize limpia los campos que no pertenecen al tipo del movimiento.
func (m *Movement) Normalize() {
	switch m.Type {
	case MovementTypeInitial, MovementTypeInput:
		m.Reason, m.CustomerName, m.PaymentStatus = "", "", ""
		m.Price = decimal.Zero
	case MovementTypeOutput:
		m.Note, m.CustomerName, m.PaymentStatus = "", "", ""
		m.Price = decimal.Zero
	case MovementTypeSale:
		m.Reason = ""
		if m.PaymentStatus == "" {
			m.PaymentStatus = PaymentStatusPending
		}
	}
}

// StockEntry proyección mínima (tipo y cantidad) usada por la conciliación.
type StockEntry struct {
	Type     MovementType
	Quantity int
}
