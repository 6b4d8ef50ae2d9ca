package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Stock es un agregado materializado de sus movimientos; lo recalcula la conciliación.
type Product struct {
	ID          string
	Name        string
	SKU         string // código único
	Category    string
	Description string
	ImageURL    string
	Price       decimal.Decimal // precio de venta, no negativo
	Stock       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductOption par id/nombre para los selectores de los formularios de movimientos.
type ProductOption struct {
	ID   string
	Name string
}
