package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Stock > 0 genera el movimiento "initial".
type CreateProductRequest struct {
	Name        string      `json:"name" validate:"required,min=1,max=200"`
	SKU         string      `json:"sku" validate:"required,min=1,max=100"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	ImageURL    string      `json:"image_url"`
	Price       FormDecimal `json:"price"`
	Stock       FormInt     `json:"stock"`
}

// UpdateProductRequest entrada para actualizar un producto; los campos nil no se tocan.
// Stock se aplica según la política de edición manual configurada.
type UpdateProductRequest struct {
	Name        *string      `json:"name" validate:"omitempty,min=1,max=200"`
	SKU         *string      `json:"sku" validate:"omitempty,min=1,max=100"`
	Category    *string      `json:"category"`
	Description *string      `json:"description"`
	ImageURL    *string      `json:"image_url"`
	Price       *FormDecimal `json:"price"`
	Stock       *FormInt     `json:"stock"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista completa de productos (sin paginación).
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// ProductOptionResponse par id/nombre para selectores.
type ProductOptionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ReconcileResponse resultado de una conciliación bajo demanda.
type ReconcileResponse struct {
	ProductID     string `json:"product_id"`
	PreviousStock int    `json:"previous_stock"`
	Stock         int    `json:"stock"`
	Drift         int    `json:"drift"` // Stock - PreviousStock
}
