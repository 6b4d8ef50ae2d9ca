package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventory-movements-api/internal/domain/entity"
	"github.com/jhoicas/inventory-movements-api/internal/domain/inventory"
)

func entry(t entity.MovementType, qty int) entity.StockEntry {
	return entity.StockEntry{Type: t, Quantity: qty}
}

func TestCalculateStock(t *testing.T) {
	tests := []struct {
		name    string
		entries []entity.StockEntry
		want    int
	}{
		{name: "sin movimientos", entries: nil, want: 0},
		{name: "solo inicial", entries: []entity.StockEntry{entry(entity.MovementTypeInitial, 100)}, want: 100},
		{
			name: "inicial, venta y salida",
			entries: []entity.StockEntry{
				entry(entity.MovementTypeInitial, 100),
				entry(entity.MovementTypeSale, 30),
				entry(entity.MovementTypeOutput, 10),
			},
			want: 60,
		},
		{
			name: "entradas y salidas",
			entries: []entity.StockEntry{
				entry(entity.MovementTypeInput, 5),
				entry(entity.MovementTypeInput, 7),
				entry(entity.MovementTypeOutput, 2),
				entry(entity.MovementTypeSale, 1),
			},
			want: 9,
		},
		{
			name: "puede quedar negativo",
			entries: []entity.StockEntry{
				entry(entity.MovementTypeInput, 3),
				entry(entity.MovementTypeSale, 5),
			},
			want: -2,
		},
		{
			name: "tipo desconocido no cuenta",
			entries: []entity.StockEntry{
				entry(entity.MovementTypeInput, 10),
				entry("transfer", 99),
			},
			want: 10,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inventory.CalculateStock(tt.entries))
		})
	}
}

// El resultado no depende del orden de los movimientos.
func TestCalculateStock_OrderIndependent(t *testing.T) {
	a := []entity.StockEntry{
		entry(entity.MovementTypeInitial, 40),
		entry(entity.MovementTypeSale, 12),
		entry(entity.MovementTypeInput, 8),
		entry(entity.MovementTypeOutput, 3),
	}
	b := []entity.StockEntry{a[3], a[1], a[0], a[2]}
	assert.Equal(t, inventory.CalculateStock(a), inventory.CalculateStock(b))
	assert.Equal(t, 33, inventory.CalculateStock(b))
}
