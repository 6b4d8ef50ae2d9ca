package inventory

import "github.com/jhoicas/inventory-movements-api/internal/domain/entity"

// CalculateStock implementa la regla de conciliación (servicio de dominio):
// Stock = Σ(initial, input) − Σ(output, sale). Tipos desconocidos no suman ni restan.
func CalculateStock(entries []entity.StockEntry) int {
	stock := 0
	for _, e := range entries {
		stock += e.Type.Sign() * e.Quantity
	}
	return stock
}
