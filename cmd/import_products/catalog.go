package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/inventory-movements-api/internal/application/dto"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var catalogColumns = []string{"name", "sku", "category", "price", "stock", "description"}

// CatalogRow fila del CSV lista para el caso de uso de creación.
type CatalogRow struct {
	Line    int
	Request dto.CreateProductRequest
}

// ReadCatalog lee el CSV completo. La cabecera puede traer las columnas en cualquier orden;
// name y sku son obligatorias. price y stock se interpretan como en los formularios
// (vacío o inválido = 0).
func ReadCatalog(r io.Reader, latin1 bool) ([]CatalogRow, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cabecera: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, required := range catalogColumns[:2] {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("cabecera: falta la columna %q", required)
		}
	}

	var rows []CatalogRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// csv.ParseError ya incluye la línea física.
			return nil, fmt.Errorf("catálogo: %w", err)
		}
		// Línea física donde empieza el registro; un campo entre comillas puede ocupar varias.
		line, _ := cr.FieldPos(0)
		get := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		if get("name") == "" && get("sku") == "" {
			continue // fila vacía
		}
		rows = append(rows, CatalogRow{
			Line: line,
			Request: dto.CreateProductRequest{
				Name:        get("name"),
				SKU:         get("sku"),
				Category:    get("category"),
				Description: get("description"),
				Price:       dto.FormDecimal{Decimal: dto.ParsePrice(get("price"))},
				Stock:       dto.FormInt(dto.ParseQuantity(get("stock"))),
			},
		})
	}
	return rows, nil
}
