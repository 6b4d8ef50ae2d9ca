// Package pdf genera el reporte imprimible del historial de movimientos de un producto.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Producto + SKU       │  Stock actual + Fecha        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Cant. | Detalle | Precio | Pago       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: entradas / salidas / saldo                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-movements-api/internal/application/inventory"
	"github.com/jhoicas/inventory-movements-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorIn      = &props.Color{Red: 20, Green: 110, Blue: 50}
	colorOut     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

var typeLabels = map[entity.MovementType]string{
	entity.MovementTypeInitial: "Inicial",
	entity.MovementTypeInput:   "Entrada",
	entity.MovementTypeOutput:  "Salida",
	entity.MovementTypeSale:    "Venta",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ inventory.HistoryPDFGenerator = (*HistoryPDFGenerator)(nil)

// HistoryPDFGenerator implementa inventory.HistoryPDFGenerator usando Maroto v2.
type HistoryPDFGenerator struct {
	author string
	now    func() time.Time
}

// NewHistoryPDFGenerator construye el generador. author se escribe en los metadatos del PDF.
func NewHistoryPDFGenerator(author string) *HistoryPDFGenerator {
	return &HistoryPDFGenerator{author: author, now: time.Now}
}

// GenerateHistoryPDF genera el PDF y devuelve sus bytes. movements llega ordenado por
// created_at descendente y se imprime en ese orden.
func (g *HistoryPDFGenerator) GenerateHistoryPDF(
	_ context.Context,
	product *entity.Product,
	movements []*entity.Movement,
) ([]byte, error) {
	if product == nil {
		return nil, fmt.Errorf("pdf: producto nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Historial de movimientos - "+product.Name, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(product, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(movements) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin movimientos registrados.", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}
	for _, r := range tableDetailRows(movements) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(movements))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre + SKU (izq) y stock + fecha de emisión (der).
func headerRow(product *entity.Product, now time.Time) core.Row {
	subtitle := "SKU: " + product.SKU
	if product.Category != "" {
		subtitle += "   |   Categoría: " + product.Category
	}
	return row.New(18).Add(
		col.New(8).Add(
			text.New(product.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(subtitle, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("HISTORIAL DE MOVIMIENTOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Stock: %d", product.Stock), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Emitido: "+now.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Tipo", 1, align.Left),
		h("Cant.", 1, align.Right),
		h("Detalle", 4, align.Left),
		h("Precio", 2, align.Right),
		h("Pago", 2, align.Center),
	)
}

// tableDetailRows: una fila por movimiento; las columnas de venta quedan vacías en el resto.
func tableDetailRows(movements []*entity.Movement) []core.Row {
	result := make([]core.Row, 0, len(movements))
	for _, mv := range movements {
		qtyColor := colorIn
		sign := "+"
		if mv.Type.Sign() < 0 {
			qtyColor = colorOut
			sign = "-"
		}
		price, payment := "", ""
		if mv.Type == entity.MovementTypeSale {
			price = "$" + FormatMoney(mv.Price)
			payment = mv.PaymentStatus
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(mv.Date.Format("02/01/2006"),
				props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(typeLabel(mv.Type),
				props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(fmt.Sprintf("%s%d", sign, mv.Quantity),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: qtyColor})),
			col.New(4).Add(text.New(detail(mv),
				props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(price,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(payment,
				props.Text{Size: 8, Align: align.Center, Top: 1})),
		))
	}
	return result
}

// totalsRow: unidades que entraron, que salieron y saldo.
func totalsRow(movements []*entity.Movement) core.Row {
	var in, out int
	for _, mv := range movements {
		switch mv.Type.Sign() {
		case 1:
			in += mv.Quantity
		case -1:
			out += mv.Quantity
		}
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(label("Entradas:"), label("Salidas:"), label("Saldo:")),
		col.New(3).Add(
			value(fmt.Sprintf("%d", in)),
			value(fmt.Sprintf("%d", out)),
			value(fmt.Sprintf("%d", in-out)),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func typeLabel(t entity.MovementType) string {
	if l, ok := typeLabels[t]; ok {
		return l
	}
	return string(t)
}

func detail(mv *entity.Movement) string {
	var parts []string
	switch mv.Type {
	case entity.MovementTypeOutput:
		parts = append(parts, mv.Reason)
	case entity.MovementTypeSale:
		parts = append(parts, mv.CustomerName, mv.Note)
	default:
		parts = append(parts, mv.Note)
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " - ")
}

// FormatMoney formatea con puntos de miles y coma decimal. Ej: 25000.5 → "25.000,50".
func FormatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := string(buf) + "," + frac
	if d.IsNegative() {
		out = "-" + out
	}
	return out
}
