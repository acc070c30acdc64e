// Package pdf implementa los reportes imprimibles con Maroto v2: el acta de
// cierre del inventario diario y el comprobante de venta.
//
// Layout del acta de cierre (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Sucursal  │  Fecha del inventario + Estado          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMPLEADOS: quiénes tomaron el inventario                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Ingrediente | Inicial | Vtas | Compras | Mermas |    │
//	│         Ajustes | Final                                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  OBSERVACIONES + fecha/hora de cierre                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	"github.com/jhoicas/Restaurante-api/internal/application/inventory"
	"github.com/jhoicas/Restaurante-api/internal/application/sales"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/reconcile"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 153, Green: 27, Blue: 27}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ inventory.ClosingPDFGenerator = (*MarotoPDFGenerator)(nil)
var _ sales.ReceiptPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa los generadores de PDF usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateClosingPDF genera el acta de cierre del inventario diario.
func (g *MarotoPDFGenerator) GenerateClosingPDF(
	_ context.Context,
	inv *entity.DailyInventory,
	branch *entity.Branch,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Acta de Cierre de Inventario", true).
		WithAuthor(branch.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(closingHeaderRow(inv, branch))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(employeesRow(inv.Employees))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(linesTableHeaderRow())
	for _, r := range linesTableRows(inv.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range closingFooterRows(inv) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar acta de cierre: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerateReceiptPDF genera el comprobante imprimible de una venta.
func (g *MarotoPDFGenerator) GenerateReceiptPDF(
	_ context.Context,
	sale *entity.Sale,
	branch *entity.Branch,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de Venta", true).
		WithAuthor(branch.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(receiptHeaderRow(sale, branch))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(itemsTableHeaderRow())
	for _, r := range itemsTableRows(sale.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(receiptTotalsRow(sale))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Acta de cierre ────────────────────────────────────────────────────────────

// closingHeaderRow: sucursal (izq) y fecha + estado (der).
func closingHeaderRow(inv *entity.DailyInventory, branch *entity.Branch) core.Row {
	fecha := inv.Date.Format("02/01/2006")
	estado := "ABIERTO"
	if inv.IsClosed() {
		estado = "CERRADO"
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New(branch.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(branch.Address, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ACTA DE CIERRE DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fecha, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Estado: "+estado, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// employeesRow: quiénes participaron en la toma de inventario.
func employeesRow(employees []entity.InventoryEmployee) core.Row {
	names := ""
	for i, e := range employees {
		if i > 0 {
			names += "   |   "
		}
		names += fmt.Sprintf("%s (CI %s)", e.Name, e.EmployeeCI)
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("EMPLEADOS RESPONSABLES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(names, "—"), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// linesTableHeaderRow: cabecera de la tabla de renglones.
func linesTableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Ingrediente", 3, align.Left),
		h("Inicial", 2, align.Right),
		h("Ventas", 1, align.Right),
		h("Compras", 2, align.Right),
		h("Mermas", 1, align.Right),
		h("Ajustes", 1, align.Right),
		h("Final", 2, align.Right),
	)
}

// linesTableRows: una fila por ingrediente, con los movimientos agregados.
func linesTableRows(lines []entity.InventoryLine) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		sum := reconcile.Summarize(l.Movements)
		result = append(result, row.New(7).Add(
			cell(fmt.Sprintf("%s (%s)", l.Name, l.Unit), 3, align.Left),
			cell(l.InitialStock.StringFixed(2), 2, align.Right),
			cell(sum.Sales.StringFixed(2), 1, align.Right),
			cell(sum.Purchases.StringFixed(2), 2, align.Right),
			cell(sum.Losses.StringFixed(2), 1, align.Right),
			cell(sum.Adjustments.StringFixed(2), 1, align.Right),
			cell(l.FinalStock.StringFixed(2), 2, align.Right),
		))
	}
	return result
}

// closingFooterRows: observaciones + fecha y hora de cierre.
func closingFooterRows(inv *entity.DailyInventory) []core.Row {
	rows := []core.Row{
		row.New(10).Add(col.New(12).Add(
			text.New("OBSERVACIONES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(inv.Observations, "—"), props.Text{
				Size: 8, Top: 6, Color: colorGray,
			}),
		)),
	}
	if inv.ClosedAt != nil {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Cerrado el "+inv.ClosedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 7, Color: colorGray, Top: 1,
			}),
		)))
	}
	return rows
}

// ── Comprobante de venta ──────────────────────────────────────────────────────

// receiptHeaderRow: sucursal (izq) y fecha + estado de la venta (der).
func receiptHeaderRow(sale *entity.Sale, branch *entity.Branch) core.Row {
	fecha := sale.SaleDate.Format("02/01/2006 15:04")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(branch.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(branch.Phone, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fecha, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Estado: "+sale.Status, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// clientRow: datos del cliente.
func clientRow(sale *entity.Sale) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   CI: %s",
				nonEmpty(sale.ClientName, "—"),
				nonEmpty(sale.ClientCI, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// itemsTableHeaderRow: cabecera de la tabla de renglones de la venta.
func itemsTableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// itemsTableRows: una fila por renglón de la venta.
func itemsTableRows(items []entity.SaleItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		subtotal := it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				it.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"Bs "+it.Price.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"Bs "+subtotal.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// receiptTotalsRow: bloque de totales alineado a la derecha.
func receiptTotalsRow(sale *entity.Sale) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(20).Add(
		col.New(3),
		col.New(3).Add(
			label("Descuento:"),
			grandLabel("TOTAL:"),
		),
		col.New(3).Add(
			value(sale.Discount.StringFixed(0)+"%"),
			grandValue("Bs "+sale.Total.StringFixed(2)),
		),
		col.New(3),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
