// Package pdf genera la factura de venta en PDF con Maroto v2.
//
// Layout (ticket en A4):
//
//	┌──────────────────────────────────────────┐
//	│  Tienda            │  Invoice # + Fecha   │
//	│  CODE128 del número de factura            │
//	│  ──────────────────────────────────────── │
//	│  Item | Price (incl. VAT) | Qty           │
//	│  ──────────────────────────────────────── │
//	│  Subtotal / Discount / VAT / Final Total  │
//	│  Cash Received / Change (solo efectivo)   │
//	└──────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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
	"github.com/rs/zerolog"

	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
	"github.com/jhoicas/grocerymate-pos/internal/infrastructure/render"
)

var (
	colorPrimary = &props.Color{Red: 25, Green: 135, Blue: 84}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 220, Green: 53, Blue: 69}
)

// MarotoInvoiceRenderer implementa invoice.Renderer en PDF.
type MarotoInvoiceRenderer struct {
	storeName string
	money     render.Money
	log       zerolog.Logger
}

// NewMarotoInvoiceRenderer construye el generador.
func NewMarotoInvoiceRenderer(storeName string, money render.Money, log zerolog.Logger) *MarotoInvoiceRenderer {
	return &MarotoInvoiceRenderer{
		storeName: storeName,
		money:     money,
		log:       log.With().Str("component", "render.pdf").Logger(),
	}
}

// ContentType tipo MIME del documento.
func (g *MarotoInvoiceRenderer) ContentType() string { return "application/pdf" }

// Render genera el PDF y devuelve sus bytes.
func (g *MarotoInvoiceRenderer) Render(_ context.Context, inv entity.Invoice) ([]byte, error) {
	sheet := render.NewSheet(g.storeName, g.money, inv)

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("%s - Invoice #%s", sheet.StoreName, sheet.Number), true).
		WithAuthor(sheet.StoreName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sheet))
	if sheet.Number != "" {
		m.AddRows(barcodeRow(sheet.Number))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(itemRows(sheet)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(sheet)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Thank you for shopping with us!", props.Text{
			Size: 9, Align: align.Center, Color: colorGray, Top: 2,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	out := doc.GetBytes()
	g.log.Debug().Str("invoice", inv.Number).Int("bytes", len(out)).Msg("factura PDF generada")
	return out, nil
}

func headerRow(s render.Sheet) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(s.StoreName, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("Invoice #: "+s.Number, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New("Date: "+s.Date, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func barcodeRow(number string) core.Row {
	return row.New(22).Add(
		col.New(3),
		col.New(6).Add(code.NewBar(number, props.Barcode{Percent: 90, Center: true})),
		col.New(3),
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
		h("Item", 7, align.Left),
		h("Price (incl. VAT)", 3, align.Right),
		h("Qty", 2, align.Center),
	)
}

func itemRows(s render.Sheet) []core.Row {
	rows := make([]core.Row, 0, len(s.Lines))
	for _, l := range s.Lines {
		rows = append(rows, row.New(7).Add(
			col.New(7).Add(text.New(l.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(s.Currency+" "+l.UnitPrice, props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", l.Quantity), props.Text{
				Size: 8, Align: align.Center, Top: 1,
			})),
		))
	}
	return rows
}

// totalsRows una fila por total, alineadas a la derecha.
func totalsRows(s render.Sheet) []core.Row {
	total := func(label, value string, style fontstyle.Type, color *props.Color) core.Row {
		return row.New(6).Add(
			col.New(6),
			col.New(3).Add(text.New(label, props.Text{
				Style: style, Size: 9, Align: align.Right, Right: 2, Color: color,
			})),
			col.New(3).Add(text.New(value, props.Text{
				Style: style, Size: 9, Align: align.Right, Right: 1, Color: color,
			})),
		)
	}
	money := func(v string) string { return s.Currency + " " + v }

	rows := []core.Row{total("Subtotal:", money(s.Subtotal), fontstyle.Normal, nil)}
	if s.HasDiscount {
		rows = append(rows, total("Discount ("+s.DiscountPercent+"%):", "-"+money(s.Discount), fontstyle.Normal, colorDanger))
	}
	rows = append(rows,
		total("VAT ("+s.VATPercent+"%):", money(s.VAT), fontstyle.Normal, nil),
		total("Final Total:", money(s.Total), fontstyle.Bold, colorPrimary),
	)
	if s.IsCash {
		rows = append(rows,
			total("Cash Received:", money(s.CashReceived), fontstyle.Normal, nil),
			total("Change:", money(s.Change), fontstyle.Normal, nil),
		)
	}
	return rows
}
