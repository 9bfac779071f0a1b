package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/rs/zerolog"

	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
)

//go:embed templates/invoice.html.tmpl
var templatesFS embed.FS

var invoiceTemplate = template.Must(template.ParseFS(templatesFS, "templates/invoice.html.tmpl"))

type htmlView struct {
	Sheet
	Barcode template.URL
}

// HTMLRenderer genera la factura como página HTML lista para imprimir.
type HTMLRenderer struct {
	storeName string
	money     Money
	log       zerolog.Logger
}

// NewHTMLRenderer construye el generador HTML.
func NewHTMLRenderer(storeName string, money Money, log zerolog.Logger) *HTMLRenderer {
	return &HTMLRenderer{
		storeName: storeName,
		money:     money,
		log:       log.With().Str("component", "render.html").Logger(),
	}
}

// ContentType tipo MIME del documento.
func (r *HTMLRenderer) ContentType() string { return "text/html; charset=utf-8" }

// Render genera el HTML. Sin número de factura no hay código de barras.
func (r *HTMLRenderer) Render(_ context.Context, inv entity.Invoice) ([]byte, error) {
	view := htmlView{Sheet: NewSheet(r.storeName, r.money, inv)}
	if inv.Number != "" {
		uri, err := Code128DataURI(inv.Number)
		if err != nil {
			return nil, err
		}
		view.Barcode = template.URL(uri)
	}

	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("render: ejecutar plantilla: %w", err)
	}
	r.log.Debug().Str("invoice", inv.Number).Int("bytes", buf.Len()).Msg("factura HTML generada")
	return buf.Bytes(), nil
}
