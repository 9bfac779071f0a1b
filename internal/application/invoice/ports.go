package invoice

import (
	"context"
	"strings"

	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
)

// Format formato del documento imprimible.
type Format string

const (
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
)

// ParseFormat normaliza el formato pedido; vacío = html.
func ParseFormat(s string) (Format, bool) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatHTML:
		return FormatHTML, true
	case FormatPDF:
		return FormatPDF, true
	}
	return "", false
}

// Renderer genera el documento de una factura en un formato.
type Renderer interface {
	Render(ctx context.Context, inv entity.Invoice) ([]byte, error)
	ContentType() string
}

// Opener efecto de "abrir para imprimir" (cola de impresión, visor). Opcional.
type Opener interface {
	Open(ctx context.Context, doc Document) error
}

// Document documento generado listo para entregar o imprimir.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}
