package invoice

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/grocerymate-pos/internal/domain"
	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
)

// PrintUseCase genera el documento imprimible de una factura. Solo una generación a la vez;
// un fallo se registra y se devuelve, pero nunca toca el carrito ni el flujo de caja.
type PrintUseCase struct {
	renderers  map[Format]Renderer
	opener     Opener
	delay      time.Duration
	log        zerolog.Logger
	generating atomic.Bool
}

// NewPrintUseCase construye el caso de uso. opener puede ser nil (solo se devuelve el documento).
func NewPrintUseCase(renderers map[Format]Renderer, opener Opener, delay time.Duration, log zerolog.Logger) *PrintUseCase {
	return &PrintUseCase{
		renderers: renderers,
		opener:    opener,
		delay:     delay,
		log:       log.With().Str("component", "invoice").Logger(),
	}
}

// Generating indica si hay una generación en curso (la UI deshabilita "Imprimir").
func (uc *PrintUseCase) Generating() bool {
	return uc.generating.Load()
}

// Print genera la factura en el formato pedido y la entrega al Opener.
func (uc *PrintUseCase) Print(ctx context.Context, inv entity.Invoice, format Format) (*Document, error) {
	r, ok := uc.renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: formato %q no soportado", domain.ErrInvalidInput, format)
	}
	if strings.TrimSpace(inv.Number) == "" {
		return nil, fmt.Errorf("%w: factura sin número", domain.ErrInvalidInput)
	}
	if !uc.generating.CompareAndSwap(false, true) {
		return nil, domain.ErrPrintInProgress
	}
	defer uc.generating.Store(false)

	// pequeña espera para que la vista de la factura termine de montarse antes de imprimir
	if uc.delay > 0 {
		t := time.NewTimer(uc.delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}

	data, err := r.Render(ctx, inv)
	if err != nil {
		uc.log.Error().Err(err).Str("invoice", inv.Number).Str("format", string(format)).Msg("error generando factura")
		return nil, fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
	}
	doc := &Document{
		Filename:    fmt.Sprintf("factura-%s.%s", sanitizeFilename(inv.Number), format),
		ContentType: r.ContentType(),
		Data:        data,
	}

	if uc.opener != nil {
		if err := uc.opener.Open(ctx, *doc); err != nil {
			uc.log.Error().Err(err).Str("invoice", inv.Number).Msg("error enviando factura a impresión")
			return nil, fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
		}
	}
	uc.log.Info().Str("invoice", inv.Number).Str("format", string(format)).Int("bytes", len(data)).Msg("factura generada")
	return doc, nil
}

func sanitizeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, s)
}
