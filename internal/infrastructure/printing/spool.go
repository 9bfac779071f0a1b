// Package printing entrega las facturas generadas a una carpeta de cola de impresión
// vigilada por el spooler de la caja.
package printing

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/jhoicas/grocerymate-pos/internal/application/invoice"
)

// SpoolOpener implementa invoice.Opener escribiendo el documento en la carpeta de cola.
type SpoolOpener struct {
	fs  afero.Fs
	dir string
	now func() time.Time
	log zerolog.Logger
}

// NewSpoolOpener crea la carpeta si no existe.
func NewSpoolOpener(fs afero.Fs, dir string, log zerolog.Logger) (*SpoolOpener, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("printing: crear %s: %w", dir, err)
	}
	return &SpoolOpener{
		fs:  fs,
		dir: dir,
		now: time.Now,
		log: log.With().Str("component", "printing").Logger(),
	}, nil
}

// Open escribe el documento con prefijo de fecha. Se escribe en un .part y se renombra
// para que el spooler nunca lea un archivo a medias.
func (s *SpoolOpener) Open(ctx context.Context, doc invoice.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name := s.now().UTC().Format("20060102T150405.000") + "-" + doc.Filename
	final := filepath.Join(s.dir, name)
	tmp := final + ".part"

	if err := afero.WriteFile(s.fs, tmp, doc.Data, 0o644); err != nil {
		return fmt.Errorf("printing: escribir %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, final); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("printing: renombrar %s: %w", tmp, err)
	}
	s.log.Info().Str("file", final).Int("bytes", len(doc.Data)).Msg("factura enviada a la cola de impresión")
	return nil
}
