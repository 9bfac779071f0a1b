package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
)

const (
	barModuleWidth = 2
	barHeight      = 80
)

// Code128PNG dibuja el código CODE128 del texto y lo devuelve como PNG.
func Code128PNG(content string) ([]byte, error) {
	bc, err := code128.Encode(content)
	if err != nil {
		return nil, fmt.Errorf("render: codificar %q: %w", content, err)
	}
	scaled, err := barcode.Scale(bc, bc.Bounds().Dx()*barModuleWidth, barHeight)
	if err != nil {
		return nil, fmt.Errorf("render: escalar código: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("render: png: %w", err)
	}
	return buf.Bytes(), nil
}

// Code128DataURI igual que Code128PNG pero como data URI para <img src>.
func Code128DataURI(content string) (string, error) {
	raw, err := Code128PNG(content)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw), nil
}
