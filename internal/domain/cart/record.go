package cart

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
)

// RecordKey nombre fijo del registro durable del carrito.
const RecordKey = "salesCart"

var errMalformedRecord = errors.New("cart: registro durable mal formado")

// recordLine forma serializada de una línea:
// {productId, name, brand, unitPrice, quantity, discountPercentage, barcode|null}.
type recordLine struct {
	ProductID          string      `json:"productId"`
	Name               string      `json:"name"`
	Brand              string      `json:"brand"`
	UnitPrice          json.Number `json:"unitPrice"`
	Quantity           int         `json:"quantity"`
	DiscountPercentage json.Number `json:"discountPercentage"`
	Barcode            *string     `json:"barcode"`
}

// EncodeRecord serializa el carrito completo.
func EncodeRecord(lines []entity.CartLine) ([]byte, error) {
	out := make([]recordLine, 0, len(lines))
	for _, l := range lines {
		rl := recordLine{
			ProductID:          l.ProductID,
			Name:               l.Name,
			Brand:              l.Brand,
			UnitPrice:          json.Number(l.UnitPrice.String()),
			Quantity:           l.Quantity,
			DiscountPercentage: json.Number(l.DiscountPercentage.String()),
		}
		if l.Barcode != "" {
			b := l.Barcode
			rl.Barcode = &b
		}
		out = append(out, rl)
	}
	return json.Marshal(out)
}

// DecodeRecord reconstruye el carrito desde el registro durable.
// Los números se aceptan como número o como texto numérico; cualquier entrada
// inválida invalida el registro completo (no se repara parcialmente).
func DecodeRecord(data []byte) ([]entity.CartLine, error) {
	var raw []map[string]json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedRecord, err)
	}
	lines := make([]entity.CartLine, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, entry := range raw {
		line, err := decodeRecordLine(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: línea %d: %v", errMalformedRecord, i, err)
		}
		if _, dup := seen[line.ProductID]; dup {
			return nil, fmt.Errorf("%w: producto duplicado %s", errMalformedRecord, line.ProductID)
		}
		seen[line.ProductID] = struct{}{}
		lines = append(lines, line)
	}
	return lines, nil
}

func decodeRecordLine(entry map[string]json.RawMessage) (entity.CartLine, error) {
	if entry == nil {
		return entity.CartLine{}, errors.New("entrada nula")
	}
	id := scalarText(entry["productId"])
	if id == "" {
		id = scalarText(entry["id"])
	}
	if id == "" {
		return entity.CartLine{}, errors.New("productId requerido")
	}
	price, ok := ParseNumber(scalarText(entry["unitPrice"]))
	if !ok {
		return entity.CartLine{}, errors.New("unitPrice inválido")
	}
	qty, ok := ParseInteger(scalarText(entry["quantity"]))
	if !ok || qty < 1 {
		return entity.CartLine{}, errors.New("quantity inválida")
	}
	discount := ParseAmount(scalarText(entry["discountPercentage"]))

	return entity.CartLine{
		ProductID:          id,
		Name:               scalarText(entry["name"]),
		Brand:              scalarText(entry["brand"]),
		UnitPrice:          nonNegative(price),
		Quantity:           qty,
		DiscountPercentage: clampPercentage(discount),
		Barcode:            scalarText(entry["barcode"]),
	}, nil
}

// scalarText devuelve el texto de un escalar JSON (string o número); vacío para null,
// objetos, arreglos o ausencia.
func scalarText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	case '{', '[', 't', 'f':
		return ""
	}
	return string(raw)
}
