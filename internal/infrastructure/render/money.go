package render

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var hundred = decimal.NewFromInt(100)

// Money formatea montos con separador de miles y dos decimales.
type Money struct {
	unit    currency.Unit
	printer *message.Printer
}

// NewMoney valida el código ISO 4217 de la moneda.
func NewMoney(code string) (Money, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return Money{}, fmt.Errorf("render: moneda %q inválida: %w", code, err)
	}
	return Money{unit: unit, printer: message.NewPrinter(language.English)}, nil
}

// Code código ISO de la moneda (p. ej. SAR).
func (m Money) Code() string { return m.unit.String() }

// Amount monto sin etiqueta: 1234.5 → "1,234.50".
func (m Money) Amount(d decimal.Decimal) string {
	r := d.Round(2)
	sign := ""
	if r.IsNegative() {
		sign = "-"
		r = r.Neg()
	}
	whole := r.Truncate(0)
	cents := r.Sub(whole).Mul(hundred).IntPart()
	return sign + m.printer.Sprintf("%d", whole.IntPart()) + fmt.Sprintf(".%02d", cents)
}

// Label monto con el código de moneda delante.
func (m Money) Label(d decimal.Decimal) string {
	return m.Code() + " " + m.Amount(d)
}
