package cart

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	leadingNumberRe = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
	leadingIntRe    = regexp.MustCompile(`^[+-]?\d+`)
)

// SanitizeNumber devuelve x, o 0 si x es NaN o infinito.
// Todo float que entra a la aritmética del carrito pasa por aquí.
func SanitizeNumber(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}

// SanitizeDecimal convierte un float saneado a decimal.
func SanitizeDecimal(x float64) decimal.Decimal {
	return decimal.NewFromFloat(SanitizeNumber(x))
}

// ParseNumber interpreta el prefijo numérico de s (mismo criterio que parseFloat en el front):
// "12.5abc" -> 12.5. ok es false si no hay prefijo numérico o el valor no es finito.
func ParseNumber(s string) (decimal.Decimal, bool) {
	m := leadingNumberRe.FindString(strings.TrimSpace(s))
	if m == "" {
		return decimal.Zero, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil || SanitizeNumber(f) != f {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return SanitizeDecimal(f), true
	}
	return d, true
}

// ParseAmount como ParseNumber pero texto vacío o inválido vale 0.
func ParseAmount(s string) decimal.Decimal {
	d, _ := ParseNumber(s)
	return d
}

// ParseInteger interpreta el prefijo entero de s (parseInt).
func ParseInteger(s string) (int, bool) {
	m := leadingIntRe.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// clampPercentage limita un porcentaje a [0,100].
func clampPercentage(p decimal.Decimal) decimal.Decimal {
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}

// nonNegative reemplaza montos negativos por 0.
func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
