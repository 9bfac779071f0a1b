package checkout

import (
	"fmt"
	"regexp"

	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
)

// cashInputRe filtro del campo de efectivo: solo dígitos y un punto decimal.
var cashInputRe = regexp.MustCompile(`^\d*\.?\d*$`)

// ValidCashInput reporta si el texto se acepta en el campo de efectivo.
func ValidCashInput(text string) bool {
	return text == "" || cashInputRe.MatchString(text)
}

// Validation mensajes de validación persistentes (no vencen como los avisos).
type Validation struct {
	Cash string // vacío si el pago es válido
}

// validateTender el efectivo recibido debe cubrir el total; con tarjeta siempre es válido.
func validateTender(totals entity.Totals, tender entity.Tender) Validation {
	if tender.Method != entity.PaymentCash {
		return Validation{}
	}
	if totals.CashReceived.LessThan(totals.FinalTotal) {
		return Validation{Cash: fmt.Sprintf("Cash received must be at least %s", totals.FinalTotal.StringFixed(2))}
	}
	return Validation{}
}

// Valid sin mensajes pendientes.
func (v Validation) Valid() bool {
	return v.Cash == ""
}
