package entity

import "github.com/shopspring/decimal"

// Totals desglose monetario derivado del carrito. Nunca se persiste.
type Totals struct {
	SubtotalBeforeDiscount decimal.Decimal
	TotalDiscountAmount    decimal.Decimal
	SubtotalAfterDiscount  decimal.Decimal
	VATAmount              decimal.Decimal
	FinalTotal             decimal.Decimal
	CashReceived           decimal.Decimal
	Change                 decimal.Decimal
}

// DiscountPercentage porcentaje global de descuento (0 si no hay subtotal).
func (t Totals) DiscountPercentage() decimal.Decimal {
	if t.SubtotalBeforeDiscount.IsZero() {
		return decimal.Zero
	}
	return t.TotalDiscountAmount.Div(t.SubtotalBeforeDiscount).Mul(decimal.NewFromInt(100))
}
