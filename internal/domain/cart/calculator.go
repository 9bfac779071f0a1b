package cart

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
)

// IVA fijo del 15% sobre el subtotal con descuento (constante de dominio).
var (
	VATRate       = decimal.RequireFromString("0.15")
	VATPercentage = decimal.NewFromInt(15)

	hundred = decimal.NewFromInt(100)
)

// LineAmounts desglose de una línea.
type LineAmounts struct {
	Subtotal         decimal.Decimal // UnitPrice × Quantity
	DiscountAmount   decimal.Decimal
	AfterDiscount    decimal.Decimal
	VATAmount        decimal.Decimal // redondeado a 2 decimales
	UnitPriceWithVAT decimal.Decimal // precio unitario con descuento + IVA, 2 decimales
}

// LineBreakdown calcula el desglose de una línea con la misma fórmula que los totales.
func LineBreakdown(l entity.CartLine) LineAmounts {
	qty := decimal.NewFromInt(int64(l.Quantity))
	if l.Quantity < 0 {
		qty = decimal.Zero
	}
	price := nonNegative(l.UnitPrice)
	pct := clampPercentage(l.DiscountPercentage)

	subtotal := price.Mul(qty)
	discount := subtotal.Mul(pct).Div(hundred)
	after := subtotal.Sub(discount)
	unitAfter := price.Sub(price.Mul(pct).Div(hundred))
	return LineAmounts{
		Subtotal:         subtotal,
		DiscountAmount:   discount,
		AfterDiscount:    after,
		VATAmount:        after.Mul(VATRate).Round(2),
		UnitPriceWithVAT: unitAfter.Add(unitAfter.Mul(VATRate)).Round(2),
	}
}

// ComputeTotals deriva el desglose monetario del carrito. Función pura: se puede
// llamar en cada render. El IVA se calcula sobre el subtotal ya descontado y se
// redondea a 2 decimales; el vuelto solo aplica a pagos en efectivo.
func ComputeTotals(lines []entity.CartLine, tender entity.Tender) entity.Totals {
	var before, discount decimal.Decimal
	for _, l := range lines {
		a := LineBreakdown(l)
		before = before.Add(a.Subtotal)
		discount = discount.Add(a.DiscountAmount)
	}
	after := before.Sub(discount)
	vat := after.Mul(VATRate).Round(2)
	final := after.Add(vat)

	t := entity.Totals{
		SubtotalBeforeDiscount: before,
		TotalDiscountAmount:    discount,
		SubtotalAfterDiscount:  after,
		VATAmount:              vat,
		FinalTotal:             final,
		CashReceived:           decimal.Zero,
		Change:                 decimal.Zero,
	}
	if tender.Method == entity.PaymentCash {
		t.CashReceived = ParseAmount(tender.CashReceived)
		t.Change = decimal.Max(decimal.Zero, t.CashReceived.Sub(final))
	}
	return t
}
