// Package invoice arma la foto inmutable de una venta y coordina su impresión.
package invoice

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/grocerymate-pos/internal/domain/cart"
	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
)

// Build arma la factura a partir del carrito confirmado. Las líneas se copian: la factura
// no comparte memoria con el carrito (que se vacía justo después).
func Build(number string, lines []entity.CartLine, tender entity.Tender, totals entity.Totals, at time.Time) entity.Invoice {
	inv := entity.Invoice{
		Number:        number,
		Date:          at,
		Lines:         make([]entity.InvoiceLine, 0, len(lines)),
		Totals:        totals,
		PaymentMethod: tender.Method,
		VATPercentage: cart.VATPercentage,
	}
	for _, l := range lines {
		inv.Lines = append(inv.Lines, invoiceLine(l))
	}
	if !inv.IsCash() {
		inv.Totals.CashReceived = decimal.Zero
		inv.Totals.Change = decimal.Zero
	}
	return inv
}

// FromSale reconstruye la factura de una venta histórica. Si el backend no trae totales
// se recalculan con la misma fórmula del carrito.
func FromSale(rec entity.SaleRecord) entity.Invoice {
	lines := make([]entity.CartLine, 0, len(rec.Items))
	for _, it := range rec.Items {
		lines = append(lines, entity.CartLine{
			ProductID:          it.ProductID,
			Name:               it.Name,
			Brand:              it.Brand,
			UnitPrice:          it.UnitPrice,
			Quantity:           it.Quantity,
			DiscountPercentage: it.DiscountPercentage,
			Barcode:            it.Barcode,
		})
	}

	method := rec.PaymentMethod
	if !method.Valid() {
		method = entity.PaymentCard
	}
	tender := entity.Tender{Method: method, CashReceived: rec.CashReceived.String()}
	totals := cart.ComputeTotals(lines, tender)
	if !rec.FinalTotal.IsZero() {
		totals = entity.Totals{
			SubtotalBeforeDiscount: rec.SubtotalBeforeDiscount,
			TotalDiscountAmount:    rec.TotalDiscountAmount,
			SubtotalAfterDiscount:  rec.SubtotalAfterDiscount,
			VATAmount:              rec.TotalVATAmount,
			FinalTotal:             rec.FinalTotal,
			CashReceived:           rec.CashReceived,
			Change:                 rec.Change,
		}
	}
	return Build(rec.InvoiceNumber, lines, tender, totals, rec.Date)
}

func invoiceLine(l entity.CartLine) entity.InvoiceLine {
	a := cart.LineBreakdown(l)
	return entity.InvoiceLine{
		ProductID:          l.ProductID,
		Name:               l.Name,
		Brand:              l.Brand,
		Barcode:            l.Barcode,
		UnitPrice:          l.UnitPrice,
		Quantity:           l.Quantity,
		DiscountPercentage: l.DiscountPercentage,
		Subtotal:           a.Subtotal,
		DiscountAmount:     a.DiscountAmount,
		VATAmount:          a.VATAmount,
		UnitPriceWithVAT:   a.UnitPriceWithVAT,
	}
}
