package checkout

import (
	"github.com/jhoicas/grocerymate-pos/internal/application/ports"
	"github.com/jhoicas/grocerymate-pos/internal/domain/cart"
	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
)

// buildSaleRequest arma el registro de venta desde el carrito y sus totales.
func buildSaleRequest(key string, lines []entity.CartLine, tender entity.Tender, totals entity.Totals) ports.SaleRequest {
	req := ports.SaleRequest{
		IdempotencyKey:          key,
		Items:                   make([]ports.SaleItemRequest, 0, len(lines)),
		PaymentMethod:           tender.Method,
		CashReceived:            totals.CashReceived,
		Change:                  totals.Change,
		SubtotalBeforeDiscount:  totals.SubtotalBeforeDiscount,
		TotalDiscountPercentage: totals.DiscountPercentage().Round(2),
		TotalDiscountAmount:     totals.TotalDiscountAmount,
		SubtotalAfterDiscount:   totals.SubtotalAfterDiscount,
		TotalVATAmount:          totals.VATAmount,
		VATPercentage:           cart.VATPercentage,
		FinalTotal:              totals.FinalTotal,
	}
	for _, l := range lines {
		req.Items = append(req.Items, ports.SaleItemRequest{
			ProductID:          l.ProductID,
			Quantity:           l.Quantity,
			UnitPrice:          l.UnitPrice,
			DiscountPercentage: l.DiscountPercentage,
			Subtotal:           cart.LineBreakdown(l).Subtotal,
		})
	}
	return req
}
