package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/grocerymate-pos/internal/domain/cart"
	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
)

// AddLineRequest alta de un producto elegido en "Browse Products".
type AddLineRequest struct {
	ProductID string `json:"productId"`
}

// SetQuantityRequest nueva cantidad de una línea.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartLineResponse línea del carrito con su desglose.
type CartLineResponse struct {
	ProductID          string          `json:"productId"`
	Name               string          `json:"name"`
	Brand              string          `json:"brand"`
	UnitPrice          decimal.Decimal `json:"unitPrice"`
	Quantity           int             `json:"quantity"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	Barcode            string          `json:"barcode,omitempty"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	DiscountAmount     decimal.Decimal `json:"discountAmount"`
	Total              decimal.Decimal `json:"total"`
}

// TotalsResponse totales del carrito.
type TotalsResponse struct {
	SubtotalBeforeDiscount  decimal.Decimal `json:"subtotalBeforeDiscount"`
	TotalDiscountAmount     decimal.Decimal `json:"totalDiscountAmount"`
	TotalDiscountPercentage decimal.Decimal `json:"totalDiscountPercentage"`
	SubtotalAfterDiscount   decimal.Decimal `json:"subtotalAfterDiscount"`
	VATAmount               decimal.Decimal `json:"vatAmount"`
	FinalTotal              decimal.Decimal `json:"finalTotal"`
	CashReceived            decimal.Decimal `json:"cashReceived"`
	Change                  decimal.Decimal `json:"change"`
}

// CartResponse líneas + totales.
type CartResponse struct {
	Lines  []CartLineResponse `json:"lines"`
	Totals TotalsResponse     `json:"totals"`
}

func FromCartLines(lines []entity.CartLine) []CartLineResponse {
	out := make([]CartLineResponse, 0, len(lines))
	for _, l := range lines {
		b := cart.LineBreakdown(l)
		out = append(out, CartLineResponse{
			ProductID:          l.ProductID,
			Name:               l.Name,
			Brand:              l.Brand,
			UnitPrice:          l.UnitPrice,
			Quantity:           l.Quantity,
			DiscountPercentage: l.DiscountPercentage,
			Barcode:            l.Barcode,
			Subtotal:           b.Subtotal,
			DiscountAmount:     b.DiscountAmount,
			Total:              b.AfterDiscount,
		})
	}
	return out
}

func FromTotals(t entity.Totals) TotalsResponse {
	return TotalsResponse{
		SubtotalBeforeDiscount:  t.SubtotalBeforeDiscount,
		TotalDiscountAmount:     t.TotalDiscountAmount,
		TotalDiscountPercentage: t.DiscountPercentage().Round(2),
		SubtotalAfterDiscount:   t.SubtotalAfterDiscount,
		VATAmount:               t.VATAmount,
		FinalTotal:              t.FinalTotal,
		CashReceived:            t.CashReceived,
		Change:                  t.Change,
	}
}
