package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
)

// InvoiceLineResponse línea de la factura.
type InvoiceLineResponse struct {
	ProductID          string          `json:"productId"`
	Name               string          `json:"name"`
	Brand              string          `json:"brand"`
	UnitPrice          decimal.Decimal `json:"unitPrice"`
	Quantity           int             `json:"quantity"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	DiscountAmount     decimal.Decimal `json:"discountAmount"`
	VATAmount          decimal.Decimal `json:"vatAmount"`
	UnitPriceWithVAT   decimal.Decimal `json:"unitPriceWithVat"`
}

// InvoiceResponse factura de una venta completada.
type InvoiceResponse struct {
	InvoiceNumber string                `json:"invoiceNumber"`
	Date          time.Time             `json:"date"`
	PaymentMethod string                `json:"paymentMethod"`
	VATPercentage decimal.Decimal       `json:"vatPercentage"`
	Items         []InvoiceLineResponse `json:"items"`
	Totals        TotalsResponse        `json:"totals"`
}

// JournalEntryResponse venta registrada en la bitácora local.
type JournalEntryResponse struct {
	InvoiceNumber string          `json:"invoiceNumber"`
	SaleID        string          `json:"saleId,omitempty"`
	PaymentMethod string          `json:"paymentMethod"`
	ItemCount     int             `json:"itemCount"`
	FinalTotal    decimal.Decimal `json:"finalTotal"`
	CashReceived  decimal.Decimal `json:"cashReceived"`
	Change        decimal.Decimal `json:"change"`
	CompletedAt   time.Time       `json:"completedAt"`
}

func FromInvoice(inv entity.Invoice) InvoiceResponse {
	items := make([]InvoiceLineResponse, 0, len(inv.Lines))
	for _, l := range inv.Lines {
		items = append(items, InvoiceLineResponse{
			ProductID:          l.ProductID,
			Name:               l.Name,
			Brand:              l.Brand,
			UnitPrice:          l.UnitPrice,
			Quantity:           l.Quantity,
			DiscountPercentage: l.DiscountPercentage,
			Subtotal:           l.Subtotal,
			DiscountAmount:     l.DiscountAmount,
			VATAmount:          l.VATAmount,
			UnitPriceWithVAT:   l.UnitPriceWithVAT,
		})
	}
	return InvoiceResponse{
		InvoiceNumber: inv.Number,
		Date:          inv.Date,
		PaymentMethod: string(inv.PaymentMethod),
		VATPercentage: inv.VATPercentage,
		Items:         items,
		Totals:        FromTotals(inv.Totals),
	}
}

func FromJournal(entries []entity.JournalEntry) []JournalEntryResponse {
	out := make([]JournalEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, JournalEntryResponse{
			InvoiceNumber: e.InvoiceNumber,
			SaleID:        e.SaleID,
			PaymentMethod: string(e.PaymentMethod),
			ItemCount:     e.ItemCount,
			FinalTotal:    e.FinalTotal,
			CashReceived:  e.CashReceived,
			Change:        e.Change,
			CompletedAt:   e.CompletedAt,
		})
	}
	return out
}
