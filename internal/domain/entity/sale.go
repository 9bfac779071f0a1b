package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRecord venta registrada en el backend (historial), ya normalizada.
type SaleRecord struct {
	ID                     string
	InvoiceNumber          string
	Date                   time.Time
	Items                  []SaleRecordItem
	PaymentMethod          PaymentMethod
	CashReceived           decimal.Decimal
	Change                 decimal.Decimal
	SubtotalBeforeDiscount decimal.Decimal
	TotalDiscountAmount    decimal.Decimal
	SubtotalAfterDiscount  decimal.Decimal
	TotalVATAmount         decimal.Decimal
	FinalTotal             decimal.Decimal
}

// SaleRecordItem línea de una venta registrada.
type SaleRecordItem struct {
	ProductID          string
	Name               string
	Brand              string
	Barcode            string
	UnitPrice          decimal.Decimal
	Quantity           int
	DiscountPercentage decimal.Decimal
}

// SaleReceipt respuesta del backend al registrar una venta.
type SaleReceipt struct {
	InvoiceNumber string
	SaleID        string
}
