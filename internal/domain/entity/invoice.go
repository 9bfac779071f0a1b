package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceLine línea de la factura con su propio desglose.
type InvoiceLine struct {
	ProductID          string
	Name               string
	Brand              string
	Barcode            string
	UnitPrice          decimal.Decimal
	Quantity           int
	DiscountPercentage decimal.Decimal
	Subtotal           decimal.Decimal // UnitPrice × Quantity
	DiscountAmount     decimal.Decimal
	VATAmount          decimal.Decimal // sobre el subtotal con descuento
	UnitPriceWithVAT   decimal.Decimal // precio unitario con descuento + IVA
}

// DisplayName marca + nombre.
func (l InvoiceLine) DisplayName() string {
	return Product{Name: l.Name, Brand: l.Brand}.DisplayName()
}

// Invoice foto inmutable de una venta completada. El número lo asigna el backend.
type Invoice struct {
	Number        string
	Date          time.Time
	Lines         []InvoiceLine
	Totals        Totals
	PaymentMethod PaymentMethod
	VATPercentage decimal.Decimal
}

// IsCash indica si la venta se pagó en efectivo.
func (i Invoice) IsCash() bool {
	return i.PaymentMethod == PaymentCash
}
