package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry registro local de una venta completada en esta terminal (reimpresión y cuadre de caja).
type JournalEntry struct {
	InvoiceNumber string
	SaleID        string
	PaymentMethod PaymentMethod
	ItemCount     int
	FinalTotal    decimal.Decimal
	CashReceived  decimal.Decimal
	Change        decimal.Decimal
	CompletedAt   time.Time
}
