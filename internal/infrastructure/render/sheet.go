// Package render arma la hoja imprimible de una factura y la genera en HTML.
// El generador PDF reutiliza la misma hoja.
package render

import (
	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
)

const dateLayout = "2006-01-02 15:04"

// SheetLine fila de la tabla de artículos.
type SheetLine struct {
	Name      string
	UnitPrice string // con descuento e IVA
	Quantity  int
}

// Sheet contenido ya formateado de la factura.
type Sheet struct {
	StoreName       string
	Currency        string
	Number          string
	Date            string
	Lines           []SheetLine
	Subtotal        string
	HasDiscount     bool
	DiscountPercent string
	Discount        string
	VATPercent      string
	VAT             string
	Total           string
	IsCash          bool
	CashReceived    string
	Change          string
}

// NewSheet formatea la factura. El descuento solo aparece si es mayor a cero
// y el efectivo solo para pagos en efectivo.
func NewSheet(storeName string, money Money, inv entity.Invoice) Sheet {
	s := Sheet{
		StoreName:   storeName,
		Currency:    money.Code(),
		Number:      inv.Number,
		Date:        inv.Date.Format(dateLayout),
		Lines:       make([]SheetLine, 0, len(inv.Lines)),
		Subtotal:    money.Amount(inv.Totals.SubtotalBeforeDiscount),
		HasDiscount: inv.Totals.TotalDiscountAmount.IsPositive(),
		VATPercent:  inv.VATPercentage.String(),
		VAT:         money.Amount(inv.Totals.VATAmount),
		Total:       money.Amount(inv.Totals.FinalTotal),
		IsCash:      inv.IsCash(),
	}
	for _, l := range inv.Lines {
		s.Lines = append(s.Lines, SheetLine{
			Name:      l.DisplayName(),
			UnitPrice: money.Amount(l.UnitPriceWithVAT),
			Quantity:  l.Quantity,
		})
	}
	if s.HasDiscount {
		s.DiscountPercent = inv.Totals.DiscountPercentage().StringFixed(1)
		s.Discount = money.Amount(inv.Totals.TotalDiscountAmount)
	}
	if s.IsCash {
		s.CashReceived = money.Amount(inv.Totals.CashReceived)
		s.Change = money.Amount(inv.Totals.Change)
	}
	return s
}
