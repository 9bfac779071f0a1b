package entity

// PaymentMethod medio de pago de la venta.
type PaymentMethod string

const (
	PaymentCard PaymentMethod = "Card"
	PaymentCash PaymentMethod = "Cash"
)

// Valid indica si el medio de pago es uno de los soportados.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCard || m == PaymentCash
}

// Tender medio de pago y efectivo recibido. CashReceived guarda el texto tal como
// lo digitó el cajero; solo tiene sentido con PaymentCash.
type Tender struct {
	Method       PaymentMethod
	CashReceived string
}

// DefaultTender pago con tarjeta, sin efectivo.
func DefaultTender() Tender {
	return Tender{Method: PaymentCard}
}
