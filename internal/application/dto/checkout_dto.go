package dto

import "time"

// ScanRequest código leído por el escáner (o digitado).
type ScanRequest struct {
	Barcode string `json:"barcode"`
}

// TenderRequest cambia el medio de pago y/o el efectivo recibido. Campos nulos no se tocan.
type TenderRequest struct {
	PaymentMethod *string `json:"paymentMethod"`
	CashReceived  *string `json:"cashReceived"`
}

// TenderResponse pago actual tal como se digitó.
type TenderResponse struct {
	PaymentMethod string `json:"paymentMethod"`
	CashReceived  string `json:"cashReceived"`
}

// NoticeResponse aviso transitorio vigente.
type NoticeResponse struct {
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ValidationResponse mensajes persistentes del formulario de pago.
type ValidationResponse struct {
	CashReceived string `json:"cashReceived,omitempty"`
}

// CheckoutResponse estado completo de la pantalla de caja.
type CheckoutResponse struct {
	State      string             `json:"state"`
	Lines      []CartLineResponse `json:"lines"`
	Totals     TotalsResponse     `json:"totals"`
	Tender     TenderResponse     `json:"tender"`
	Validation ValidationResponse `json:"validation"`
	Notice     *NoticeResponse    `json:"notice,omitempty"`
	CanSubmit  bool               `json:"canSubmit"`
	Invoice    *InvoiceResponse   `json:"invoice,omitempty"`
}

// ScanResponse producto agregado por el escaneo.
type ScanResponse struct {
	Product ProductResponse `json:"product"`
	Message string          `json:"message"`
}
