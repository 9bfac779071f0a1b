package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrEmptyCart          = errors.New("el carrito está vacío")
	ErrInvalidTender      = errors.New("pago inválido")
	ErrInvalidState       = errors.New("operación no permitida en el estado actual")
	ErrSubmissionInFlight = errors.New("ya hay una venta en proceso")
	ErrSaleRejected       = errors.New("venta rechazada por el servidor")
	ErrGateway            = errors.New("error de comunicación con el servidor")
	ErrPrintInProgress    = errors.New("ya se está generando el documento")
	ErrRenderFailed       = errors.New("no se pudo generar la factura")
)
