package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/grocerymate-pos/internal/application/dto"
	"github.com/jhoicas/grocerymate-pos/internal/domain"
)

// LoginPath ruta a la que el cliente debe ir tras un 401.
const LoginPath = "/login"

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

var errorMappings = []errorMapping{
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "LOGIN_REQUIRED", "la sesión no es válida, inicie sesión"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", ""},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", ""},
	{domain.ErrEmptyCart, fiber.StatusUnprocessableEntity, "EMPTY_CART", "el carrito está vacío"},
	{domain.ErrInvalidTender, fiber.StatusUnprocessableEntity, "INVALID_TENDER", ""},
	{domain.ErrSubmissionInFlight, fiber.StatusConflict, "SUBMISSION_IN_FLIGHT", "ya hay una venta en proceso"},
	{domain.ErrInvalidState, fiber.StatusConflict, "INVALID_STATE", "operación no permitida en el estado actual"},
	{domain.ErrPrintInProgress, fiber.StatusConflict, "PRINT_IN_PROGRESS", "ya se está generando el documento"},
	{domain.ErrSaleRejected, fiber.StatusBadGateway, "SALE_REJECTED", "Failed to process sale"},
	{domain.ErrGateway, fiber.StatusBadGateway, "GATEWAY", "no se pudo contactar al servidor"},
	{domain.ErrRenderFailed, fiber.StatusInternalServerError, "RENDER_FAILED", "no se pudo generar la factura"},
	{context.DeadlineExceeded, fiber.StatusGatewayTimeout, "TIMEOUT", "tiempo de espera agotado"},
}

// writeError traduce errores de dominio a dto.ErrorResponse. Un mensaje vacío en la
// tabla significa que se devuelve el texto del error (validaciones).
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		msg := m.message
		if msg == "" {
			msg = err.Error()
		}
		if m.status == fiber.StatusUnauthorized {
			c.Set(fiber.HeaderLocation, LoginPath)
		}
		return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: msg})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
