package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/grocerymate-pos/internal/application/dto"
	"github.com/jhoicas/grocerymate-pos/internal/application/invoice"
)

// SalesHandler ventas ya registradas: re-visualización de facturas y bitácora local.
type SalesHandler struct {
	history *invoice.HistoryUseCase
	print   *invoice.PrintUseCase
}

func NewSalesHandler(history *invoice.HistoryUseCase, printUC *invoice.PrintUseCase) *SalesHandler {
	return &SalesHandler{history: history, print: printUC}
}

// Invoice godoc
// @Summary      Factura de una venta registrada
// @Description  Sin format (o format=json) devuelve la factura en JSON; html o pdf la genera e imprime.
// @Tags         sales
// @Produce      json
// @Produce      html
// @Produce      application/pdf
// @Param        id      path      string  true   "ID de la venta"
// @Param        format  query     string  false  "json, html o pdf"
// @Success      200     {object}  dto.InvoiceResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      502     {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/invoice [get]
func (h *SalesHandler) Invoice(c *fiber.Ctx) error {
	raw := strings.ToLower(strings.TrimSpace(c.Query("format")))
	var format invoice.Format
	if raw != "" && raw != "json" {
		f, ok := invoice.ParseFormat(raw)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "format debe ser json, html o pdf"})
		}
		format = f
	}

	inv, err := h.history.SaleInvoice(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if format == "" {
		return c.JSON(dto.FromInvoice(inv))
	}
	return sendDocument(c, h.print, inv, format)
}

// Journal godoc
// @Summary      Bitácora local de ventas
// @Description  Últimas ventas registradas en esta terminal, la más nueva primero. Solo Manager.
// @Tags         sales
// @Produce      json
// @Param        limit  query     int  false  "máximo de registros (20 por defecto, 200 máximo)"
// @Success      200    {array}   dto.JournalEntryResponse
// @Failure      403    {object}  dto.ErrorResponse
// @Router       /api/sales/journal [get]
func (h *SalesHandler) Journal(c *fiber.Ctx) error {
	var q dto.LimitRequest
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "limit inválido"})
	}
	q.DefaultLimit()
	entries, err := h.history.Journal(c.UserContext(), q.Limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromJournal(entries))
}
