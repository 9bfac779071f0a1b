package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/grocerymate-pos/internal/application/checkout"
	"github.com/jhoicas/grocerymate-pos/internal/application/dto"
	"github.com/jhoicas/grocerymate-pos/internal/application/invoice"
	"github.com/jhoicas/grocerymate-pos/internal/domain"
	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
)

// CheckoutHandler pantalla de caja: escaneo, pago, registro e impresión de la factura.
type CheckoutHandler struct {
	flow  *checkout.Flow
	print *invoice.PrintUseCase
}

// NewCheckoutHandler construye el handler de caja.
func NewCheckoutHandler(flow *checkout.Flow, printUC *invoice.PrintUseCase) *CheckoutHandler {
	return &CheckoutHandler{flow: flow, print: printUC}
}

// View godoc
// @Summary      Estado de la caja
// @Description  Estado, líneas, totales, validación, aviso vigente y si se puede registrar la venta.
// @Tags         checkout
// @Produce      json
// @Success      200  {object}  dto.CheckoutResponse
// @Router       /api/checkout [get]
func (h *CheckoutHandler) View(c *fiber.Ctx) error {
	return c.JSON(checkoutResponse(h.flow.View()))
}

// Scan godoc
// @Summary      Escanear código de barras
// @Description  Un código en blanco se ignora (204).
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ScanRequest  true  "barcode"
// @Success      201   {object}  dto.ScanResponse
// @Success      204
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/checkout/scan [post]
func (h *CheckoutHandler) Scan(c *fiber.Ctx) error {
	var in dto.ScanRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, err := h.flow.ScanBarcode(c.UserContext(), in.Barcode)
	if err != nil {
		return writeError(c, err)
	}
	if p == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ScanResponse{
		Product: dto.FromProduct(*p),
		Message: "Added " + p.DisplayName(),
	})
}

// Tender godoc
// @Summary      Medio de pago y efectivo recibido
// @Description  Ambos campos se validan antes de aplicar cualquiera. Con Card, cashReceived "" se ignora.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        body  body      dto.TenderRequest  true  "paymentMethod (Card|Cash), cashReceived"
// @Success      200   {object}  dto.CheckoutResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/checkout/tender [put]
func (h *CheckoutHandler) Tender(c *fiber.Ctx) error {
	var in dto.TenderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	var method *entity.PaymentMethod
	if in.PaymentMethod != nil {
		m := entity.PaymentMethod(*in.PaymentMethod)
		method = &m
	}
	if err := h.flow.UpdateTender(method, in.CashReceived); err != nil {
		return writeError(c, err)
	}
	return c.JSON(checkoutResponse(h.flow.View()))
}

// Submit godoc
// @Summary      Registrar la venta
// @Description  Una sola llamada al backend, sin reintentos. Un segundo envío mientras hay uno en curso devuelve 409.
// @Tags         checkout
// @Produce      json
// @Success      201  {object}  dto.InvoiceResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/checkout/submit [post]
func (h *CheckoutHandler) Submit(c *fiber.Ctx) error {
	inv, err := h.flow.Submit(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromInvoice(inv))
}

// Invoice godoc
// @Summary      Factura en pantalla
// @Tags         checkout
// @Produce      json
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/checkout/invoice [get]
func (h *CheckoutHandler) Invoice(c *fiber.Ctx) error {
	inv, ok := h.flow.Invoice()
	if !ok {
		return writeError(c, errNoInvoice)
	}
	return c.JSON(dto.FromInvoice(inv))
}

// Print godoc
// @Summary      Imprimir la factura en pantalla
// @Tags         checkout
// @Produce      html
// @Produce      application/pdf
// @Param        format  query     string  false  "html (por defecto) o pdf"
// @Success      200
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /api/checkout/invoice/print [get]
func (h *CheckoutHandler) Print(c *fiber.Ctx) error {
	format, ok := invoice.ParseFormat(c.Query("format"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "format debe ser html o pdf"})
	}
	inv, ok := h.flow.Invoice()
	if !ok {
		return writeError(c, errNoInvoice)
	}
	return sendDocument(c, h.print, inv, format)
}

// Dismiss godoc
// @Summary      Cerrar la factura
// @Description  Vuelve a la caja vacía. Sin factura en pantalla no hace nada.
// @Tags         checkout
// @Produce      json
// @Success      200  {object}  dto.CheckoutResponse
// @Router       /api/checkout/invoice [delete]
func (h *CheckoutHandler) Dismiss(c *fiber.Ctx) error {
	if err := h.flow.DismissInvoice(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(checkoutResponse(h.flow.View()))
}

var errNoInvoice = fmt.Errorf("%w: no hay factura en pantalla", domain.ErrInvalidState)

func sendDocument(c *fiber.Ctx, uc *invoice.PrintUseCase, inv entity.Invoice, format invoice.Format) error {
	doc, err := uc.Print(c.UserContext(), inv, format)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", doc.Filename))
	return c.Send(doc.Data)
}

func checkoutResponse(v checkout.View) dto.CheckoutResponse {
	out := dto.CheckoutResponse{
		State:  string(v.State),
		Lines:  dto.FromCartLines(v.Lines),
		Totals: dto.FromTotals(v.Totals),
		Tender: dto.TenderResponse{
			PaymentMethod: string(v.Tender.Method),
			CashReceived:  v.Tender.CashReceived,
		},
		Validation: dto.ValidationResponse{CashReceived: v.Validation.Cash},
		CanSubmit:  v.CanSubmit,
	}
	if v.Notice != nil {
		out.Notice = &dto.NoticeResponse{
			Kind:      string(v.Notice.Kind),
			Message:   v.Notice.Message,
			ExpiresAt: v.Notice.ExpiresAt,
		}
	}
	if v.Invoice != nil {
		inv := dto.FromInvoice(*v.Invoice)
		out.Invoice = &inv
	}
	return out
}
