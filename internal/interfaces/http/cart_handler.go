package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/grocerymate-pos/internal/application/checkout"
	"github.com/jhoicas/grocerymate-pos/internal/application/dto"
)

// CartHandler edición del carrito. Todo pasa por el flujo de caja, que bloquea la edición
// mientras hay una venta en proceso o una factura en pantalla.
type CartHandler struct {
	flow *checkout.Flow
}

// NewCartHandler construye el handler del carrito.
func NewCartHandler(flow *checkout.Flow) *CartHandler {
	return &CartHandler{flow: flow}
}

// Get godoc
// @Summary      Carrito actual
// @Tags         cart
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	return c.JSON(cartResponse(h.flow.View()))
}

// AddLine godoc
// @Summary      Agregar producto (Browse Products)
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      dto.AddLineRequest  true  "productId"
// @Success      201   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cart/lines [post]
func (h *CartHandler) AddLine(c *fiber.Ctx) error {
	var in dto.AddLineRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if strings.TrimSpace(in.ProductID) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "productId es requerido"})
	}
	if _, err := h.flow.AddProductByID(c.UserContext(), in.ProductID); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cartResponse(h.flow.View()))
}

// SetQuantity godoc
// @Summary      Cambiar cantidad de una línea
// @Description  Cantidades menores a 1 se ignoran.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        productId  path      string                  true  "ID del producto"
// @Param        body       body      dto.SetQuantityRequest  true  "quantity"
// @Success      200        {object}  dto.CartResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Failure      409        {object}  dto.ErrorResponse
// @Router       /api/cart/lines/{productId} [put]
func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	var in dto.SetQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.flow.SetQuantity(c.UserContext(), c.Params("productId"), in.Quantity); err != nil {
		return writeError(c, err)
	}
	return c.JSON(cartResponse(h.flow.View()))
}

// RemoveLine godoc
// @Summary      Quitar una línea
// @Tags         cart
// @Produce      json
// @Param        productId  path      string  true  "ID del producto"
// @Success      200        {object}  dto.CartResponse
// @Failure      409        {object}  dto.ErrorResponse
// @Router       /api/cart/lines/{productId} [delete]
func (h *CartHandler) RemoveLine(c *fiber.Ctx) error {
	if err := h.flow.RemoveLine(c.UserContext(), c.Params("productId")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(cartResponse(h.flow.View()))
}

// Clear godoc
// @Summary      Vaciar carrito
// @Tags         cart
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.flow.ClearCart(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(cartResponse(h.flow.View()))
}

func cartResponse(v checkout.View) dto.CartResponse {
	return dto.CartResponse{
		Lines:  dto.FromCartLines(v.Lines),
		Totals: dto.FromTotals(v.Totals),
	}
}
