package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/grocerymate-pos/internal/application/checkout"
	"github.com/jhoicas/grocerymate-pos/internal/application/dto"
)

// CatalogHandler navegación del catálogo remoto por categorías.
type CatalogHandler struct {
	flow *checkout.Flow
}

func NewCatalogHandler(flow *checkout.Flow) *CatalogHandler {
	return &CatalogHandler{flow: flow}
}

// Categories godoc
// @Summary      Categorías
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   dto.CategoryResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/catalog/categories [get]
func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	cats, err := h.flow.BrowseCategories(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromCategories(cats))
}

// CategoryProducts godoc
// @Summary      Productos de una categoría
// @Tags         catalog
// @Produce      json
// @Param        id   path      string  true  "ID de la categoría"
// @Success      200  {array}   dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/catalog/categories/{id}/products [get]
func (h *CatalogHandler) CategoryProducts(c *fiber.Ctx) error {
	products, err := h.flow.BrowseCategory(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromProducts(products))
}
