package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/grocerymate-pos/internal/application/auth"
	"github.com/jhoicas/grocerymate-pos/internal/application/checkout"
	"github.com/jhoicas/grocerymate-pos/internal/application/invoice"
	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName string
	Session *auth.SessionUseCase
	Flow    *checkout.Flow
	Print   *invoice.PrintUseCase
	History *invoice.HistoryUseCase
	Log     zerolog.Logger
}

// Router registra las rutas de la API de la terminal.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", RequestLogger(deps.Log))

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	// Sesión (público)
	sessionHandler := NewSessionHandler(deps.Session)
	api.Post("/session/login", sessionHandler.Login)
	api.Post("/session/logout", sessionHandler.Logout)
	api.Get("/session", sessionHandler.Current)

	// Rutas protegidas (requieren sesión en la terminal)
	protected := api.Group("/", RequireSession(deps.Session))

	// Carrito
	cart := protected.Group("/cart")
	cartHandler := NewCartHandler(deps.Flow)
	cart.Get("/", cartHandler.Get)
	cart.Delete("/", cartHandler.Clear)
	cart.Post("/lines", cartHandler.AddLine)
	cart.Put("/lines/:productId", cartHandler.SetQuantity)
	cart.Delete("/lines/:productId", cartHandler.RemoveLine)

	// Catálogo
	catalog := protected.Group("/catalog")
	catalogHandler := NewCatalogHandler(deps.Flow)
	catalog.Get("/categories", catalogHandler.Categories)
	catalog.Get("/categories/:id/products", catalogHandler.CategoryProducts)

	// Caja
	co := protected.Group("/checkout")
	checkoutHandler := NewCheckoutHandler(deps.Flow, deps.Print)
	co.Get("/", checkoutHandler.View)
	co.Post("/scan", checkoutHandler.Scan)
	co.Put("/tender", checkoutHandler.Tender)
	co.Post("/submit", checkoutHandler.Submit)
	co.Get("/invoice", checkoutHandler.Invoice)
	co.Get("/invoice/print", checkoutHandler.Print)
	co.Delete("/invoice", checkoutHandler.Dismiss)

	// Ventas registradas
	sales := protected.Group("/sales")
	salesHandler := NewSalesHandler(deps.History, deps.Print)
	sales.Get("/journal", RequireRole(entity.RoleManager), salesHandler.Journal)
	sales.Get("/:id/invoice", salesHandler.Invoice)
}
