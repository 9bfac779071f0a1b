// @title        GroceryMate POS API
// @version      1.0
// @description  API local de la terminal de venta GroceryMate: carrito, caja, facturas.
// @BasePath     /
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/afero"

	_ "github.com/jhoicas/grocerymate-pos/docs"
	"github.com/jhoicas/grocerymate-pos/internal/application/auth"
	"github.com/jhoicas/grocerymate-pos/internal/application/checkout"
	"github.com/jhoicas/grocerymate-pos/internal/application/invoice"
	"github.com/jhoicas/grocerymate-pos/internal/domain/cart"
	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
	"github.com/jhoicas/grocerymate-pos/internal/infrastructure/gateway"
	infrapdf "github.com/jhoicas/grocerymate-pos/internal/infrastructure/pdf"
	"github.com/jhoicas/grocerymate-pos/internal/infrastructure/printing"
	"github.com/jhoicas/grocerymate-pos/internal/infrastructure/render"
	httpRouter "github.com/jhoicas/grocerymate-pos/internal/interfaces/http"
	"github.com/jhoicas/grocerymate-pos/pkg/config"
	"github.com/jhoicas/grocerymate-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Str("gateway", cfg.Gateway.BaseURL).
		Msg("iniciando terminal")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento durable")
	}
	defer store.close()

	// El gateway necesita la sesión para el token y la sesión necesita el gateway para el login.
	client := gateway.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.Timeout, nil, log.Zerolog())
	session := auth.NewSessionUseCase(client, store.records, log.Zerolog())
	client.SetTokenSource(session)
	if err := session.Restore(ctx); err != nil {
		log.Warn().Err(err).Msg("no se pudo recuperar la sesión")
	}

	cartStore := cart.NewStore(store.records, log.Zerolog())
	if err := cartStore.Load(ctx); err != nil {
		log.Warn().Err(err).Msg("no se pudo recuperar el carrito")
	}
	cartLog := log.Component("cart")
	unsubscribe := cartStore.Subscribe(func(lines []entity.CartLine) {
		cartLog.Debug().Int("lines", len(lines)).Msg("carrito actualizado")
	})
	defer unsubscribe()

	flow := checkout.NewFlow(checkout.Deps{
		Cart:    cartStore,
		Catalog: client,
		Sales:   client,
		Journal: store.journal,
		Log:     log.Zerolog(),
	}, cfg.POS.NoticeTTL)

	money, err := render.NewMoney(cfg.POS.Currency)
	if err != nil {
		log.Fatal().Err(err).Msg("moneda de la factura")
	}
	renderers := map[invoice.Format]invoice.Renderer{
		invoice.FormatHTML: render.NewHTMLRenderer(cfg.POS.StoreName, money, log.Zerolog()),
		invoice.FormatPDF:  infrapdf.NewMarotoInvoiceRenderer(cfg.POS.StoreName, money, log.Zerolog()),
	}
	var opener invoice.Opener
	if cfg.POS.SpoolDir != "" {
		spool, err := printing.NewSpoolOpener(afero.NewOsFs(), cfg.POS.SpoolDir, log.Zerolog())
		if err != nil {
			log.Fatal().Err(err).Msg("cola de impresión")
		}
		opener = spool
	}
	printUC := invoice.NewPrintUseCase(renderers, opener, cfg.POS.PrintDelay, log.Zerolog())
	historyUC := invoice.NewHistoryUseCase(client, store.journal)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Gateway.Timeout + time.Second*10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "GroceryMate POS API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName: cfg.App.Name,
		Session: session,
		Flow:    flow,
		Print:   printUC,
		History: historyUC,
		Log:     log.Zerolog(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	flow.Close()

	log.Info().Msg("terminal detenida")
}
