package http_test

import (
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/grocerymate-pos/internal/application/dto"
	"github.com/jhoicas/grocerymate-pos/internal/domain"
	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
)

func TestHealth(t *testing.T) {
	s := newTestServer(t, entity.RoleEmployee)
	resp := s.do(t, http.MethodGet, "/api/health", nil)
	body := decode[map[string]string](t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestSinSesion_RedirigeALogin(t *testing.T) {
	s := newTestServer(t, entity.RoleEmployee)

	resp := s.do(t, http.MethodGet, "/api/cart", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get(fiber.HeaderLocation))
	assert.Equal(t, "LOGIN_REQUIRED", decode[dto.ErrorResponse](t, resp).Code)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	s := newTestServer(t, entity.RoleEmployee)

	resp := s.do(t, http.MethodPost, "/api/session/login", map[string]string{"email": "c@shop.sa", "password": "bad"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "LOGIN_REQUIRED", decode[dto.ErrorResponse](t, resp).Code)
}

func TestSession_LoginYLogout(t *testing.T) {
	s := newTestServer(t, entity.RoleEmployee)
	s.login(t)

	sess := decode[dto.SessionResponse](t, s.do(t, http.MethodGet, "/api/session", nil))
	require.True(t, sess.Authenticated)
	assert.Equal(t, entity.RoleEmployee, sess.User.Role)

	resp := s.do(t, http.MethodPost, "/api/session/logout", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/api/checkout", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestScan_AgregaYNoEncontrado(t *testing.T) {
	s := newTestServer(t, entity.RoleEmployee)
	s.login(t)

	resp := s.do(t, http.MethodPost, "/api/checkout/scan", dto.ScanRequest{Barcode: "7701"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	scan := decode[dto.ScanResponse](t, resp)
	assert.Equal(t, "Added Almarai Milk", scan.Message)

	resp = s.do(t, http.MethodPost, "/api/checkout/scan", dto.ScanRequest{Barcode: "0000"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	view := decode[dto.CheckoutResponse](t, s.do(t, http.MethodGet, "/api/checkout", nil))
	assert.Equal(t, "Building", view.State)
	require.Len(t, view.Lines, 1)
	require.NotNil(t, view.Notice)
	assert.Equal(t, "Product not found", view.Notice.Message)

	resp = s.do(t, http.MethodPost, "/api/checkout/scan", dto.ScanRequest{Barcode: "  "})
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestCart_EdicionYCatalogo(t *testing.T) {
	s := newTestServer(t, entity.RoleEmployee)
	s.login(t)

	cats := decode[[]dto.CategoryResponse](t, s.do(t, http.MethodGet, "/api/catalog/categories", nil))
	require.Len(t, cats, 1)
	products := decode[[]dto.ProductResponse](t, s.do(t, http.MethodGet, "/api/catalog/categories/c1/products", nil))
	require.Len(t, products, 1)

	resp := s.do(t, http.MethodPost, "/api/cart/lines", dto.AddLineRequest{ProductID: products[0].ID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	c := decode[dto.CartResponse](t, s.do(t, http.MethodPut, "/api/cart/lines/p1", dto.SetQuantityRequest{Quantity: 3}))
	require.Len(t, c.Lines, 1)
	assert.Equal(t, 3, c.Lines[0].Quantity)
	assert.True(t, c.Totals.FinalTotal.Equal(decimal.RequireFromString("31.05")), c.Totals.FinalTotal.String())

	c = decode[dto.CartResponse](t, s.do(t, http.MethodPut, "/api/cart/lines/p1", dto.SetQuantityRequest{Quantity: 0}))
	assert.Equal(t, 3, c.Lines[0].Quantity, "cantidad < 1 se ignora")

	c = decode[dto.CartResponse](t, s.do(t, http.MethodDelete, "/api/cart/lines/p1", nil))
	assert.Empty(t, c.Lines)

	resp = s.do(t, http.MethodPost, "/api/cart/lines", dto.AddLineRequest{})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSubmit_VentaEnEfectivoCompleta(t *testing.T) {
	s := newTestServer(t, entity.RoleEmployee)
	s.login(t)

	resp := s.do(t, http.MethodPost, "/api/checkout/scan", dto.ScanRequest{Barcode: "7701"})
	resp.Body.Close()

	cash, short := "Cash", "5"
	view := decode[dto.CheckoutResponse](t, s.do(t, http.MethodPut, "/api/checkout/tender", dto.TenderRequest{PaymentMethod: &cash, CashReceived: &short}))
	assert.Equal(t, "Cash received must be at least 10.35", view.Validation.CashReceived)
	assert.False(t, view.CanSubmit)

	resp = s.do(t, http.MethodPost, "/api/checkout/submit", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "INVALID_TENDER", decode[dto.ErrorResponse](t, resp).Code)

	enough := "20"
	view = decode[dto.CheckoutResponse](t, s.do(t, http.MethodPut, "/api/checkout/tender", dto.TenderRequest{CashReceived: &enough}))
	assert.True(t, view.CanSubmit)

	resp = s.do(t, http.MethodPost, "/api/checkout/submit", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	inv := decode[dto.InvoiceResponse](t, resp)
	assert.Equal(t, "INV-0042", inv.InvoiceNumber)
	assert.True(t, inv.Totals.Change.Equal(decimal.RequireFromString("9.65")))

	view = decode[dto.CheckoutResponse](t, s.do(t, http.MethodGet, "/api/checkout", nil))
	assert.Equal(t, "Completed", view.State)
	assert.Empty(t, view.Lines)
	require.NotNil(t, view.Invoice)

	// con la factura en pantalla el carrito no se edita
	resp = s.do(t, http.MethodPost, "/api/checkout/scan", dto.ScanRequest{Barcode: "7701"})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/api/checkout/invoice/print?format=html", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "factura-INV-0042.html")
	html, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(html), "Invoice #: INV-0042")

	resp = s.do(t, http.MethodGet, "/api/checkout/invoice/print?format=pdf", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "pdf no está registrado en este servidor")

	view = decode[dto.CheckoutResponse](t, s.do(t, http.MethodDelete, "/api/checkout/invoice", nil))
	assert.Equal(t, "Idle", view.State)
	assert.Equal(t, "Card", view.Tender.PaymentMethod)

	resp = s.do(t, http.MethodGet, "/api/checkout/invoice", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSubmit_CarritoVacio(t *testing.T) {
	s := newTestServer(t, entity.RoleEmployee)
	s.login(t)

	resp := s.do(t, http.MethodPost, "/api/checkout/submit", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "EMPTY_CART", decode[dto.ErrorResponse](t, resp).Code)
	assert.Zero(t, s.sales.calls)
}

func TestSubmit_FalloDelBackendConservaCarrito(t *testing.T) {
	s := newTestServer(t, entity.RoleEmployee)
	s.login(t)
	s.sales.err = errors.Join(domain.ErrSaleRejected, errors.New("stock insuficiente"))

	resp := s.do(t, http.MethodPost, "/api/checkout/scan", dto.ScanRequest{Barcode: "7701"})
	resp.Body.Close()

	resp = s.do(t, http.MethodPost, "/api/checkout/submit", nil)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "SALE_REJECTED", decode[dto.ErrorResponse](t, resp).Code)

	view := decode[dto.CheckoutResponse](t, s.do(t, http.MethodGet, "/api/checkout", nil))
	assert.Equal(t, "Building", view.State)
	assert.Len(t, view.Lines, 1)
	require.NotNil(t, view.Notice)
	assert.Equal(t, "Failed to process sale", view.Notice.Message)
}

func TestTender_EntradaInvalida(t *testing.T) {
	s := newTestServer(t, entity.RoleEmployee)
	s.login(t)

	cash, bad := "Cash", "12a"
	resp := s.do(t, http.MethodPut, "/api/checkout/tender", dto.TenderRequest{PaymentMethod: &cash, CashReceived: &bad})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	other := "Crypto"
	resp = s.do(t, http.MethodPut, "/api/checkout/tender", dto.TenderRequest{PaymentMethod: &other})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()
}

func TestTender_TarjetaConEfectivoVacio(t *testing.T) {
	s := newTestServer(t, entity.RoleEmployee)
	s.login(t)

	card, empty := "Card", ""
	resp := s.do(t, http.MethodPut, "/api/checkout/tender", dto.TenderRequest{PaymentMethod: &card, CashReceived: &empty})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := decode[dto.CheckoutResponse](t, resp)
	assert.Equal(t, "Card", view.Tender.PaymentMethod)
	assert.Equal(t, "", view.Tender.CashReceived)
}

func TestTender_RechazoNoCambiaElMedioDePago(t *testing.T) {
	s := newTestServer(t, entity.RoleEmployee)
	s.login(t)

	cash, amount := "Cash", "30"
	resp := s.do(t, http.MethodPut, "/api/checkout/tender", dto.TenderRequest{PaymentMethod: &cash, CashReceived: &amount})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	card := "Card"
	resp = s.do(t, http.MethodPut, "/api/checkout/tender", dto.TenderRequest{PaymentMethod: &card, CashReceived: &amount})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()

	view := decode[dto.CheckoutResponse](t, s.do(t, http.MethodGet, "/api/checkout", nil))
	assert.Equal(t, "Cash", view.Tender.PaymentMethod)
	assert.Equal(t, "30", view.Tender.CashReceived)
}

func TestSales_FacturaHistorica(t *testing.T) {
	s := newTestServer(t, entity.RoleEmployee)
	s.login(t)

	inv := decode[dto.InvoiceResponse](t, s.do(t, http.MethodGet, "/api/sales/42/invoice", nil))
	assert.Equal(t, "INV-0042", inv.InvoiceNumber)
	assert.True(t, inv.Totals.FinalTotal.Equal(decimal.RequireFromString("11.5")))

	resp := s.do(t, http.MethodGet, "/api/sales/42/invoice?format=html", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/api/sales/7/invoice", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/api/sales/42/invoice?format=xml", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSales_BitacoraSoloManager(t *testing.T) {
	employee := newTestServer(t, entity.RoleEmployee)
	employee.login(t)
	resp := employee.do(t, http.MethodGet, "/api/sales/journal", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decode[dto.ErrorResponse](t, resp).Code)

	manager := newTestServer(t, entity.RoleManager)
	manager.login(t)
	resp = manager.do(t, http.MethodPost, "/api/checkout/scan", dto.ScanRequest{Barcode: "7701"})
	resp.Body.Close()
	resp = manager.do(t, http.MethodPost, "/api/checkout/submit", nil)
	resp.Body.Close()

	entries := decode[[]dto.JournalEntryResponse](t, manager.do(t, http.MethodGet, "/api/sales/journal?limit=5", nil))
	require.Len(t, entries, 1)
	assert.Equal(t, "INV-0042", entries[0].InvoiceNumber)
	assert.Equal(t, "42", entries[0].SaleID)
}
