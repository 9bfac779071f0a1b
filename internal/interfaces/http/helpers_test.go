package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/grocerymate-pos/internal/application/auth"
	"github.com/jhoicas/grocerymate-pos/internal/application/checkout"
	"github.com/jhoicas/grocerymate-pos/internal/application/invoice"
	"github.com/jhoicas/grocerymate-pos/internal/application/ports"
	"github.com/jhoicas/grocerymate-pos/internal/domain"
	"github.com/jhoicas/grocerymate-pos/internal/domain/cart"
	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
	"github.com/jhoicas/grocerymate-pos/internal/infrastructure/memory"
	"github.com/jhoicas/grocerymate-pos/internal/infrastructure/render"
	apphttp "github.com/jhoicas/grocerymate-pos/internal/interfaces/http"
)

type stubAuth struct {
	role string
}

func (a stubAuth) Login(_ context.Context, email, password string) (entity.Session, error) {
	if password != "secret" {
		return entity.Session{}, domain.ErrUnauthorized
	}
	return entity.Session{
		Token:     "tok",
		User:      entity.User{ID: "u1", Name: "Cajero", Email: email, Roles: []string{a.role}},
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

type stubCatalog struct{}

var milk = entity.Product{
	ID: "p1", Name: "Milk", Brand: "Almarai", Barcode: "7701",
	UnitPrice: decimal.NewFromInt(10), DiscountPercentage: decimal.NewFromInt(10),
}

func (stubCatalog) LookupBarcode(_ context.Context, code string) (entity.Product, error) {
	if code == milk.Barcode {
		return milk, nil
	}
	return entity.Product{}, domain.ErrNotFound
}

func (stubCatalog) GetProduct(_ context.Context, id string) (entity.Product, error) {
	if id == milk.ID {
		return milk, nil
	}
	return entity.Product{}, domain.ErrNotFound
}

func (stubCatalog) ListCategories(context.Context) ([]entity.Category, error) {
	return []entity.Category{{ID: "c1", Name: "Dairy"}}, nil
}

func (stubCatalog) ListCategoryProducts(_ context.Context, id string) ([]entity.Product, error) {
	if id != "c1" {
		return nil, domain.ErrNotFound
	}
	return []entity.Product{milk}, nil
}

type stubSales struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (s *stubSales) SubmitSale(context.Context, ports.SaleRequest) (entity.SaleReceipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return entity.SaleReceipt{}, s.err
	}
	return entity.SaleReceipt{InvoiceNumber: "INV-0042", SaleID: "42"}, nil
}

func (s *stubSales) GetSale(_ context.Context, id string) (entity.SaleRecord, error) {
	if id != "42" {
		return entity.SaleRecord{}, domain.ErrNotFound
	}
	return entity.SaleRecord{
		ID: "42", InvoiceNumber: "INV-0042", PaymentMethod: entity.PaymentCard,
		Items: []entity.SaleRecordItem{{ProductID: "p1", Name: "Milk", UnitPrice: decimal.NewFromInt(10), Quantity: 1}},
	}, nil
}

type testServer struct {
	app   *fiber.App
	sales *stubSales
}

func newTestServer(t *testing.T, role string) *testServer {
	t.Helper()
	log := zerolog.Nop()
	records := memory.NewRecordStore()
	sales := &stubSales{}
	journal := memory.NewSaleJournal()

	session := auth.NewSessionUseCase(stubAuth{role: role}, records, log)
	flow := checkout.NewFlow(checkout.Deps{
		Cart:    cart.NewStore(records, log),
		Catalog: stubCatalog{},
		Sales:   sales,
		Journal: journal,
		Log:     log,
	}, time.Minute)

	money, err := render.NewMoney("SAR")
	require.NoError(t, err)
	printUC := invoice.NewPrintUseCase(map[invoice.Format]invoice.Renderer{
		invoice.FormatHTML: render.NewHTMLRenderer("GroceryMate", money, log),
	}, nil, 0, log)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AppName: "grocerymate-pos",
		Session: session,
		Flow:    flow,
		Print:   printUC,
		History: invoice.NewHistoryUseCase(sales, journal),
		Log:     log,
	})
	return &testServer{app: app, sales: sales}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (s *testServer) login(t *testing.T) {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/session/login", map[string]string{"email": "c@shop.sa", "password": "secret"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
