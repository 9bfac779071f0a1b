package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/grocerymate-pos/internal/application/ports"
	"github.com/jhoicas/grocerymate-pos/internal/domain"
	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
)

type stubTokens struct {
	mu          sync.Mutex
	token       string
	invalidated bool
}

func (s *stubTokens) BearerToken(context.Context) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

func (s *stubTokens) Invalidate(context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.invalidated = true
}

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *stubTokens) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	tokens := &stubTokens{token: "tok-123"}
	return NewClient(srv.URL+"/api", 5*time.Second, tokens, zerolog.Nop()), tokens
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestLookupBarcode_DesenvuelveYNormaliza(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/product/barcode/7702001", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		writeJSON(w, 200, `{"data":{"ProductID":7,"productName":"Leche","Brand":"Alpina","price":"4.50","discountPercentage":10,"barcode":"7702001"}}`)
	})

	p, err := c.LookupBarcode(context.Background(), " 7702001 ")

	require.NoError(t, err)
	assert.Equal(t, "7", p.ID)
	assert.Equal(t, "Leche", p.Name)
	assert.Equal(t, "Alpina Leche", p.DisplayName())
	assert.True(t, p.UnitPrice.Equal(decimal.RequireFromString("4.5")))
	assert.True(t, p.DiscountPercentage.Equal(decimal.NewFromInt(10)))
}

func TestLookupBarcode_NoEncontrado(t *testing.T) {
	t.Run("404", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, 404, `{"message":"not found"}`)
		})
		_, err := c.LookupBarcode(context.Background(), "000")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
	t.Run("cuerpo null", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, 200, `null`)
		})
		_, err := c.LookupBarcode(context.Background(), "000")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestNoAutorizado_DescartaSesion(t *testing.T) {
	c, tokens := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 401, `{"error":"token expired"}`)
	})

	_, err := c.ListCategories(context.Background())

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.True(t, tokens.invalidated)

	// sin token ya no se llega al backend
	_, err = c.ListCategories(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestListCategoryProducts(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/categories/3/products", r.URL.Path)
		writeJSON(w, 200, `[{"id":1,"name":"Pan","price":1.2},{"name":"sin id"},{"productID":"2","name":"Queso","unitPrice":"8"}]`)
	})

	got, err := c.ListCategoryProducts(context.Background(), "3")

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[0].CategoryID)
	assert.Equal(t, "Queso", got[1].Name)
}

func TestSubmitSale_FormatoEIdempotencia(t *testing.T) {
	var body map[string]any
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "key-1", r.Header.Get("Idempotency-Key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(w, 200, `{"data":{"InvoiceNumber":"INV-0001","id":99}}`)
	})
	req := ports.SaleRequest{
		IdempotencyKey: "key-1",
		Items: []ports.SaleItemRequest{
			{ProductID: "7", Quantity: 2, UnitPrice: decimal.RequireFromString("10"), DiscountPercentage: decimal.NewFromInt(10), Subtotal: decimal.NewFromInt(20)},
			{ProductID: "abc-1", Quantity: 1, UnitPrice: decimal.NewFromInt(1), Subtotal: decimal.NewFromInt(1)},
		},
		PaymentMethod: entity.PaymentCash,
		FinalTotal:    decimal.RequireFromString("20.70"),
		VATPercentage: decimal.NewFromInt(15),
	}

	receipt, err := c.SubmitSale(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "INV-0001", receipt.InvoiceNumber)
	assert.Equal(t, "99", receipt.SaleID)
	assert.Equal(t, 20.7, body["FinalTotal"])
	assert.Equal(t, 15.0, body["VATPercentage"])
	assert.Equal(t, "", body["CustomerName"])
	items := body["Items"].([]any)
	assert.Equal(t, 7.0, items[0].(map[string]any)["ProductID"])
	assert.Equal(t, "abc-1", items[1].(map[string]any)["ProductID"])
}

func TestSubmitSale_SinNumeroDeFactura(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, `{"success":true}`)
	})

	_, err := c.SubmitSale(context.Background(), ports.SaleRequest{})

	assert.ErrorIs(t, err, domain.ErrSaleRejected)
}

func TestSubmitSale_Rechazo(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 400, `{"error":"stock insuficiente"}`)
	})

	_, err := c.SubmitSale(context.Background(), ports.SaleRequest{})

	assert.ErrorIs(t, err, domain.ErrSaleRejected)
	assert.Contains(t, err.Error(), "stock insuficiente")
}

func TestSubmitSale_ErrorDeServidor(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 500, `boom`)
	})

	_, err := c.SubmitSale(context.Background(), ports.SaleRequest{})

	assert.ErrorIs(t, err, domain.ErrGateway)
}

func TestGetSale(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, `{"saleId":12,"invoiceNumber":"INV-9","saleDate":"2024-05-01T10:30:00","paymentMethod":"Cash",
			"cashReceived":25,"change":4.3,"finalTotal":20.7,
			"items":[{"productId":7,"productName":"Leche","brand":"Alpina","unitPrice":10,"quantity":2,"discountPercentage":10}]}`)
	})

	rec, err := c.GetSale(context.Background(), "12")

	require.NoError(t, err)
	assert.Equal(t, "INV-9", rec.InvoiceNumber)
	assert.Equal(t, entity.PaymentCash, rec.PaymentMethod)
	assert.Equal(t, 2024, rec.Date.Year())
	require.Len(t, rec.Items, 1)
	assert.Equal(t, 2, rec.Items[0].Quantity)
}

func TestLogin(t *testing.T) {
	t.Run("éxito", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("Authorization"))
			var in map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			assert.Equal(t, "ana@grocerymate.test", in["username"])
			writeJSON(w, 200, `{"success":true,"token":"no-es-jwt","user":{"id":1,"fullName":"Ana","roles":["Manager"]}}`)
		})

		sess, err := c.Login(context.Background(), "ana@grocerymate.test", "secreta")

		require.NoError(t, err)
		assert.Equal(t, "no-es-jwt", sess.Token)
		assert.Equal(t, "Manager", sess.User.PrimaryRole())
		assert.Equal(t, "ana@grocerymate.test", sess.User.Email)
		assert.True(t, sess.ExpiresAt.IsZero())
	})

	t.Run("credenciales inválidas", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, 200, `{"success":false,"error":"Invalid credentials"}`)
		})

		_, err := c.Login(context.Background(), "x", "y")

		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.Contains(t, err.Error(), "Invalid credentials")
	})
}

func TestUnwrapData(t *testing.T) {
	assert.JSONEq(t, `[1,2]`, string(unwrapData([]byte(`{"data":[1,2]}`))))
	assert.JSONEq(t, `{"data":null,"x":1}`, string(unwrapData([]byte(`{"data":null,"x":1}`))))
	assert.Equal(t, `[3]`, string(unwrapData([]byte(` [3] `))))
}
