package render_test

import (
	"bytes"
	"context"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
	"github.com/jhoicas/grocerymate-pos/internal/infrastructure/render"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sar(t *testing.T) render.Money {
	t.Helper()
	m, err := render.NewMoney("SAR")
	require.NoError(t, err)
	return m
}

func sampleInvoice(method entity.PaymentMethod) entity.Invoice {
	inv := entity.Invoice{
		Number:        "INV-1001",
		Date:          time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		PaymentMethod: method,
		VATPercentage: decimal.NewFromInt(15),
		Lines: []entity.InvoiceLine{{
			ProductID:          "7",
			Name:               "Milk",
			Brand:              "Almarai",
			UnitPrice:          d("10.00"),
			Quantity:           2,
			DiscountPercentage: d("10"),
			UnitPriceWithVAT:   d("10.35"),
		}},
		Totals: entity.Totals{
			SubtotalBeforeDiscount: d("20.00"),
			TotalDiscountAmount:    d("2.00"),
			SubtotalAfterDiscount:  d("18.00"),
			VATAmount:              d("2.70"),
			FinalTotal:             d("20.70"),
		},
	}
	if method == entity.PaymentCash {
		inv.Totals.CashReceived = d("50")
		inv.Totals.Change = d("29.30")
	}
	return inv
}

func TestMoney_Amount(t *testing.T) {
	m := sar(t)
	assert.Equal(t, "SAR", m.Code())
	assert.Equal(t, "0.00", m.Amount(decimal.Zero))
	assert.Equal(t, "1,234.50", m.Amount(d("1234.5")))
	assert.Equal(t, "1,000,000.01", m.Amount(d("1000000.005")))
	assert.Equal(t, "-3.10", m.Amount(d("-3.1")))
	assert.Equal(t, "SAR 20.70", m.Label(d("20.7")))
}

func TestNewMoney_RejectsUnknownCode(t *testing.T) {
	_, err := render.NewMoney("XYZ1")
	assert.Error(t, err)
}

func TestNewSheet(t *testing.T) {
	s := render.NewSheet("GroceryMate", sar(t), sampleInvoice(entity.PaymentCash))

	assert.Equal(t, "INV-1001", s.Number)
	assert.Equal(t, "2026-03-14 09:30", s.Date)
	require.Len(t, s.Lines, 1)
	assert.Equal(t, "Almarai Milk", s.Lines[0].Name)
	assert.Equal(t, "10.35", s.Lines[0].UnitPrice)
	assert.True(t, s.HasDiscount)
	assert.Equal(t, "10.0", s.DiscountPercent)
	assert.Equal(t, "15", s.VATPercent)
	assert.True(t, s.IsCash)
	assert.Equal(t, "29.30", s.Change)
}

func TestNewSheet_CardWithoutDiscount(t *testing.T) {
	inv := sampleInvoice(entity.PaymentCard)
	inv.Totals.TotalDiscountAmount = decimal.Zero

	s := render.NewSheet("GroceryMate", sar(t), inv)

	assert.False(t, s.HasDiscount)
	assert.Empty(t, s.Discount)
	assert.False(t, s.IsCash)
	assert.Empty(t, s.CashReceived)
}

func TestCode128PNG(t *testing.T) {
	raw, err := render.Code128PNG("INV-1001")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 80, img.Bounds().Dy())
	assert.Greater(t, img.Bounds().Dx(), 0)

	uri, err := render.Code128DataURI("INV-1001")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
}

func TestHTMLRenderer_Cash(t *testing.T) {
	r := render.NewHTMLRenderer("GroceryMate", sar(t), zerolog.Nop())
	assert.Equal(t, "text/html; charset=utf-8", r.ContentType())

	out, err := r.Render(context.Background(), sampleInvoice(entity.PaymentCash))
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, "GroceryMate - Invoice #INV-1001")
	assert.Contains(t, html, `src="data:image/png;base64,`)
	assert.Contains(t, html, "Almarai Milk")
	assert.Contains(t, html, "SAR 10.35")
	assert.Contains(t, html, "Discount (10.0%)")
	assert.Contains(t, html, "VAT (15%)")
	assert.Contains(t, html, "SAR 20.70")
	assert.Contains(t, html, "Cash Received:")
	assert.Contains(t, html, "SAR 29.30")
}

func TestHTMLRenderer_CardHidesCashAndDiscount(t *testing.T) {
	inv := sampleInvoice(entity.PaymentCard)
	inv.Totals.TotalDiscountAmount = decimal.Zero
	r := render.NewHTMLRenderer("GroceryMate", sar(t), zerolog.Nop())

	out, err := r.Render(context.Background(), inv)
	require.NoError(t, err)
	html := string(out)

	assert.NotContains(t, html, "Cash Received:")
	assert.NotContains(t, html, "Discount (")
}

func TestHTMLRenderer_EscapesProductNames(t *testing.T) {
	inv := sampleInvoice(entity.PaymentCard)
	inv.Lines[0].Name = "<script>x</script>"
	r := render.NewHTMLRenderer("GroceryMate", sar(t), zerolog.Nop())

	out, err := r.Render(context.Background(), inv)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<script>x</script>")
}
