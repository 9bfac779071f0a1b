package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
	"github.com/jhoicas/grocerymate-pos/internal/infrastructure/pdf"
	"github.com/jhoicas/grocerymate-pos/internal/infrastructure/render"
)

func TestMarotoInvoiceRenderer_Render(t *testing.T) {
	money, err := render.NewMoney("SAR")
	require.NoError(t, err)
	g := pdf.NewMarotoInvoiceRenderer("GroceryMate", money, zerolog.Nop())

	inv := entity.Invoice{
		Number:        "INV-77",
		Date:          time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
		PaymentMethod: entity.PaymentCash,
		VATPercentage: decimal.NewFromInt(15),
		Lines: []entity.InvoiceLine{{
			ProductID:        "1",
			Name:             "Bread",
			UnitPrice:        decimal.NewFromInt(5),
			Quantity:         3,
			UnitPriceWithVAT: decimal.RequireFromString("5.75"),
		}},
		Totals: entity.Totals{
			SubtotalBeforeDiscount: decimal.NewFromInt(15),
			SubtotalAfterDiscount:  decimal.NewFromInt(15),
			VATAmount:              decimal.RequireFromString("2.25"),
			FinalTotal:             decimal.RequireFromString("17.25"),
			CashReceived:           decimal.NewFromInt(20),
			Change:                 decimal.RequireFromString("2.75"),
		},
	}

	out, err := g.Render(context.Background(), inv)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Equal(t, "application/pdf", g.ContentType())
}
