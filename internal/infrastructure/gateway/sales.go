package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/grocerymate-pos/internal/application/ports"
	"github.com/jhoicas/grocerymate-pos/internal/domain"
	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
)

// saleItemWire / saleWire forma PascalCase que espera POST /sales. Los montos van como
// números JSON (no strings).
type saleItemWire struct {
	ProductID          json.RawMessage `json:"ProductID"`
	Quantity           int             `json:"Quantity"`
	UnitPrice          json.Number     `json:"UnitPrice"`
	DiscountPercentage json.Number     `json:"DiscountPercentage"`
	Subtotal           json.Number     `json:"Subtotal"`
}

type saleWire struct {
	Items                   []saleItemWire `json:"Items"`
	PaymentMethod           string         `json:"PaymentMethod"`
	CashReceived            json.Number    `json:"CashReceived"`
	Change                  json.Number    `json:"Change"`
	SubtotalBeforeDiscount  json.Number    `json:"SubtotalBeforeDiscount"`
	TotalDiscountPercentage json.Number    `json:"TotalDiscountPercentage"`
	TotalDiscountAmount     json.Number    `json:"TotalDiscountAmount"`
	SubtotalAfterDiscount   json.Number    `json:"SubtotalAfterDiscount"`
	TotalVATAmount          json.Number    `json:"TotalVATAmount"`
	VATPercentage           json.Number    `json:"VATPercentage"`
	FinalTotal              json.Number    `json:"FinalTotal"`
	CustomerName            string         `json:"CustomerName"`
	CustomerPhone           string         `json:"CustomerPhone"`
}

var integerIDRe = regexp.MustCompile(`^(0|[1-9]\d{0,14})$`)

func num(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// productIDWire envía ids numéricos como número (el backend usa claves enteras) y el resto como texto.
func productIDWire(id string) json.RawMessage {
	if integerIDRe.MatchString(id) {
		return json.RawMessage(id)
	}
	b, _ := json.Marshal(id)
	return b
}

func toSaleWire(r ports.SaleRequest) saleWire {
	w := saleWire{
		Items:                   make([]saleItemWire, 0, len(r.Items)),
		PaymentMethod:           string(r.PaymentMethod),
		CashReceived:            num(r.CashReceived),
		Change:                  num(r.Change),
		SubtotalBeforeDiscount:  num(r.SubtotalBeforeDiscount),
		TotalDiscountPercentage: num(r.TotalDiscountPercentage),
		TotalDiscountAmount:     num(r.TotalDiscountAmount),
		SubtotalAfterDiscount:   num(r.SubtotalAfterDiscount),
		TotalVATAmount:          num(r.TotalVATAmount),
		VATPercentage:           num(r.VATPercentage),
		FinalTotal:              num(r.FinalTotal),
		CustomerName:            r.CustomerName,
		CustomerPhone:           r.CustomerPhone,
	}
	for _, it := range r.Items {
		w.Items = append(w.Items, saleItemWire{
			ProductID:          productIDWire(it.ProductID),
			Quantity:           it.Quantity,
			UnitPrice:          num(it.UnitPrice),
			DiscountPercentage: num(it.DiscountPercentage),
			Subtotal:           num(it.Subtotal),
		})
	}
	return w
}

// SubmitSale POST /sales con Idempotency-Key. La respuesta debe traer el número de factura;
// sin él la venta se considera fallida. Nunca se reintenta.
func (c *Client) SubmitSale(ctx context.Context, r ports.SaleRequest) (entity.SaleReceipt, error) {
	headers := map[string]string{}
	if r.IdempotencyKey != "" {
		headers["Idempotency-Key"] = r.IdempotencyKey
	}
	raw, err := c.do(ctx, request{
		method:  http.MethodPost,
		path:    "/sales",
		body:    toSaleWire(r),
		headers: headers,
		auth:    true,
	})
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Status >= 400 && se.Status < 500 && se.Status != http.StatusUnauthorized {
			return entity.SaleReceipt{}, fmt.Errorf("%w: %v", domain.ErrSaleRejected, se)
		}
		return entity.SaleReceipt{}, err
	}

	obj, err := decodeObject(raw)
	if err != nil {
		return entity.SaleReceipt{}, fmt.Errorf("%w: respuesta ilegible: %v", domain.ErrSaleRejected, err)
	}
	if sale := obj.obj("sale"); sale != nil && obj.str("invoiceNumber", "invoice_number") == "" {
		obj = sale
	}
	receipt := entity.SaleReceipt{
		InvoiceNumber: obj.str("invoiceNumber", "invoice_number"),
		SaleID:        obj.str("saleId", "id"),
	}
	if receipt.InvoiceNumber == "" {
		return entity.SaleReceipt{}, fmt.Errorf("%w: respuesta sin número de factura", domain.ErrSaleRejected)
	}
	return receipt, nil
}

// GetSale GET /sales/{id} (re-visualización de facturas históricas).
func (c *Client) GetSale(ctx context.Context, id string) (entity.SaleRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entity.SaleRecord{}, fmt.Errorf("%w: id de venta vacío", domain.ErrInvalidInput)
	}
	raw, err := c.do(ctx, request{method: http.MethodGet, path: "/sales/" + url.PathEscape(id), auth: true})
	if err != nil {
		return entity.SaleRecord{}, err
	}
	obj, err := decodeObject(raw)
	if err != nil {
		return entity.SaleRecord{}, fmt.Errorf("%w: venta: %v", domain.ErrGateway, err)
	}
	rec := toSaleRecord(obj)
	if rec.ID == "" {
		rec.ID = id
	}
	return rec, nil
}
