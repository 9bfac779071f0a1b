package gateway

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/grocerymate-pos/internal/domain/cart"
	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
)

// object vista case-insensitive de un objeto JSON del backend. El backend mezcla camelCase,
// PascalCase y alias (productName|name, unitPrice|price, productId|productID|id).
type object map[string]any

var errNotObject = errors.New("gateway: se esperaba un objeto JSON")

func decodeAny(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func decodeObject(raw []byte) (object, error) {
	v, err := decodeAny(raw)
	if err != nil {
		return nil, err
	}
	return asObject(v)
}

func asObject(v any) (object, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, errNotObject
	}
	out := make(object, len(m))
	for k, val := range m {
		out[strings.ToLower(k)] = val
	}
	return out, nil
}

// decodeList acepta un arreglo o un objeto que lo contiene en items|results|content.
func decodeList(raw []byte) ([]object, error) {
	v, err := decodeAny(raw)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	arr, ok := v.([]any)
	if !ok {
		obj, err := asObject(v)
		if err != nil {
			return nil, err
		}
		arr, _ = obj.get("items", "results", "content").([]any)
	}
	out := make([]object, 0, len(arr))
	for _, item := range arr {
		o, err := asObject(item)
		if err != nil {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (o object) get(keys ...string) any {
	for _, k := range keys {
		if v, ok := o[strings.ToLower(k)]; ok && v != nil {
			return v
		}
	}
	return nil
}

// str devuelve el primer alias presente como texto (números incluidos).
func (o object) str(keys ...string) string {
	switch v := o.get(keys...).(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}

// dec devuelve el primer alias como decimal; número, texto numérico o 0.
func (o object) dec(keys ...string) decimal.Decimal {
	switch v := o.get(keys...).(type) {
	case json.Number:
		return cart.ParseAmount(v.String())
	case string:
		return cart.ParseAmount(v)
	case float64:
		return cart.SanitizeDecimal(v)
	}
	return decimal.Zero
}

func (o object) integer(keys ...string) int {
	n, _ := cart.ParseInteger(o.str(keys...))
	return n
}

func (o object) obj(keys ...string) object {
	obj, err := asObject(o.get(keys...))
	if err != nil {
		return nil
	}
	return obj
}

func (o object) list(keys ...string) []object {
	arr, _ := o.get(keys...).([]any)
	out := make([]object, 0, len(arr))
	for _, item := range arr {
		if obj, err := asObject(item); err == nil {
			out = append(out, obj)
		}
	}
	return out
}

func (o object) stringList(keys ...string) []string {
	switch v := o.get(keys...).(type) {
	case string:
		if v != "" {
			return []string{v}
		}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (o object) timestamp(keys ...string) time.Time {
	s := o.str(keys...)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func toProduct(o object) entity.Product {
	return entity.Product{
		ID:                 o.str("productId", "id"),
		Name:               o.str("productName", "name"),
		Brand:              o.str("brand", "brandName"),
		UnitPrice:          o.dec("unitPrice", "price"),
		DiscountPercentage: o.dec("discountPercentage", "discount"),
		Barcode:            o.str("barcode", "barCode"),
		ImageURL:           o.str("imageUrl", "image"),
		CategoryID:         o.str("categoryId", "category"),
	}
}

func toCategory(o object) entity.Category {
	return entity.Category{
		ID:   o.str("categoryId", "id"),
		Name: o.str("categoryName", "name"),
	}
}

func toUser(o object) entity.User {
	u := entity.User{
		ID:    o.str("userId", "id"),
		Name:  o.str("fullName", "name", "userName", "username"),
		Email: o.str("email"),
		Roles: o.stringList("roles"),
	}
	if len(u.Roles) == 0 {
		u.Roles = o.stringList("role")
	}
	return u
}

func toSaleRecord(o object) entity.SaleRecord {
	rec := entity.SaleRecord{
		ID:                     o.str("saleId", "id"),
		InvoiceNumber:          o.str("invoiceNumber", "invoice_number"),
		Date:                   o.timestamp("saleDate", "date", "createdAt"),
		PaymentMethod:          entity.PaymentMethod(o.str("paymentMethod")),
		CashReceived:           o.dec("cashReceived"),
		Change:                 o.dec("change"),
		SubtotalBeforeDiscount: o.dec("subtotalBeforeDiscount"),
		TotalDiscountAmount:    o.dec("totalDiscountAmount"),
		SubtotalAfterDiscount:  o.dec("subtotalAfterDiscount"),
		TotalVATAmount:         o.dec("totalVATAmount", "vatAmount"),
		FinalTotal:             o.dec("finalTotal", "total"),
	}
	for _, it := range o.list("items", "saleItems") {
		rec.Items = append(rec.Items, entity.SaleRecordItem{
			ProductID:          it.str("productId", "id"),
			Name:               it.str("productName", "name"),
			Brand:              it.str("brand"),
			Barcode:            it.str("barcode"),
			UnitPrice:          it.dec("unitPrice", "price"),
			Quantity:           it.integer("quantity"),
			DiscountPercentage: it.dec("discountPercentage"),
		})
	}
	return rec
}
