package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
)

// AuthGateway autenticación contra el backend.
type AuthGateway interface {
	// Login devuelve la sesión (token + usuario). Credenciales inválidas -> domain.ErrUnauthorized.
	Login(ctx context.Context, email, password string) (entity.Session, error)
}

// CatalogGateway lecturas de catálogo. Producto inexistente -> domain.ErrNotFound.
type CatalogGateway interface {
	LookupBarcode(ctx context.Context, code string) (entity.Product, error)
	GetProduct(ctx context.Context, id string) (entity.Product, error)
	ListCategories(ctx context.Context) ([]entity.Category, error)
	ListCategoryProducts(ctx context.Context, categoryID string) ([]entity.Product, error)
}

// SalesGateway registro y consulta de ventas. SubmitSale se llama una sola vez por intento:
// el adaptador no reintenta.
type SalesGateway interface {
	SubmitSale(ctx context.Context, req SaleRequest) (entity.SaleReceipt, error)
	GetSale(ctx context.Context, id string) (entity.SaleRecord, error)
}

// TokenSource credenciales de la sesión actual para el adaptador HTTP.
type TokenSource interface {
	// BearerToken devuelve el token vigente; false si no hay sesión o ya expiró.
	BearerToken(ctx context.Context) (string, bool)
	// Invalidate descarta la sesión (respuesta 401 del backend).
	Invalidate(ctx context.Context)
}

// SaleItemRequest línea del registro de venta.
type SaleItemRequest struct {
	ProductID          string
	Quantity           int
	UnitPrice          decimal.Decimal
	DiscountPercentage decimal.Decimal
	Subtotal           decimal.Decimal
}

// SaleRequest registro de venta tal como lo espera el backend.
type SaleRequest struct {
	IdempotencyKey          string
	Items                   []SaleItemRequest
	PaymentMethod           entity.PaymentMethod
	CashReceived            decimal.Decimal
	Change                  decimal.Decimal
	SubtotalBeforeDiscount  decimal.Decimal
	TotalDiscountPercentage decimal.Decimal
	TotalDiscountAmount     decimal.Decimal
	SubtotalAfterDiscount   decimal.Decimal
	TotalVATAmount          decimal.Decimal
	VATPercentage           decimal.Decimal
	FinalTotal              decimal.Decimal
	CustomerName            string
	CustomerPhone           string
}
