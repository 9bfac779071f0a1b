package gateway

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/jhoicas/grocerymate-pos/internal/domain"
	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
)

// LookupBarcode GET /product/barcode/{code}. Cuerpo vacío, null o sin id -> ErrNotFound.
func (c *Client) LookupBarcode(ctx context.Context, code string) (entity.Product, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return entity.Product{}, fmt.Errorf("%w: código vacío", domain.ErrInvalidInput)
	}
	return c.product(ctx, "/product/barcode/"+url.PathEscape(code))
}

// GetProduct GET /product/{id}.
func (c *Client) GetProduct(ctx context.Context, id string) (entity.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entity.Product{}, fmt.Errorf("%w: id vacío", domain.ErrInvalidInput)
	}
	return c.product(ctx, "/product/"+url.PathEscape(id))
}

func (c *Client) product(ctx context.Context, path string) (entity.Product, error) {
	raw, err := c.do(ctx, request{method: http.MethodGet, path: path, auth: true})
	if err != nil {
		if isNotFound(err) {
			return entity.Product{}, fmt.Errorf("producto %s: %w", path, domain.ErrNotFound)
		}
		return entity.Product{}, err
	}
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return entity.Product{}, domain.ErrNotFound
	}
	obj, err := decodeObject(raw)
	if err != nil {
		return entity.Product{}, fmt.Errorf("%w: producto: %v", domain.ErrGateway, err)
	}
	// algunas respuestas vienen como {success, product}
	if inner := obj.obj("product"); inner != nil {
		obj = inner
	}
	p := toProduct(obj)
	if p.ID == "" {
		return entity.Product{}, domain.ErrNotFound
	}
	return p, nil
}

// ListCategories GET /categories.
func (c *Client) ListCategories(ctx context.Context) ([]entity.Category, error) {
	raw, err := c.do(ctx, request{method: http.MethodGet, path: "/categories", auth: true})
	if err != nil {
		return nil, err
	}
	items, err := decodeList(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: categorías: %v", domain.ErrGateway, err)
	}
	out := make([]entity.Category, 0, len(items))
	for _, o := range items {
		if cat := toCategory(o); cat.ID != "" {
			out = append(out, cat)
		}
	}
	return out, nil
}

// ListCategoryProducts GET /categories/{id}/products.
func (c *Client) ListCategoryProducts(ctx context.Context, categoryID string) ([]entity.Product, error) {
	raw, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/categories/" + url.PathEscape(strings.TrimSpace(categoryID)) + "/products",
		auth:   true,
	})
	if err != nil {
		return nil, err
	}
	items, err := decodeList(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: productos: %v", domain.ErrGateway, err)
	}
	out := make([]entity.Product, 0, len(items))
	for _, o := range items {
		p := toProduct(o)
		if p.ID == "" {
			continue
		}
		if p.CategoryID == "" {
			p.CategoryID = categoryID
		}
		out = append(out, p)
	}
	return out, nil
}
