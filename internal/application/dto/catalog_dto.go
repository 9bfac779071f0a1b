package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
)

// ProductResponse producto del catálogo remoto.
type ProductResponse struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Brand              string          `json:"brand"`
	DisplayName        string          `json:"displayName"`
	UnitPrice          decimal.Decimal `json:"unitPrice"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	Barcode            string          `json:"barcode,omitempty"`
	ImageURL           string          `json:"imageUrl,omitempty"`
	CategoryID         string          `json:"categoryId,omitempty"`
}

// CategoryResponse categoría para "Browse Products".
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func FromProduct(p entity.Product) ProductResponse {
	return ProductResponse{
		ID:                 p.ID,
		Name:               p.Name,
		Brand:              p.Brand,
		DisplayName:        p.DisplayName(),
		UnitPrice:          p.UnitPrice,
		DiscountPercentage: p.DiscountPercentage,
		Barcode:            p.Barcode,
		ImageURL:           p.ImageURL,
		CategoryID:         p.CategoryID,
	}
}

func FromProducts(ps []entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromProduct(p))
	}
	return out
}

func FromCategories(cs []entity.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, CategoryResponse{ID: c.ID, Name: c.Name})
	}
	return out
}
