package entity

import "github.com/shopspring/decimal"

// CartLine un producto dentro de la venta en curso. ProductID es único en el carrito.
// Invariante: Quantity >= 1.
type CartLine struct {
	ProductID          string
	Name               string
	Brand              string
	UnitPrice          decimal.Decimal
	Quantity           int
	DiscountPercentage decimal.Decimal
	Barcode            string
}

// DisplayName marca + nombre.
func (l CartLine) DisplayName() string {
	return Product{Name: l.Name, Brand: l.Brand}.DisplayName()
}
