package entity

import "github.com/shopspring/decimal"

// Product descriptor canónico de un producto devuelto por el gateway,
// ya normalizado (ver infrastructure/gateway/normalize.go).
type Product struct {
	ID                 string
	Name               string
	Brand              string
	UnitPrice          decimal.Decimal
	DiscountPercentage decimal.Decimal // 0..100
	Barcode            string
	ImageURL           string
	CategoryID         string
}

// DisplayName marca + nombre, como se muestra en avisos y en la factura.
func (p Product) DisplayName() string {
	switch {
	case p.Brand == "":
		return p.Name
	case p.Name == "":
		return p.Brand
	}
	return p.Brand + " " + p.Name
}
