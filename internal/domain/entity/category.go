package entity

// Category categoría del catálogo remoto (navegación "Browse Products").
type Category struct {
	ID   string
	Name string
}
