package entity

// Item es un artículo de inventario (solo lectura para este servicio).
type Item struct {
	ID   int64
	Name string
	SKU  string
}
