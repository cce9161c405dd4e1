package entity

// Sector es una ubicación física o lógica de almacenamiento (solo lectura).
type Sector struct {
	ID   int64
	Name string
}
