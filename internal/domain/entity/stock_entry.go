package entity

import "time"

// StockEntry representa la cantidad actual de un ítem en un sector.
// Invariante: Quantity >= 0 siempre; los deltas que la dejarían negativa se
// recortan a cero. Se crea en el primer ajuste y nunca se borra.
type StockEntry struct {
	ItemID    int64
	SectorID  int64
	Quantity  int64
	UpdatedAt time.Time
}
