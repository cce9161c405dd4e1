package repository

import "github.com/punchlist/traslados-api/internal/domain/entity"

// StockRepository define el puerto para consultar/actualizar stock por ítem+sector.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	Get(itemID, sectorID int64) (*entity.StockEntry, error)
	// EnsureRow materializa la fila (ítem, sector) con cantidad cero si no
	// existe. Debe llamarse antes de GetForUpdate: FOR UPDATE sobre una
	// fila ausente no bloquea nada.
	EnsureRow(itemID, sectorID int64) error
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE). Si no
	// existe fila devuelve una entrada con cantidad cero.
	GetForUpdate(itemID, sectorID int64) (*entity.StockEntry, error)
	Upsert(entry *entity.StockEntry) error
}
