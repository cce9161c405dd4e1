package repository

import "github.com/punchlist/traslados-api/internal/domain/entity"

// MovementRepository define el puerto de lectura/actualización de movimientos.
// Los movimientos se crean aguas arriba; aquí solo se leen y se actualizan
// transfer_status y los punteros al formulario.
type MovementRepository interface {
	GetByID(id int64) (*entity.Movement, error)
	ListByIDs(ids []int64) ([]*entity.Movement, error)
	// ListByItemIDs devuelve los movimientos agrupados por ítem, más recientes primero.
	ListByItemIDs(itemIDs []int64) (map[int64][]*entity.Movement, error)
	UpdateTransferStatus(id int64, status string) error
	// UpdateTransferForm escribe la misma clave/URL de formulario en todos los ids del lote.
	UpdateTransferForm(ids []int64, key, url string) error
}
