package repository

import "github.com/punchlist/traslados-api/internal/domain/entity"

// MovementFileRepository define el puerto de persistencia de adjuntos (append-only).
type MovementFileRepository interface {
	Create(file *entity.MovementFile) error
	// ListByMovementIDs trae los adjuntos de un lote de movimientos, ordenados por fecha de subida.
	ListByMovementIDs(movementIDs []int64) (map[int64][]*entity.MovementFile, error)
}
