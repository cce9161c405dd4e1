package repository

import (
	"time"

	"github.com/punchlist/traslados-api/internal/domain/entity"
)

// PublicTokenRepository define el puerto de persistencia de tokens de firma.
type PublicTokenRepository interface {
	// GetActiveByMovement devuelve el token vigente más lejano de expirar
	// (expires_at >= now, orden descendente, limit 1) o nil si no hay.
	GetActiveByMovement(movementID int64, now time.Time) (*entity.PublicToken, error)
	// GetByToken resuelve el valor opaco del token o nil si no existe.
	GetByToken(token string) (*entity.PublicToken, error)
	Create(token *entity.PublicToken) error
	// ListByMovementIDs trae los tokens de un lote de movimientos de una sola vez.
	ListByMovementIDs(movementIDs []int64) (map[int64][]*entity.PublicToken, error)
}
