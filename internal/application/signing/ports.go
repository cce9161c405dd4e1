package signing

import (
	"context"

	"github.com/punchlist/traslados-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los repos
// de movimientos y adjuntos atados a esa tx. Garantiza que las filas de
// adjuntos y el cambio de estado del movimiento se confirmen como una unidad:
// o persiste todo, o nada.
type TxRunner interface {
	RunSigning(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		fileRepo repository.MovementFileRepository,
	) error) error
}
