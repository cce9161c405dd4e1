package inventory

import (
	"context"

	"github.com/punchlist/traslados-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// repositorio de stock atado a esa tx. Garantiza que el read-modify-write del
// ledger sea una unidad atómica.
type TxRunner interface {
	RunStock(ctx context.Context, fn func(stockRepo repository.StockRepository) error) error
}
