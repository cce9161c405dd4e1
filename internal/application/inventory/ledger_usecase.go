package inventory

import (
	"context"
	"time"

	"github.com/punchlist/traslados-api/internal/domain"
	"github.com/punchlist/traslados-api/internal/domain/repository"
)

// LedgerUseCase mantiene la cantidad actual por (ítem, sector) aplicando
// deltas acotados dentro de una transacción con bloqueo de fila.
//
// Política deliberada: un delta que dejaría la cantidad negativa se recorta
// a cero en silencio. El modo estricto convierte ese recorte en
// ErrInsufficientStock para bancos de prueba; el default sigue siendo el
// recorte silencioso.
type LedgerUseCase struct {
	txRunner TxRunner
	strict   bool
}

// NewLedgerUseCase construye el caso de uso. strict=false reproduce el
// comportamiento observado (recorte silencioso).
func NewLedgerUseCase(txRunner TxRunner, strict bool) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, strict: strict}
}

// AdjustStock aplica delta al stock de (itemID, sectorID).
//
// sectorID nulo es un no-op: el stock solo se lleva por sector y los
// movimientos sin sector no tocan el ledger. En otro caso bloquea la fila
// (SELECT FOR UPDATE), calcula max(0, actual+delta) y hace upsert; dos
// ajustes concurrentes sobre la misma clave se serializan en la BD.
func (uc *LedgerUseCase) AdjustStock(ctx context.Context, itemID int64, sectorID *int64, delta int64) error {
	if sectorID == nil {
		return nil
	}
	sector := *sectorID

	return uc.txRunner.RunStock(ctx, func(stockRepo repository.StockRepository) error {
		// FOR UPDATE sobre una fila ausente no bloquea nada: dos primeros
		// ajustes concurrentes se pisarían. La fila se materializa primero.
		if err := stockRepo.EnsureRow(itemID, sector); err != nil {
			return err
		}
		entry, err := stockRepo.GetForUpdate(itemID, sector)
		if err != nil {
			return err
		}
		newQty := entry.Quantity + delta
		if newQty < 0 {
			if uc.strict {
				return domain.ErrInsufficientStock
			}
			newQty = 0
		}
		entry.Quantity = newQty
		entry.UpdatedAt = time.Now()
		return stockRepo.Upsert(entry)
	})
}
