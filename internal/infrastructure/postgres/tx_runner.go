package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/punchlist/traslados-api/internal/application/inventory"
	"github.com/punchlist/traslados-api/internal/application/signing"
	"github.com/punchlist/traslados-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and signing.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ signing.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunStock inicia una transacción con el repo de stock atado a la tx y hace
// Commit o Rollback. Es la sección crítica del ledger (FOR UPDATE + upsert).
func (r *TxRunner) RunStock(ctx context.Context, fn func(stockRepo repository.StockRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSigning inicia una transacción con repos de movimientos y adjuntos.
// Las filas de adjuntos y el cambio de estado persisten como una unidad.
func (r *TxRunner) RunSigning(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	fileRepo repository.MovementFileRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewMovementRepository(tx), NewMovementFileRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
