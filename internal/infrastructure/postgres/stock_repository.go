package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/punchlist/traslados-api/internal/domain/entity"
	"github.com/punchlist/traslados-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un ítem en un sector. Sin fila = cantidad cero.
func (r *StockRepo) Get(itemID, sectorID int64) (*entity.StockEntry, error) {
	query := `
		SELECT item_id, sector_id, quantity, updated_at
		FROM inventory_stock WHERE item_id = $1 AND sector_id = $2`
	var e entity.StockEntry
	err := r.q.QueryRow(context.Background(), query, itemID, sectorID).Scan(
		&e.ItemID, &e.SectorID, &e.Quantity, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockEntry{ItemID: itemID, SectorID: sectorID}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &e, nil
}

// EnsureRow materializa la fila (ítem, sector) con cantidad cero si no existe,
// para que un SELECT FOR UPDATE posterior siempre tenga fila que bloquear.
func (r *StockRepo) EnsureRow(itemID, sectorID int64) error {
	query := `
		INSERT INTO inventory_stock (item_id, sector_id, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (item_id, sector_id) DO NOTHING`
	_, err := r.q.Exec(context.Background(), query, itemID, sectorID)
	if err != nil {
		return fmt.Errorf("ensure stock row: %w", err)
	}
	return nil
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(itemID, sectorID int64) (*entity.StockEntry, error) {
	query := `
		SELECT item_id, sector_id, quantity, updated_at
		FROM inventory_stock WHERE item_id = $1 AND sector_id = $2
		FOR UPDATE`
	var e entity.StockEntry
	err := r.q.QueryRow(context.Background(), query, itemID, sectorID).Scan(
		&e.ItemID, &e.SectorID, &e.Quantity, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockEntry{ItemID: itemID, SectorID: sectorID}, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &e, nil
}

// Upsert inserta o actualiza la cantidad en stock (por ítem y sector).
func (r *StockRepo) Upsert(entry *entity.StockEntry) error {
	query := `
		INSERT INTO inventory_stock (item_id, sector_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (item_id, sector_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, entry.ItemID, entry.SectorID, entry.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}
