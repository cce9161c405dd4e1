package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/punchlist/traslados-api/internal/domain/entity"
	"github.com/punchlist/traslados-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, item_id, amount, direction, source_sector_id, target_sector_id, ts, transfer_status, transfer_form_key, transfer_form_url`

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	err := row.Scan(
		&m.ID, &m.ItemID, &m.Amount, &m.Direction,
		&m.SourceSectorID, &m.TargetSectorID, &m.TS,
		&m.TransferStatus, &m.TransferFormKey, &m.TransferFormURL,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetByID obtiene un movimiento por ID; nil si no existe.
func (r *MovementRepo) GetByID(id int64) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// ListByIDs obtiene un lote de movimientos por id (orden por id).
func (r *MovementRepo) ListByIDs(ids []int64) ([]*entity.Movement, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE id = ANY($1) ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("list movements by ids: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// ListByItemIDs devuelve los movimientos de los ítems dados agrupados por
// ítem, más recientes primero.
func (r *MovementRepo) ListByItemIDs(itemIDs []int64) (map[int64][]*entity.Movement, error) {
	if len(itemIDs) == 0 {
		return map[int64][]*entity.Movement{}, nil
	}
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE item_id = ANY($1) ORDER BY ts DESC`
	rows, err := r.q.Query(context.Background(), query, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("list movements by items: %w", err)
	}
	defer rows.Close()
	grouped := make(map[int64][]*entity.Movement)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		grouped[m.ItemID] = append(grouped[m.ItemID], m)
	}
	return grouped, rows.Err()
}

// UpdateTransferStatus cambia el estado de firma de un movimiento (UPDATE por id, incondicional).
func (r *MovementRepo) UpdateTransferStatus(id int64, status string) error {
	query := `UPDATE inventory_movements SET transfer_status = $1 WHERE id = $2`
	_, err := r.q.Exec(context.Background(), query, status, id)
	if err != nil {
		return fmt.Errorf("update transfer status: %w", err)
	}
	return nil
}

// UpdateTransferForm escribe la misma clave/URL de formulario en todos los ids del lote.
func (r *MovementRepo) UpdateTransferForm(ids []int64, key, url string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE inventory_movements SET transfer_form_key = $1, transfer_form_url = $2 WHERE id = ANY($3)`
	_, err := r.q.Exec(context.Background(), query, key, url, ids)
	if err != nil {
		return fmt.Errorf("update transfer form: %w", err)
	}
	return nil
}
