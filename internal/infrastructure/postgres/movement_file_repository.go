package postgres

import (
	"context"
	"fmt"

	"github.com/punchlist/traslados-api/internal/domain/entity"
	"github.com/punchlist/traslados-api/internal/domain/repository"
)

var _ repository.MovementFileRepository = (*MovementFileRepo)(nil)

// MovementFileRepo implementación de MovementFileRepository sobre PostgreSQL.
type MovementFileRepo struct {
	q Querier
}

// NewMovementFileRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementFileRepository(q Querier) *MovementFileRepo {
	return &MovementFileRepo{q: q}
}

// Create persiste un adjunto (append-only).
func (r *MovementFileRepo) Create(file *entity.MovementFile) error {
	query := `
		INSERT INTO inventory_movement_files (movement_id, file_key, file_url, mime, label, kind, uploaded_by, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		file.MovementID, file.FileKey, file.FileURL, file.Mime,
		file.Label, file.Kind, file.UploadedBy, file.UploadedAt,
	).Scan(&file.ID)
	if err != nil {
		return fmt.Errorf("create movement file: %w", err)
	}
	return nil
}

// ListByMovementIDs trae los adjuntos de un lote de movimientos, ordenados por fecha de subida.
func (r *MovementFileRepo) ListByMovementIDs(movementIDs []int64) (map[int64][]*entity.MovementFile, error) {
	if len(movementIDs) == 0 {
		return map[int64][]*entity.MovementFile{}, nil
	}
	query := `
		SELECT id, movement_id, file_key, file_url, mime, label, kind, uploaded_by, uploaded_at
		FROM inventory_movement_files
		WHERE movement_id = ANY($1)
		ORDER BY uploaded_at`
	rows, err := r.q.Query(context.Background(), query, movementIDs)
	if err != nil {
		return nil, fmt.Errorf("list movement files: %w", err)
	}
	defer rows.Close()
	grouped := make(map[int64][]*entity.MovementFile)
	for rows.Next() {
		var f entity.MovementFile
		if err := rows.Scan(&f.ID, &f.MovementID, &f.FileKey, &f.FileURL,
			&f.Mime, &f.Label, &f.Kind, &f.UploadedBy, &f.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan movement file: %w", err)
		}
		grouped[f.MovementID] = append(grouped[f.MovementID], &f)
	}
	return grouped, rows.Err()
}
