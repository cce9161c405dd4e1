package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/punchlist/traslados-api/internal/domain/entity"
	"github.com/punchlist/traslados-api/internal/domain/repository"
)

var _ repository.PublicTokenRepository = (*PublicTokenRepo)(nil)

// PublicTokenRepo implementación de PublicTokenRepository sobre PostgreSQL.
type PublicTokenRepo struct {
	q Querier
}

// NewPublicTokenRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPublicTokenRepository(q Querier) *PublicTokenRepo {
	return &PublicTokenRepo{q: q}
}

const tokenColumns = `id, movement_id, token, expires_at, created_at`

// GetActiveByMovement devuelve el token vigente más lejano de expirar o nil.
func (r *PublicTokenRepo) GetActiveByMovement(movementID int64, now time.Time) (*entity.PublicToken, error) {
	query := `
		SELECT ` + tokenColumns + `
		FROM inventory_public_tokens
		WHERE movement_id = $1 AND expires_at >= $2
		ORDER BY expires_at DESC
		LIMIT 1`
	var t entity.PublicToken
	err := r.q.QueryRow(context.Background(), query, movementID, now).Scan(
		&t.ID, &t.MovementID, &t.Token, &t.ExpiresAt, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active token: %w", err)
	}
	return &t, nil
}

// GetByToken resuelve el valor opaco del token; nil si no existe.
func (r *PublicTokenRepo) GetByToken(token string) (*entity.PublicToken, error) {
	query := `SELECT ` + tokenColumns + ` FROM inventory_public_tokens WHERE token = $1 LIMIT 1`
	var t entity.PublicToken
	err := r.q.QueryRow(context.Background(), query, token).Scan(
		&t.ID, &t.MovementID, &t.Token, &t.ExpiresAt, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get token: %w", err)
	}
	return &t, nil
}

// Create persiste un token nuevo.
func (r *PublicTokenRepo) Create(token *entity.PublicToken) error {
	query := `
		INSERT INTO inventory_public_tokens (movement_id, token, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		token.MovementID, token.Token, token.ExpiresAt, token.CreatedAt,
	).Scan(&token.ID)
	if err != nil {
		return fmt.Errorf("create token: %w", err)
	}
	return nil
}

// ListByMovementIDs trae los tokens de un lote de movimientos de una sola vez.
func (r *PublicTokenRepo) ListByMovementIDs(movementIDs []int64) (map[int64][]*entity.PublicToken, error) {
	if len(movementIDs) == 0 {
		return map[int64][]*entity.PublicToken{}, nil
	}
	query := `SELECT ` + tokenColumns + ` FROM inventory_public_tokens WHERE movement_id = ANY($1) ORDER BY expires_at DESC`
	rows, err := r.q.Query(context.Background(), query, movementIDs)
	if err != nil {
		return nil, fmt.Errorf("list tokens: %w", err)
	}
	defer rows.Close()
	grouped := make(map[int64][]*entity.PublicToken)
	for rows.Next() {
		var t entity.PublicToken
		if err := rows.Scan(&t.ID, &t.MovementID, &t.Token, &t.ExpiresAt, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan token: %w", err)
		}
		grouped[t.MovementID] = append(grouped[t.MovementID], &t)
	}
	return grouped, rows.Err()
}
