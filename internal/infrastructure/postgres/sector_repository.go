package postgres

import (
	"context"
	"fmt"

	"github.com/punchlist/traslados-api/internal/domain/entity"
	"github.com/punchlist/traslados-api/internal/domain/repository"
)

var _ repository.SectorRepository = (*SectorRepo)(nil)

// SectorRepo implementación de SectorRepository sobre PostgreSQL (solo lectura).
type SectorRepo struct {
	q Querier
}

// NewSectorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSectorRepository(q Querier) *SectorRepo {
	return &SectorRepo{q: q}
}

// ListAll devuelve todos los sectores (la tabla es pequeña; se usa como lookup id -> nombre).
func (r *SectorRepo) ListAll() ([]*entity.Sector, error) {
	rows, err := r.q.Query(context.Background(), `SELECT id, name FROM sectors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list sectors: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sector
	for rows.Next() {
		var s entity.Sector
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("scan sector: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
