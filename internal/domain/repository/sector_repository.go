package repository

import "github.com/punchlist/traslados-api/internal/domain/entity"

// SectorRepository define el puerto de lectura de sectores.
type SectorRepository interface {
	ListAll() ([]*entity.Sector, error)
}
