package repository

import "github.com/punchlist/traslados-api/internal/domain/entity"

// ItemRepository define el puerto de lectura de ítems.
type ItemRepository interface {
	GetByID(id int64) (*entity.Item, error)
}
