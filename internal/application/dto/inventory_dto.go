package dto

import "github.com/punchlist/traslados-api/internal/domain/entity"

// AdjustStockRequest ajuste de ledger para un ítem en un sector.
// SectorID nulo = no-op: el stock solo se lleva por sector.
type AdjustStockRequest struct {
	ItemID   int64  `json:"item_id"`
	SectorID *int64 `json:"sector_id"`
	Delta    int64  `json:"delta"`
}

// MovementWithAttachments un movimiento con sus adjuntos y tokens (lectura en lote).
type MovementWithAttachments struct {
	Movement *entity.Movement       `json:"movement"`
	Files    []*entity.MovementFile `json:"files"`
	Tokens   []*entity.PublicToken  `json:"tokens"`
}
