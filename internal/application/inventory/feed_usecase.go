package inventory

import (
	"context"
	"fmt"

	"github.com/punchlist/traslados-api/internal/application/dto"
	"github.com/punchlist/traslados-api/internal/domain"
	"github.com/punchlist/traslados-api/internal/domain/repository"
)

// FeedUseCase arma la vista de movimientos por ítem con sus adjuntos y tokens.
// Los adjuntos y tokens se traen en lote por lista de ids de movimiento, no
// con una consulta por fila.
type FeedUseCase struct {
	movRepo   repository.MovementRepository
	fileRepo  repository.MovementFileRepository
	tokenRepo repository.PublicTokenRepository
}

// NewFeedUseCase construye el caso de uso (repos atados al pool, solo lectura).
func NewFeedUseCase(
	movRepo repository.MovementRepository,
	fileRepo repository.MovementFileRepository,
	tokenRepo repository.PublicTokenRepository,
) *FeedUseCase {
	return &FeedUseCase{movRepo: movRepo, fileRepo: fileRepo, tokenRepo: tokenRepo}
}

// ListMovements devuelve los movimientos de los ítems dados agrupados por
// ítem, cada uno con sus archivos y tokens adjuntos.
func (uc *FeedUseCase) ListMovements(ctx context.Context, itemIDs []int64) (map[int64][]dto.MovementWithAttachments, error) {
	if len(itemIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}

	grouped, err := uc.movRepo.ListByItemIDs(itemIDs)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}

	var movementIDs []int64
	for _, movs := range grouped {
		for _, m := range movs {
			movementIDs = append(movementIDs, m.ID)
		}
	}
	if len(movementIDs) == 0 {
		return map[int64][]dto.MovementWithAttachments{}, nil
	}

	files, err := uc.fileRepo.ListByMovementIDs(movementIDs)
	if err != nil {
		return nil, fmt.Errorf("listar adjuntos: %w", err)
	}
	tokens, err := uc.tokenRepo.ListByMovementIDs(movementIDs)
	if err != nil {
		return nil, fmt.Errorf("listar tokens: %w", err)
	}

	result := make(map[int64][]dto.MovementWithAttachments, len(grouped))
	for itemID, movs := range grouped {
		for _, m := range movs {
			result[itemID] = append(result[itemID], dto.MovementWithAttachments{
				Movement: m,
				Files:    files[m.ID],
				Tokens:   tokens[m.ID],
			})
		}
	}
	return result, nil
}
