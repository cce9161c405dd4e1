package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punchlist/traslados-api/internal/application/inventory"
	"github.com/punchlist/traslados-api/internal/domain"
	"github.com/punchlist/traslados-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de solo lectura para el feed
// ──────────────────────────────────────────────────────────────────────────────

type feedMovRepo struct {
	movements []*entity.Movement
}

func (r *feedMovRepo) GetByID(id int64) (*entity.Movement, error) {
	for _, m := range r.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *feedMovRepo) ListByIDs(ids []int64) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for _, id := range ids {
		if m, _ := r.GetByID(id); m != nil {
			list = append(list, m)
		}
	}
	return list, nil
}

func (r *feedMovRepo) ListByItemIDs(itemIDs []int64) (map[int64][]*entity.Movement, error) {
	grouped := make(map[int64][]*entity.Movement)
	for _, m := range r.movements {
		for _, id := range itemIDs {
			if m.ItemID == id {
				grouped[id] = append(grouped[id], m)
			}
		}
	}
	return grouped, nil
}

func (r *feedMovRepo) UpdateTransferStatus(int64, string) error      { return nil }
func (r *feedMovRepo) UpdateTransferForm([]int64, string, string) error { return nil }

type feedFileRepo struct {
	files map[int64][]*entity.MovementFile
	calls int
}

func (r *feedFileRepo) Create(*entity.MovementFile) error { return nil }

func (r *feedFileRepo) ListByMovementIDs(movementIDs []int64) (map[int64][]*entity.MovementFile, error) {
	r.calls++
	out := make(map[int64][]*entity.MovementFile)
	for _, id := range movementIDs {
		if fs, ok := r.files[id]; ok {
			out[id] = fs
		}
	}
	return out, nil
}

type feedTokenRepo struct {
	tokens map[int64][]*entity.PublicToken
	calls  int
}

func (r *feedTokenRepo) GetActiveByMovement(int64, time.Time) (*entity.PublicToken, error) {
	return nil, nil
}
func (r *feedTokenRepo) GetByToken(string) (*entity.PublicToken, error) { return nil, nil }
func (r *feedTokenRepo) Create(*entity.PublicToken) error               { return nil }

func (r *feedTokenRepo) ListByMovementIDs(movementIDs []int64) (map[int64][]*entity.PublicToken, error) {
	r.calls++
	out := make(map[int64][]*entity.PublicToken)
	for _, id := range movementIDs {
		if ts, ok := r.tokens[id]; ok {
			out[id] = ts
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ListMovements
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: los movimientos llegan agrupados por ítem con sus adjuntos y tokens.
func TestListMovements_AgrupaConAdjuntos(t *testing.T) {
	movRepo := &feedMovRepo{movements: []*entity.Movement{
		{ID: 1, ItemID: 7, Amount: 2, Direction: entity.DirectionIn, TS: time.Now()},
		{ID: 2, ItemID: 7, Amount: 1, Direction: entity.DirectionOut, TS: time.Now()},
		{ID: 3, ItemID: 9, Amount: 5, Direction: entity.DirectionTransfer, TS: time.Now()},
	}}
	fileRepo := &feedFileRepo{files: map[int64][]*entity.MovementFile{
		2: {{ID: 100, MovementID: 2, Kind: entity.FileKindSignature}},
	}}
	tokenRepo := &feedTokenRepo{tokens: map[int64][]*entity.PublicToken{
		3: {{ID: 200, MovementID: 3, Token: "tok"}},
	}}

	uc := inventory.NewFeedUseCase(movRepo, fileRepo, tokenRepo)
	result, err := uc.ListMovements(context.Background(), []int64{7, 9})
	require.NoError(t, err)

	require.Len(t, result[7], 2)
	require.Len(t, result[9], 1)
	assert.Len(t, result[7][1].Files, 1, "el movimiento 2 trae su adjunto")
	assert.Len(t, result[9][0].Tokens, 1, "el movimiento 3 trae su token")
	assert.Empty(t, result[7][0].Files)
}

// Caso 2: adjuntos y tokens se piden una sola vez por lote, no por fila.
func TestListMovements_ConsultasEnLote(t *testing.T) {
	movRepo := &feedMovRepo{movements: []*entity.Movement{
		{ID: 1, ItemID: 7, TS: time.Now()},
		{ID: 2, ItemID: 7, TS: time.Now()},
		{ID: 3, ItemID: 8, TS: time.Now()},
	}}
	fileRepo := &feedFileRepo{}
	tokenRepo := &feedTokenRepo{}

	uc := inventory.NewFeedUseCase(movRepo, fileRepo, tokenRepo)
	_, err := uc.ListMovements(context.Background(), []int64{7, 8})
	require.NoError(t, err)

	assert.Equal(t, 1, fileRepo.calls)
	assert.Equal(t, 1, tokenRepo.calls)
}

// Caso 3: lista de ítems vacía → ErrInvalidInput.
func TestListMovements_SinItems(t *testing.T) {
	uc := inventory.NewFeedUseCase(&feedMovRepo{}, &feedFileRepo{}, &feedTokenRepo{})

	_, err := uc.ListMovements(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Caso 4: ítems sin movimientos → mapa vacío, sin consultas de adjuntos.
func TestListMovements_ItemsSinMovimientos(t *testing.T) {
	fileRepo := &feedFileRepo{}
	uc := inventory.NewFeedUseCase(&feedMovRepo{}, fileRepo, &feedTokenRepo{})

	result, err := uc.ListMovements(context.Background(), []int64{99})
	require.NoError(t, err)

	assert.Empty(t, result)
	assert.Zero(t, fileRepo.calls, "sin movimientos no hay nada que adjuntar")
}
