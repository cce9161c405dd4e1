package signing_test

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punchlist/traslados-api/internal/application/signing"
	"github.com/punchlist/traslados-api/internal/domain"
	"github.com/punchlist/traslados-api/internal/domain/entity"
	"github.com/punchlist/traslados-api/internal/domain/repository"
	"github.com/punchlist/traslados-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria (el fake de tokens vive en token_issuer_test.go)
// ──────────────────────────────────────────────────────────────────────────────

type fakeMovementRepo struct {
	movements     map[int64]*entity.Movement
	statusUpdates []string
}

func newFakeMovementRepo(movs ...*entity.Movement) *fakeMovementRepo {
	r := &fakeMovementRepo{movements: make(map[int64]*entity.Movement)}
	for _, m := range movs {
		r.movements[m.ID] = m
	}
	return r
}

func (r *fakeMovementRepo) GetByID(id int64) (*entity.Movement, error) {
	return r.movements[id], nil
}

func (r *fakeMovementRepo) ListByIDs(ids []int64) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for _, id := range ids {
		if m, ok := r.movements[id]; ok {
			list = append(list, m)
		}
	}
	return list, nil
}

func (r *fakeMovementRepo) ListByItemIDs(itemIDs []int64) (map[int64][]*entity.Movement, error) {
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

func (r *fakeMovementRepo) UpdateTransferStatus(id int64, status string) error {
	if m, ok := r.movements[id]; ok {
		m.TransferStatus = status
	}
	r.statusUpdates = append(r.statusUpdates, status)
	return nil
}

func (r *fakeMovementRepo) UpdateTransferForm(ids []int64, key, url string) error {
	for _, id := range ids {
		if m, ok := r.movements[id]; ok {
			m.TransferFormKey = &key
			m.TransferFormURL = &url
		}
	}
	return nil
}

type fakeFileRepo struct {
	files []*entity.MovementFile
}

func (r *fakeFileRepo) Create(file *entity.MovementFile) error {
	file.ID = int64(len(r.files) + 1)
	r.files = append(r.files, file)
	return nil
}

func (r *fakeFileRepo) ListByMovementIDs(movementIDs []int64) (map[int64][]*entity.MovementFile, error) {
	grouped := make(map[int64][]*entity.MovementFile)
	for _, f := range r.files {
		for _, id := range movementIDs {
			if f.MovementID == id {
				grouped[id] = append(grouped[id], f)
			}
		}
	}
	return grouped, nil
}

type fakeItemRepo struct {
	items    map[int64]*entity.Item
	failWith error
}

func (r *fakeItemRepo) GetByID(id int64) (*entity.Item, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	if r.items == nil {
		return nil, nil
	}
	return r.items[id], nil
}

type fakeSectorRepo struct {
	sectors []*entity.Sector
}

func (r *fakeSectorRepo) ListAll() ([]*entity.Sector, error) {
	return r.sectors, nil
}

// fakeBlobStore archiva en memoria y registra cada Put.
type fakeBlobStore struct {
	puts []blobPut
}

type blobPut struct {
	data     []byte
	mime     string
	filename string
	prefix   string
}

func (s *fakeBlobStore) Put(_ context.Context, data []byte, mime, filename, prefix string) (string, string, error) {
	s.puts = append(s.puts, blobPut{data: data, mime: mime, filename: filename, prefix: prefix})
	key := prefix + "/" + filename
	return key, "https://blob.example.com/" + key, nil
}

// fakeSigningTxRunner ejecuta el callback con los repos dados, sin tx real.
type fakeSigningTxRunner struct {
	movRepo  *fakeMovementRepo
	fileRepo *fakeFileRepo
}

func (r *fakeSigningTxRunner) RunSigning(_ context.Context, fn func(repository.MovementRepository, repository.MovementFileRepository) error) error {
	return fn(r.movRepo, r.fileRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado del caso de uso
// ──────────────────────────────────────────────────────────────────────────────

type signFixture struct {
	uc       *signing.SignUseCase
	tokens   *fakeTokenRepo
	movRepo  *fakeMovementRepo
	fileRepo *fakeFileRepo
	blob     *fakeBlobStore
}

func newSignFixture(t *testing.T, movs ...*entity.Movement) *signFixture {
	t.Helper()
	tokens := &fakeTokenRepo{}
	movRepo := newFakeMovementRepo(movs...)
	fileRepo := &fakeFileRepo{}
	blob := &fakeBlobStore{}
	log := logger.New(logger.Config{Env: "production", Level: "error"})

	uc := signing.NewSignUseCase(
		tokens, movRepo,
		&fakeItemRepo{items: map[int64]*entity.Item{7: {ID: 7, Name: "Taladro industrial", SKU: "TAL-07"}}},
		&fakeSectorRepo{sectors: []*entity.Sector{{ID: 1, Name: "Bodega Norte"}, {ID: 2, Name: "Obra 12"}}},
		blob,
		&fakeSigningTxRunner{movRepo: movRepo, fileRepo: fileRepo},
		log,
	)
	return &signFixture{uc: uc, tokens: tokens, movRepo: movRepo, fileRepo: fileRepo, blob: blob}
}

func pendingMovement(id int64) *entity.Movement {
	src, dst := int64(1), int64(2)
	return &entity.Movement{
		ID: id, ItemID: 7, Amount: 4, Direction: entity.DirectionTransfer,
		SourceSectorID: &src, TargetSectorID: &dst,
		TS: time.Now(), TransferStatus: entity.TransferStatusPending,
	}
}

func liveToken(f *signFixture, movementID int64) string {
	tok := &entity.PublicToken{
		MovementID: movementID,
		Token:      "live-token",
		ExpiresAt:  time.Now().Add(24 * time.Hour),
		CreatedAt:  time.Now(),
	}
	_ = f.tokens.Create(tok)
	return tok.Token
}

func drawnDataURI(payload string) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte(payload))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Sign
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: firma dibujada válida → un adjunto kind=signature y estado "signed".
func TestSign_FirmaDibujadaMarcaComoFirmado(t *testing.T) {
	f := newSignFixture(t, pendingMovement(42))
	token := liveToken(f, 42)

	err := f.uc.Sign(context.Background(), signing.SignRequest{
		Token:      token,
		SignerName: "Carlos Pérez",
		Artifacts:  []signing.SignatureArtifact{signing.DrawnSignature{DataURI: drawnDataURI("png-bytes")}},
	})
	require.NoError(t, err)

	require.Len(t, f.fileRepo.files, 1)
	file := f.fileRepo.files[0]
	assert.Equal(t, entity.FileKindSignature, file.Kind)
	assert.Equal(t, "Digital signature - Carlos Pérez", file.Label)
	assert.Equal(t, "image/png", file.Mime)
	assert.Equal(t, entity.TransferStatusSigned, f.movRepo.movements[42].TransferStatus)
}

// Caso 2: token inexistente → ErrTokenNotFound, sin escrituras.
func TestSign_TokenInexistente(t *testing.T) {
	f := newSignFixture(t, pendingMovement(42))

	err := f.uc.Sign(context.Background(), signing.SignRequest{
		Token:     "no-existe",
		Artifacts: []signing.SignatureArtifact{signing.DrawnSignature{DataURI: drawnDataURI("x")}},
	})

	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
	assert.Empty(t, f.fileRepo.files)
	assert.Empty(t, f.blob.puts, "no debe subirse nada al blob store")
}

// Caso 3: token expirado → ErrTokenExpired; el movimiento queda intacto.
func TestSign_TokenExpirado(t *testing.T) {
	f := newSignFixture(t, pendingMovement(42))
	_ = f.tokens.Create(&entity.PublicToken{
		MovementID: 42,
		Token:      "expirado",
		ExpiresAt:  time.Now().Add(-time.Minute),
		CreatedAt:  time.Now().AddDate(0, 0, -15),
	})

	err := f.uc.Sign(context.Background(), signing.SignRequest{
		Token:     "expirado",
		Artifacts: []signing.SignatureArtifact{signing.DrawnSignature{DataURI: drawnDataURI("x")}},
	})

	assert.ErrorIs(t, err, domain.ErrTokenExpired)
	assert.Equal(t, entity.TransferStatusPending, f.movRepo.movements[42].TransferStatus)
	assert.Empty(t, f.blob.puts)
}

// Caso 4: sin artefactos → ErrMissingSignatureArtifact.
func TestSign_SinArtefactos(t *testing.T) {
	f := newSignFixture(t, pendingMovement(42))
	token := liveToken(f, 42)

	err := f.uc.Sign(context.Background(), signing.SignRequest{Token: token})

	assert.ErrorIs(t, err, domain.ErrMissingSignatureArtifact)
}

// Caso 5: data-URI corrupto → ErrInvalidSignatureEncoding, sin escrituras.
func TestSign_FirmaCorrupta(t *testing.T) {
	f := newSignFixture(t, pendingMovement(42))
	token := liveToken(f, 42)

	err := f.uc.Sign(context.Background(), signing.SignRequest{
		Token:     token,
		Artifacts: []signing.SignatureArtifact{signing.DrawnSignature{DataURI: "data:image/png;base64,%%%no-base64%%%"}},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidSignatureEncoding)
	assert.Empty(t, f.fileRepo.files)
}

// Caso 6: firma dibujada + copia subida → dos adjuntos separados.
func TestSign_AmbosArtefactos(t *testing.T) {
	f := newSignFixture(t, pendingMovement(42))
	token := liveToken(f, 42)

	err := f.uc.Sign(context.Background(), signing.SignRequest{
		Token:      token,
		SignerName: "Ana",
		Artifacts: []signing.SignatureArtifact{
			signing.DrawnSignature{DataURI: drawnDataURI("firma")},
			signing.UploadedCopy{Data: []byte("pdf-bytes"), Mime: "application/pdf", Filename: "copia.pdf"},
		},
	})
	require.NoError(t, err)

	require.Len(t, f.fileRepo.files, 2)
	assert.Equal(t, "Digital signature - Ana", f.fileRepo.files[0].Label)
	assert.Equal(t, "Uploaded copy - Ana", f.fileRepo.files[1].Label)
	assert.Len(t, f.blob.puts, 2)
}

// Caso 7: subida con MIME no permitido → ErrInvalidInput.
func TestSign_ArchivoNoPermitido(t *testing.T) {
	f := newSignFixture(t, pendingMovement(42))
	token := liveToken(f, 42)

	err := f.uc.Sign(context.Background(), signing.SignRequest{
		Token: token,
		Artifacts: []signing.SignatureArtifact{
			signing.UploadedCopy{Data: []byte("exe"), Mime: "application/octet-stream", Filename: "virus.exe"},
		},
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.blob.puts)
}

// Caso 8: re-firmar un movimiento ya firmado agrega adjuntos y re-afirma "signed".
func TestSign_ReFirmarAgregaAdjuntos(t *testing.T) {
	f := newSignFixture(t, pendingMovement(42))
	token := liveToken(f, 42)
	ctx := context.Background()

	req := signing.SignRequest{
		Token:     token,
		Artifacts: []signing.SignatureArtifact{signing.DrawnSignature{DataURI: drawnDataURI("primera")}},
	}
	require.NoError(t, f.uc.Sign(ctx, req))
	require.NoError(t, f.uc.Sign(ctx, req))

	assert.Len(t, f.fileRepo.files, 2, "cada firma agrega su propia fila")
	assert.Equal(t, entity.TransferStatusSigned, f.movRepo.movements[42].TransferStatus)
	assert.Equal(t, []string{entity.TransferStatusSigned, entity.TransferStatusSigned}, f.movRepo.statusUpdates)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests SigningPage
// ──────────────────────────────────────────────────────────────────────────────

// Caso 9: la página resuelve ítem y sectores por nombre.
func TestSigningPage_ResuelveNombres(t *testing.T) {
	f := newSignFixture(t, pendingMovement(42))
	token := liveToken(f, 42)

	page, err := f.uc.SigningPage(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, int64(42), page.MovementID)
	assert.Equal(t, "Taladro industrial", page.ItemName)
	assert.Equal(t, "TAL-07", page.ItemSKU)
	assert.Equal(t, "Bodega Norte", page.SourceSector)
	assert.Equal(t, "Obra 12", page.TargetSector)
	assert.Equal(t, entity.TransferStatusPending, page.Status)
}

// Caso 10: una falla al cargar el ítem se propaga; no se rinde página parcial.
func TestSigningPage_FallaDeItemsSePropaga(t *testing.T) {
	tokens := &fakeTokenRepo{}
	movRepo := newFakeMovementRepo(pendingMovement(42))
	fileRepo := &fakeFileRepo{}
	log := logger.New(logger.Config{Env: "production", Level: "error"})

	uc := signing.NewSignUseCase(
		tokens, movRepo,
		&fakeItemRepo{failWith: errors.New("conexión caída")},
		&fakeSectorRepo{},
		&fakeBlobStore{},
		&fakeSigningTxRunner{movRepo: movRepo, fileRepo: fileRepo},
		log,
	)
	_ = tokens.Create(&entity.PublicToken{
		MovementID: 42,
		Token:      "vivo",
		ExpiresAt:  time.Now().Add(time.Hour),
		CreatedAt:  time.Now(),
	})

	page, err := uc.SigningPage(context.Background(), "vivo")

	require.Error(t, err)
	assert.ErrorContains(t, err, "cargar ítem")
	assert.Nil(t, page)
}

// Caso 11: ítem desconocido → etiqueta de respaldo; sector nulo → marcador.
func TestSigningPage_FallbacksDeNombre(t *testing.T) {
	mov := &entity.Movement{
		ID: 43, ItemID: 999, Amount: 1, Direction: entity.DirectionOut,
		TS: time.Now(), TransferStatus: entity.TransferStatusPending,
	}
	f := newSignFixture(t, mov)
	token := liveToken(f, 43)

	page, err := f.uc.SigningPage(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, "Item #999", page.ItemName)
	assert.Equal(t, "—", page.SourceSector)
	assert.Equal(t, "—", page.TargetSector)
}
