package signing

import (
	"context"
	"fmt"
	"time"

	"github.com/punchlist/traslados-api/internal/application/dto"
	"github.com/punchlist/traslados-api/internal/application/ports"
	"github.com/punchlist/traslados-api/internal/domain"
	"github.com/punchlist/traslados-api/internal/domain/entity"
	"github.com/punchlist/traslados-api/internal/domain/repository"
	"github.com/punchlist/traslados-api/pkg/logger"
)

// Prefijos de etiqueta de los adjuntos de firma; se concatena " - <nombre>"
// cuando el firmante se identifica.
const (
	labelDrawnPrefix    = "Digital signature"
	labelUploadedPrefix = "Uploaded copy"
)

// signaturePrefix carpeta del blob store donde se archivan las firmas.
const signaturePrefix = "inventory/signatures"

// SignRequest una petición de firma entrante: token de capacidad, nombre
// opcional del firmante y uno o dos artefactos de firma. SignedBy es nulo
// cuando firma una contraparte anónima.
type SignRequest struct {
	Token      string
	SignerName string
	Artifacts  []SignatureArtifact
	SignedBy   *int64
}

// SignUseCase ejecuta el protocolo de firma: valida el token, archiva los
// artefactos en el blob store y dentro de una sola transacción registra los
// adjuntos y pasa el movimiento a "signed".
//
// Re-firmar un movimiento ya firmado está permitido: re-afirma "signed" y
// agrega nuevas filas de adjuntos.
type SignUseCase struct {
	tokens   repository.PublicTokenRepository
	movRepo  repository.MovementRepository
	items    repository.ItemRepository
	sectors  repository.SectorRepository
	blob     ports.BlobStore
	txRunner TxRunner
	log      *logger.Logger
}

// NewSignUseCase construye el caso de uso.
func NewSignUseCase(
	tokens repository.PublicTokenRepository,
	movRepo repository.MovementRepository,
	items repository.ItemRepository,
	sectors repository.SectorRepository,
	blob ports.BlobStore,
	txRunner TxRunner,
	log *logger.Logger,
) *SignUseCase {
	return &SignUseCase{
		tokens:   tokens,
		movRepo:  movRepo,
		items:    items,
		sectors:  sectors,
		blob:     blob,
		txRunner: txRunner,
		log:      log,
	}
}

// storedArtifact artefacto ya subido al blob store, pendiente de registrar.
type storedArtifact struct {
	key   string
	url   string
	mime  string
	label string
}

// Sign valida y ejecuta una petición de firma.
//
// Orden del protocolo: token -> vigencia -> al menos un artefacto ->
// subir artefactos -> (tx) filas de adjunto + estado "signed". Un token
// expirado nunca se renueva aquí: el firmante debe pedir un QR nuevo.
// Cualquier falla antes del commit deja el movimiento y sus adjuntos intactos.
func (uc *SignUseCase) Sign(ctx context.Context, req SignRequest) error {
	tok, err := uc.tokens.GetByToken(req.Token)
	if err != nil {
		return fmt.Errorf("resolver token: %w", err)
	}
	if tok == nil {
		return domain.ErrTokenNotFound
	}
	if tok.Expired(time.Now()) {
		return domain.ErrTokenExpired
	}
	if len(req.Artifacts) == 0 {
		return domain.ErrMissingSignatureArtifact
	}

	stored := make([]storedArtifact, 0, len(req.Artifacts))
	for _, artifact := range req.Artifacts {
		switch a := artifact.(type) {
		case DrawnSignature:
			data, mime, err := decodeDrawnSignature(a.DataURI)
			if err != nil {
				return err
			}
			filename := fmt.Sprintf("signature-%d.png", tok.MovementID)
			key, url, err := uc.blob.Put(ctx, data, mime, filename, signaturePrefix)
			if err != nil {
				return fmt.Errorf("archivar firma dibujada: %w", err)
			}
			stored = append(stored, storedArtifact{
				key: key, url: url, mime: mime,
				label: labelWithSigner(labelDrawnPrefix, req.SignerName),
			})
		case UploadedCopy:
			if err := validateUpload(a); err != nil {
				return err
			}
			key, url, err := uc.blob.Put(ctx, a.Data, a.Mime, a.Filename, signaturePrefix)
			if err != nil {
				return fmt.Errorf("archivar copia subida: %w", err)
			}
			stored = append(stored, storedArtifact{
				key: key, url: url, mime: a.Mime,
				label: labelWithSigner(labelUploadedPrefix, req.SignerName),
			})
		default:
			return fmt.Errorf("%w: artefacto de firma desconocido", domain.ErrInvalidInput)
		}
	}

	now := time.Now()
	err = uc.txRunner.RunSigning(ctx, func(
		movRepo repository.MovementRepository,
		fileRepo repository.MovementFileRepository,
	) error {
		for _, s := range stored {
			file := &entity.MovementFile{
				MovementID: tok.MovementID,
				FileKey:    s.key,
				FileURL:    s.url,
				Mime:       s.mime,
				Label:      s.label,
				Kind:       entity.FileKindSignature,
				UploadedBy: req.SignedBy,
				UploadedAt: now,
			}
			if err := fileRepo.Create(file); err != nil {
				return err
			}
		}
		// UPDATE incondicional por id: re-firmar solo re-afirma "signed".
		return movRepo.UpdateTransferStatus(tok.MovementID, entity.TransferStatusSigned)
	})
	if err != nil {
		return fmt.Errorf("registrar firma: %w", err)
	}

	uc.log.Info().
		Int64("movement_id", tok.MovementID).
		Int("artifacts", len(stored)).
		Msg("traslado firmado")
	return nil
}

// SigningPage resuelve los datos que necesita la página pública de firma.
// Solo lectura: no muta nada. Los sectores sin nombre resuelven a "—".
func (uc *SignUseCase) SigningPage(ctx context.Context, token string) (*dto.SigningPageData, error) {
	tok, err := uc.tokens.GetByToken(token)
	if err != nil {
		return nil, fmt.Errorf("resolver token: %w", err)
	}
	if tok == nil {
		return nil, domain.ErrTokenNotFound
	}
	if tok.Expired(time.Now()) {
		return nil, domain.ErrTokenExpired
	}

	mov, err := uc.movRepo.GetByID(tok.MovementID)
	if err != nil {
		return nil, fmt.Errorf("cargar movimiento: %w", err)
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}

	page := &dto.SigningPageData{
		MovementID:   mov.ID,
		ItemName:     fmt.Sprintf("Item #%d", mov.ItemID),
		Amount:       mov.Amount,
		Direction:    mov.Direction,
		SourceSector: sectorPlaceholder,
		TargetSector: sectorPlaceholder,
		Status:       mov.TransferStatus,
		ExpiresAt:    tok.ExpiresAt,
	}

	item, err := uc.items.GetByID(mov.ItemID)
	if err != nil {
		return nil, fmt.Errorf("cargar ítem: %w", err)
	}
	// Ítem inexistente: la página conserva el rótulo "Item #N".
	if item != nil {
		page.ItemName = item.Name
		page.ItemSKU = item.SKU
	}

	sectors, err := uc.sectors.ListAll()
	if err != nil {
		// La página puede renderizarse sin nombres de sector.
		uc.log.Warn().Err(err).Msg("cargar sectores para página de firma")
		return page, nil
	}
	names := make(map[int64]string, len(sectors))
	for _, s := range sectors {
		names[s.ID] = s.Name
	}
	page.SourceSector = sectorLabel(names, mov.SourceSectorID)
	page.TargetSector = sectorLabel(names, mov.TargetSectorID)
	return page, nil
}

// sectorPlaceholder marcador cuando un id de sector no resuelve a nombre.
const sectorPlaceholder = "—"

func sectorLabel(names map[int64]string, id *int64) string {
	if id == nil {
		return sectorPlaceholder
	}
	if name, ok := names[*id]; ok {
		return name
	}
	return sectorPlaceholder
}

func labelWithSigner(prefix, signer string) string {
	if signer == "" {
		return prefix
	}
	return prefix + " - " + signer
}
