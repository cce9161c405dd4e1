package transfer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/punchlist/traslados-api/internal/application/dto"
	"github.com/punchlist/traslados-api/internal/application/ports"
	"github.com/punchlist/traslados-api/internal/domain"
	"github.com/punchlist/traslados-api/internal/domain/entity"
	"github.com/punchlist/traslados-api/internal/domain/repository"
	"github.com/punchlist/traslados-api/pkg/logger"
)

// DefaultInitiatorLabel etiqueta cuando el iniciador no tiene nombre ni email.
const DefaultInitiatorLabel = "Inventory User"

// transferPrefix carpeta del blob store donde se archivan los formularios.
const transferPrefix = "inventory/transfers"

// ComposeInput lote de movimientos recién creados más el contexto para el formulario.
type ComposeInput struct {
	Movements []*entity.Movement
	Lines     []dto.TransferLine
	Sectors   []*entity.Sector
	Initiator dto.Initiator
}

// ComposeResult locator del PDF subido más el token principal del lote.
type ComposeResult struct {
	Key      string
	URL      string
	Token    string
	TokenURL string
}

// ComposeUseCase genera el formulario de traslado: asegura un token de firma
// por movimiento, renderiza el PDF con el QR de la URL de firma, lo sube al
// blob store y escribe el locator en todos los movimientos del lote.
type ComposeUseCase struct {
	issuer   TokenIssuer
	movRepo  repository.MovementRepository
	qr       QREncoder
	renderer FormRenderer
	blob     ports.BlobStore
	qrSize   int
	log      *logger.Logger
}

// NewComposeUseCase construye el caso de uso. qrSize en píxeles (0 = 240).
func NewComposeUseCase(
	issuer TokenIssuer,
	movRepo repository.MovementRepository,
	qr QREncoder,
	renderer FormRenderer,
	blob ports.BlobStore,
	qrSize int,
	log *logger.Logger,
) *ComposeUseCase {
	if qrSize <= 0 {
		qrSize = 240
	}
	return &ComposeUseCase{
		issuer:   issuer,
		movRepo:  movRepo,
		qr:       qr,
		renderer: renderer,
		blob:     blob,
		qrSize:   qrSize,
		log:      log,
	}
}

// ComposeTransferForm arma y archiva el formulario para un lote de movimientos.
//
// Cada movimiento del lote recibe su propia fila de token, pero el documento
// embebe el token del primer movimiento: todo el lote se firma a través de él.
func (uc *ComposeUseCase) ComposeTransferForm(ctx context.Context, input ComposeInput) (*ComposeResult, error) {
	if len(input.Movements) == 0 {
		return nil, fmt.Errorf("%w: se requiere al menos un movimiento", domain.ErrInvalidInput)
	}

	var primaryToken *dto.PublicTokenInfo
	for i, mov := range input.Movements {
		tok, err := uc.issuer.EnsurePublicToken(ctx, mov.ID, 0)
		if err != nil {
			return nil, fmt.Errorf("asegurar token del movimiento %d: %w", mov.ID, err)
		}
		if i == 0 {
			primaryToken = tok
		}
	}

	primary := input.Movements[0]
	names := make(map[int64]string, len(input.Sectors))
	for _, s := range input.Sectors {
		names[s.ID] = s.Name
	}

	data := &FormData{
		TransferID:    primary.ID,
		GeneratedAt:   time.Now(),
		InitiatorName: initiatorName(input.Initiator),
		SourceSector:  optionalSectorName(names, primary.SourceSectorID),
		TargetSector:  optionalSectorName(names, primary.TargetSectorID),
		SigningURL:    primaryToken.URL,
		Lines:         input.Lines,
	}

	qr, err := uc.qr.Encode(ctx, primaryToken.URL, uc.qrSize)
	if err != nil {
		// El formulario sigue siendo válido sin QR; la URL impresa basta.
		uc.log.Warn().Err(err).Msg("generar QR del formulario")
	} else {
		data.QR = qr
	}

	pdf, err := uc.renderer.Render(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("renderizar formulario: %w", err)
	}

	filename := fmt.Sprintf("transfer-%d.pdf", primary.ID)
	key, url, err := uc.blob.Put(ctx, pdf, "application/pdf", filename, transferPrefix)
	if err != nil {
		return nil, fmt.Errorf("subir formulario: %w", err)
	}

	ids := make([]int64, 0, len(input.Movements))
	for _, mov := range input.Movements {
		ids = append(ids, mov.ID)
	}
	if err := uc.movRepo.UpdateTransferForm(ids, key, url); err != nil {
		return nil, fmt.Errorf("actualizar punteros de formulario: %w", err)
	}

	uc.log.Info().
		Int64("transfer_id", primary.ID).
		Int("movements", len(ids)).
		Str("key", key).
		Msg("formulario de traslado generado")

	return &ComposeResult{
		Key:      key,
		URL:      url,
		Token:    primaryToken.Token,
		TokenURL: primaryToken.URL,
	}, nil
}

// initiatorName resuelve el nombre visible: nombre -> email -> etiqueta fija.
func initiatorName(in dto.Initiator) string {
	if name := strings.TrimSpace(in.Name); name != "" {
		return name
	}
	if email := strings.TrimSpace(in.Email); email != "" {
		return email
	}
	return DefaultInitiatorLabel
}

// optionalSectorName vacío cuando el id es nulo o no resuelve (no se renderiza).
func optionalSectorName(names map[int64]string, id *int64) string {
	if id == nil {
		return ""
	}
	return names[*id]
}
