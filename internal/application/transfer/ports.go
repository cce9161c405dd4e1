package transfer

import (
	"context"
	"time"

	"github.com/punchlist/traslados-api/internal/application/dto"
)

// TokenIssuer puerto hacia el emisor de tokens públicos de firma.
type TokenIssuer interface {
	EnsurePublicToken(ctx context.Context, movementID int64, ttlDays int) (*dto.PublicTokenInfo, error)
}

// QRImage resultado del encoder de QR: bytes PNG inline o la URL del servicio
// remoto que sirve la imagen. Ambas vías son intercambiables para el
// renderizador (una referencia de imagen).
type QRImage struct {
	Data []byte
	URL  string
}

// QREncoder puerto hacia el generador de códigos QR.
type QREncoder interface {
	Encode(ctx context.Context, url string, sizePx int) (*QRImage, error)
}

// FormData todo lo que necesita el renderizador para armar el formulario.
type FormData struct {
	TransferID    int64
	GeneratedAt   time.Time
	InitiatorName string
	SourceSector  string // vacío = no renderizar la línea
	TargetSector  string // vacío = no renderizar la línea
	QR            *QRImage
	SigningURL    string
	Lines         []dto.TransferLine
}

// FormRenderer puerto hacia el compositor de documentos (PDF A4 vertical).
type FormRenderer interface {
	Render(ctx context.Context, data *FormData) ([]byte, error)
}
