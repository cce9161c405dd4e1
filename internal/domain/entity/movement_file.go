package entity

import "time"

// Tipos de adjunto de un movimiento.
const (
	FileKindSignature = "signature" // firma capturada o copia firmada
	FileKindDocument  = "document"  // otros adjuntos (formularios, escaneos)
)

// MovementFile es un adjunto de un movimiento: clave y URL en el blob store,
// MIME, etiqueta libre y quién lo subió (nil cuando firma un anónimo).
// Append-only: un movimiento puede acumular muchos archivos.
type MovementFile struct {
	ID         int64
	MovementID int64
	FileKey    string
	FileURL    string
	Mime       string
	Label      string
	Kind       string
	UploadedBy *int64
	UploadedAt time.Time
}
