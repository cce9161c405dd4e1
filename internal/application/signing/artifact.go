package signing

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/punchlist/traslados-api/internal/domain"
)

// SignatureArtifact es la variante etiquetada "firma dibujada o copia subida".
// Una petición de firma debe traer al menos una; puede traer ambas y en ese
// caso se archivan como adjuntos separados.
type SignatureArtifact interface {
	isSignatureArtifact()
}

// DrawnSignature firma dibujada en el canvas de la página pública,
// transmitida como data-URI (data:image/...;base64,...).
type DrawnSignature struct {
	DataURI string
}

// UploadedCopy copia firmada subida como archivo (imagen o PDF).
type UploadedCopy struct {
	Data     []byte
	Mime     string
	Filename string
}

func (DrawnSignature) isSignatureArtifact() {}
func (UploadedCopy) isSignatureArtifact()   {}

// Límites del path genérico de subida de archivos.
const maxUploadBytes = 10 << 20 // 10 MiB

var dataURIMimeRe = regexp.MustCompile(`^data:(.*?);base64$`)

// decodeDrawnSignature valida y decodifica una firma dibujada. El payload
// debe ser un data-URI de imagen; si la cabecera no declara MIME se asume
// image/png. Un cuerpo base64 corrupto produce ErrInvalidSignatureEncoding.
func decodeDrawnSignature(dataURI string) (data []byte, mime string, err error) {
	if !strings.HasPrefix(dataURI, "data:image") {
		return nil, "", fmt.Errorf("%w: se esperaba un data-URI de imagen", domain.ErrInvalidSignatureEncoding)
	}
	head, body, ok := strings.Cut(dataURI, ",")
	if !ok {
		return nil, "", fmt.Errorf("%w: data-URI sin cuerpo", domain.ErrInvalidSignatureEncoding)
	}
	mime = "image/png"
	if m := dataURIMimeRe.FindStringSubmatch(head); m != nil && m[1] != "" {
		mime = m[1]
	}
	data, err = base64.StdEncoding.DecodeString(body)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrInvalidSignatureEncoding, err)
	}
	return data, mime, nil
}

// validateUpload aplica las validaciones del path genérico de subida:
// contenido presente, tamaño acotado y MIME permitido (imágenes o PDF).
func validateUpload(u UploadedCopy) error {
	if len(u.Data) == 0 {
		return fmt.Errorf("%w: archivo vacío", domain.ErrInvalidInput)
	}
	if len(u.Data) > maxUploadBytes {
		return fmt.Errorf("%w: archivo supera el máximo de %d bytes", domain.ErrInvalidInput, maxUploadBytes)
	}
	if !strings.HasPrefix(u.Mime, "image/") && u.Mime != "application/pdf" {
		return fmt.Errorf("%w: tipo de archivo no permitido (%s)", domain.ErrInvalidInput, u.Mime)
	}
	return nil
}
