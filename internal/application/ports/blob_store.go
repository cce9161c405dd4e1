package ports

import "context"

// BlobStore puerto hacia el almacenamiento de objetos S3/MinIO.
// Put guarda los bytes bajo una clave única (partición por fecha + sufijo
// aleatorio + nombre saneado) y devuelve clave y URL durable. Las fallas del
// colaborador se propagan tal cual; los reintentos son responsabilidad suya.
type BlobStore interface {
	Put(ctx context.Context, data []byte, mime, filename, prefix string) (key, url string, err error)
}
