// Package storage implementa el Blob Store sobre un bucket S3/MinIO.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/punchlist/traslados-api/internal/application/ports"
	"github.com/punchlist/traslados-api/pkg/config"
)

var _ ports.BlobStore = (*MinioBlobStore)(nil)

// MinioBlobStore sube objetos a un bucket S3-compatible y construye URLs
// durables a partir de la base pública configurada.
type MinioBlobStore struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
}

// NewMinioBlobStore construye el cliente y verifica que el bucket exista.
// Un bucket inaccesible es un error de configuración fatal para el operador.
func NewMinioBlobStore(ctx context.Context, cfg config.StorageConfig) (*MinioBlobStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("crear cliente S3: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("verificar bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %q no existe", cfg.Bucket)
	}

	base := cfg.PublicBaseURL
	if base == "" {
		base = client.EndpointURL().String()
	}
	return &MinioBlobStore{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(base, "/"),
	}, nil
}

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Put sube los bytes bajo una clave única y devuelve (clave, URL).
// Clave: <prefijo>/<YYYY/MM/DD>/<uuid>-<nombre-saneado>. La partición por
// fecha más el sufijo aleatorio evita colisiones bajo llamadas concurrentes.
func (s *MinioBlobStore) Put(ctx context.Context, data []byte, mime, filename, prefix string) (string, string, error) {
	safePrefix := strings.Trim(prefix, "/")
	if safePrefix != "" {
		safePrefix += "/"
	}
	safeName := unsafeKeyChars.ReplaceAllString(filename, "-")
	key := safePrefix + time.Now().UTC().Format("2006/01/02") + "/" + uuid.New().String() + "-" + safeName

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: mime,
	})
	if err != nil {
		return "", "", fmt.Errorf("subir objeto %q: %w", key, err)
	}
	return key, s.objectURL(key), nil
}

func (s *MinioBlobStore) objectURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, key)
}
