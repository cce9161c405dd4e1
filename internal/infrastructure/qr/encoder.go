// Package qr implementa el colaborador de códigos QR en sus dos variantes:
// encoder local (PNG en memoria) y servicio remoto de renderizado.
package qr

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/boombuler/barcode"
	qrcode "github.com/boombuler/barcode/qr"
	"github.com/punchlist/traslados-api/internal/application/transfer"
)

var _ transfer.QREncoder = (*LocalEncoder)(nil)
var _ transfer.QREncoder = (*RemoteEncoder)(nil)

// LocalEncoder genera el PNG del QR en el proceso, sin dependencias de red.
type LocalEncoder struct{}

// NewLocalEncoder construye el encoder local.
func NewLocalEncoder() *LocalEncoder { return &LocalEncoder{} }

// Encode genera un QR nivel L escalado a sizePx y lo devuelve como PNG inline.
func (e *LocalEncoder) Encode(_ context.Context, target string, sizePx int) (*transfer.QRImage, error) {
	if target == "" {
		return nil, fmt.Errorf("qr: URL vacía")
	}
	if sizePx <= 0 {
		sizePx = 240
	}
	code, err := qrcode.Encode(target, qrcode.L, qrcode.Auto)
	if err != nil {
		return nil, fmt.Errorf("qr: codificar: %w", err)
	}
	scaled, err := barcode.Scale(code, sizePx, sizePx)
	if err != nil {
		return nil, fmt.Errorf("qr: escalar: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("qr: serializar PNG: %w", err)
	}
	return &transfer.QRImage{Data: buf.Bytes()}, nil
}

// RemoteEncoder delega el renderizado en un servicio externo (quickchart.io)
// y descarga la imagen para que el documento la embeba igual que la local.
type RemoteEncoder struct {
	endpoint string
	client   *http.Client
}

// NewRemoteEncoder construye el encoder remoto. endpoint vacío usa quickchart.io.
func NewRemoteEncoder(endpoint string) *RemoteEncoder {
	if endpoint == "" {
		endpoint = "https://quickchart.io/qr"
	}
	return &RemoteEncoder{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Encode construye la URL del servicio y descarga el PNG renderizado.
// La URL se devuelve siempre como referencia; los bytes, si la descarga funcionó.
func (e *RemoteEncoder) Encode(ctx context.Context, target string, sizePx int) (*transfer.QRImage, error) {
	if target == "" {
		return nil, fmt.Errorf("qr: URL vacía")
	}
	if sizePx <= 0 {
		sizePx = 240
	}
	q := url.Values{}
	q.Set("text", target)
	q.Set("size", fmt.Sprintf("%dx%d", sizePx, sizePx))
	q.Set("light", "ffffff")
	imageURL := e.endpoint + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("qr: preparar petición: %w", err)
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("qr: servicio remoto: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("qr: servicio remoto respondió %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("qr: leer respuesta: %w", err)
	}
	return &transfer.QRImage{Data: data, URL: imageURL}, nil
}
