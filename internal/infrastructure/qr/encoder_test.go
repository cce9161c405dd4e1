package qr_test

import (
	"bytes"
	"context"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punchlist/traslados-api/internal/infrastructure/qr"
)

// Caso 1: el encoder local produce un PNG decodificable del tamaño pedido.
func TestLocalEncoder_GeneraPNGValido(t *testing.T) {
	enc := qr.NewLocalEncoder()

	img, err := enc.Encode(context.Background(), "https://app.example.com/sign?token=abc", 240)
	require.NoError(t, err)
	require.NotEmpty(t, img.Data)

	decoded, err := png.Decode(bytes.NewReader(img.Data))
	require.NoError(t, err, "los bytes deben ser un PNG válido")
	assert.Equal(t, 240, decoded.Bounds().Dx())
	assert.Equal(t, 240, decoded.Bounds().Dy())
}

// Caso 2: URL vacía → error.
func TestLocalEncoder_URLVacia(t *testing.T) {
	enc := qr.NewLocalEncoder()

	_, err := enc.Encode(context.Background(), "", 240)

	assert.Error(t, err)
}

// Caso 3: el encoder remoto pide la imagen al servicio y devuelve los bytes.
func TestRemoteEncoder_DescargaImagen(t *testing.T) {
	var gotText, gotSize string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotText = r.URL.Query().Get("text")
		gotSize = r.URL.Query().Get("size")
		_, _ = w.Write([]byte("png-remoto"))
	}))
	defer srv.Close()

	enc := qr.NewRemoteEncoder(srv.URL)
	img, err := enc.Encode(context.Background(), "https://app.example.com/sign?token=abc", 300)
	require.NoError(t, err)

	assert.Equal(t, "https://app.example.com/sign?token=abc", gotText)
	assert.Equal(t, "300x300", gotSize)
	assert.Equal(t, []byte("png-remoto"), img.Data)
	assert.Contains(t, img.URL, srv.URL)
}

// Caso 4: el servicio remoto responde error → el encoder propaga la falla.
func TestRemoteEncoder_ServicioCaido(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	enc := qr.NewRemoteEncoder(srv.URL)
	_, err := enc.Encode(context.Background(), "https://app.example.com/sign?token=abc", 240)

	assert.Error(t, err)
}
