package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound                 = errors.New("recurso no encontrado")
	ErrInvalidInput             = errors.New("entrada inválida")
	ErrInsufficientStock        = errors.New("stock insuficiente")
	ErrTokenNotFound            = errors.New("token de firma no encontrado")
	ErrTokenExpired             = errors.New("token de firma expirado")
	ErrMissingSignatureArtifact = errors.New("se requiere una firma dibujada o un archivo firmado")
	ErrInvalidSignatureEncoding = errors.New("la firma no pudo decodificarse")
)
