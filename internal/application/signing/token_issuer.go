package signing

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/punchlist/traslados-api/internal/application/dto"
	"github.com/punchlist/traslados-api/internal/domain/entity"
	"github.com/punchlist/traslados-api/internal/domain/repository"
)

// DefaultTokenTTLDays vigencia por defecto de un token de firma.
const DefaultTokenTTLDays = 14

// TokenIssuer emite y reutiliza tokens de firma pública por movimiento.
//
// La emisión es idempotente dentro de la ventana de vigencia: si existe un
// token vivo se devuelve tal cual. Dos peticiones casi simultáneas pueden ver
// ambas "no hay token vivo" e insertar las dos; la carrera es benigna (quedan
// dos tokens válidos, ambos usables) y no se serializa a propósito.
type TokenIssuer struct {
	tokens     repository.PublicTokenRepository
	baseURL    string
	signPath   string
	defaultTTL int
}

// NewTokenIssuer construye el emisor. baseURL y signPath forman la URL
// pública de firma: <base-url><sign-path>?token=<token>. defaultTTL en
// días (0 = DefaultTokenTTLDays).
func NewTokenIssuer(tokens repository.PublicTokenRepository, baseURL, signPath string, defaultTTL int) *TokenIssuer {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTokenTTLDays
	}
	return &TokenIssuer{tokens: tokens, baseURL: baseURL, signPath: signPath, defaultTTL: defaultTTL}
}

// EnsurePublicToken devuelve el token vigente del movimiento o acuña uno
// nuevo: 32 bytes de aleatoriedad criptográfica en base64url sin padding
// (~43 caracteres, ~256 bits de entropía). Expiración = now + ttlDays.
func (s *TokenIssuer) EnsurePublicToken(ctx context.Context, movementID int64, ttlDays int) (*dto.PublicTokenInfo, error) {
	if ttlDays <= 0 {
		ttlDays = s.defaultTTL
	}
	now := time.Now()

	existing, err := s.tokens.GetActiveByMovement(movementID, now)
	if err != nil {
		return nil, fmt.Errorf("buscar token vigente: %w", err)
	}
	if existing != nil {
		return s.tokenInfo(existing), nil
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}
	token := &entity.PublicToken{
		MovementID: movementID,
		Token:      base64.RawURLEncoding.EncodeToString(raw),
		ExpiresAt:  now.AddDate(0, 0, ttlDays),
		CreatedAt:  now,
	}
	if err := s.tokens.Create(token); err != nil {
		return nil, fmt.Errorf("guardar token: %w", err)
	}
	return s.tokenInfo(token), nil
}

// SigningURL construye la URL pública de firma para un token.
func (s *TokenIssuer) SigningURL(token string) string {
	return strings.TrimRight(s.baseURL, "/") + s.signPath + "?token=" + url.QueryEscape(token)
}

func (s *TokenIssuer) tokenInfo(t *entity.PublicToken) *dto.PublicTokenInfo {
	return &dto.PublicTokenInfo{
		Token:     t.Token,
		URL:       s.SigningURL(t.Token),
		ExpiresAt: t.ExpiresAt,
	}
}
