package entity

import "time"

// PublicToken es la credencial de capacidad que permite a una contraparte
// anónima cerrar la firma de un movimiento dentro de su ventana de vigencia.
// Un movimiento puede acumular varios tokens (histórico); solo los no
// expirados se reutilizan. No existe revocación explícita: expirar es la
// única vía de desactivación.
type PublicToken struct {
	ID         int64
	MovementID int64
	Token      string // 32 bytes aleatorios, base64url sin padding (~43 chars)
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

// Expired indica si el token ya no es válido en el instante now.
func (t *PublicToken) Expired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
