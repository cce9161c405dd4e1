package dto

import "time"

// PublicTokenInfo token de firma con su URL pública.
type PublicTokenInfo struct {
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SigningPageData datos que renderiza la página pública de firma.
// Las etiquetas de sector usan un marcador explícito cuando el id no resuelve.
type SigningPageData struct {
	MovementID   int64     `json:"movement_id"`
	ItemName     string    `json:"item_name"`
	ItemSKU      string    `json:"item_sku"`
	Amount       int64     `json:"amount"`
	Direction    string    `json:"direction"`
	SourceSector string    `json:"source_sector"`
	TargetSector string    `json:"target_sector"`
	Status       string    `json:"status"`
	ExpiresAt    time.Time `json:"expires_at"`
}
