package entity

import "time"

// Direcciones de un movimiento de inventario.
const (
	DirectionIn       = "in"       // entrada
	DirectionOut      = "out"      // salida
	DirectionTransfer = "transfer" // traslado entre sectores
)

// Estados de firma de un traslado. Transición única pending -> signed; no hay reversa.
const (
	TransferStatusPending = "pending"
	TransferStatusSigned  = "signed"
)

// Movement representa un evento inmutable de movimiento de inventario.
// Las filas se crean aguas arriba; este servicio solo las lee (agrupadas por
// ítem) y actualiza transfer_status y los punteros al formulario generado.
type Movement struct {
	ID              int64
	ItemID          int64
	Amount          int64
	Direction       string // in, out, transfer
	SourceSectorID  *int64
	TargetSectorID  *int64
	TS              time.Time
	TransferStatus  string // pending, signed
	TransferFormKey *string
	TransferFormURL *string
}

// Signed indica si el traslado ya fue firmado por la contraparte.
func (m *Movement) Signed() bool {
	return m.TransferStatus == TransferStatusSigned
}
