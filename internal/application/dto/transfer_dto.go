package dto

// TransferLine una línea del formulario de traslado (qué se movió y por qué).
type TransferLine struct {
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	Amount    int64  `json:"amount"`
	Direction string `json:"direction"`
	Reason    string `json:"reason"`
}

// Initiator identidad de quien genera el formulario.
// El nombre visible se resuelve con fallback: Name -> Email -> etiqueta fija.
type Initiator struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ComposeTransferFormRequest petición HTTP para generar el formulario de un lote.
type ComposeTransferFormRequest struct {
	MovementIDs []int64        `json:"movement_ids"`
	Lines       []TransferLine `json:"lines"`
}

// ComposeTransferFormResponse locator del PDF más el token principal del lote.
type ComposeTransferFormResponse struct {
	Key      string `json:"key"`
	URL      string `json:"url"`
	Token    string `json:"token"`
	TokenURL string `json:"token_url"`
}
