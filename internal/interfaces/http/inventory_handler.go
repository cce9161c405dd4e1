package http

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/punchlist/traslados-api/internal/application/dto"
	"github.com/punchlist/traslados-api/internal/application/inventory"
	"github.com/punchlist/traslados-api/internal/domain"
)

// InventoryHandler maneja las peticiones HTTP del ledger y del feed (protegido).
type InventoryHandler struct {
	ledger *inventory.LedgerUseCase
	feed   *inventory.FeedUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase, feed *inventory.FeedUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, feed: feed}
}

// AdjustStock godoc
// @Summary      Ajustar stock por (ítem, sector)
// @Description  Aplica un delta acotado al stock. sector_id nulo = no-op.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "item_id, sector_id, delta"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/stock/adjust [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ItemID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item_id requerido"})
	}
	if err := h.ledger.AdjustStock(c.Context(), in.ItemID, in.SectorID, in.Delta); err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "stock ajustado"})
}

// ListMovements godoc
// @Summary      Movimientos por ítem con adjuntos y tokens
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_ids  query  string  true  "IDs de ítem separados por coma, ej: 1,2,3"
// @Success      200  {object}  map[string][]dto.MovementWithAttachments
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	itemIDs, err := parseIDList(c.Query("item_ids"))
	if err != nil || len(itemIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item_ids requerido: lista de enteros separados por coma"})
	}
	result, err := h.feed.ListMovements(c.Context(), itemIDs)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item_ids requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(result)
}

// parseIDList parsea "1,2,3" a []int64 ignorando entradas vacías.
func parseIDList(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
