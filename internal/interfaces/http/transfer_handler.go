package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/punchlist/traslados-api/internal/application/dto"
	"github.com/punchlist/traslados-api/internal/application/transfer"
	"github.com/punchlist/traslados-api/internal/domain"
	"github.com/punchlist/traslados-api/internal/domain/entity"
	"github.com/punchlist/traslados-api/internal/domain/repository"
)

// TransferHandler maneja la generación de formularios de traslado (protegido).
type TransferHandler struct {
	compose *transfer.ComposeUseCase
	movRepo repository.MovementRepository
	sectors repository.SectorRepository
}

// NewTransferHandler construye el handler.
func NewTransferHandler(
	compose *transfer.ComposeUseCase,
	movRepo repository.MovementRepository,
	sectors repository.SectorRepository,
) *TransferHandler {
	return &TransferHandler{compose: compose, movRepo: movRepo, sectors: sectors}
}

// ComposeForm godoc
// @Summary      Generar formulario de traslado de un lote de movimientos
// @Description  Asegura tokens de firma, renderiza el PDF con QR, lo archiva y devuelve el locator.
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ComposeTransferFormRequest  true  "movement_ids y líneas del formulario"
// @Success      201   {object}  dto.ComposeTransferFormResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfers/form [post]
func (h *TransferHandler) ComposeForm(c *fiber.Ctx) error {
	var in dto.ComposeTransferFormRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.MovementIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "movement_ids requerido"})
	}

	fetched, err := h.movRepo.ListByIDs(in.MovementIDs)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if len(fetched) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "movimientos no encontrados"})
	}

	// ListByIDs devuelve orden por id; el primer movimiento del lote (token
	// principal, nombre del PDF) debe ser el primero de la petición.
	byID := make(map[int64]*entity.Movement, len(fetched))
	for _, m := range fetched {
		byID[m.ID] = m
	}
	movements := make([]*entity.Movement, 0, len(fetched))
	for _, id := range in.MovementIDs {
		if m, ok := byID[id]; ok {
			movements = append(movements, m)
		}
	}

	sectors, err := h.sectors.ListAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	result, err := h.compose.ComposeTransferForm(c.Context(), transfer.ComposeInput{
		Movements: movements,
		Lines:     in.Lines,
		Sectors:   sectors,
		Initiator: dto.Initiator{Name: GetUserName(c), Email: GetUserEmail(c)},
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.ComposeTransferFormResponse{
		Key:      result.Key,
		URL:      result.URL,
		Token:    result.Token,
		TokenURL: result.TokenURL,
	})
}
