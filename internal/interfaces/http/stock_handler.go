package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/StockPilot-api/internal/application/dto"
	"github.com/jhoicas/StockPilot-api/internal/application/stock"
	"github.com/jhoicas/StockPilot-api/internal/domain"
	"github.com/jhoicas/StockPilot-api/internal/domain/repository"
)

// StockHandler maneja ajustes de stock y el historial de movimientos.
type StockHandler struct {
	adjustments *stock.AdjustmentService
	movements   repository.StockMovementRepository
}

// NewStockHandler construye el handler.
func NewStockHandler(adjustments *stock.AdjustmentService, movements repository.StockMovementRepository) *StockHandler {
	return &StockHandler{adjustments: adjustments, movements: movements}
}

// Adjust godoc
// @Summary      Aplicar un movimiento de stock
// @Description  in/out con quantity como delta, adjustment con quantity como
//
//	total absoluto. Actualiza el ítem y registra el movimiento en
//	la misma transacción y dispara una re-evaluación de alertas.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del ítem"
// @Param        body  body  dto.AdjustStockRequest  true  "movement_type, quantity, reason"
// @Success      200   {object}  dto.InventoryItemDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/adjustments [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	item, err := h.adjustments.Apply(c.Context(), stock.AdjustmentInput{
		ItemID:   c.Params("id"),
		Type:     in.MovementType,
		Quantity: in.Quantity,
		Reason:   in.Reason,
		UserID:   GetUserID(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidQuantity):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "cantidad inválida para el tipo de movimiento"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ítem no encontrado"})
		case errors.Is(err, domain.ErrNoPartialUpdate):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_PARTIAL_UPDATE", Message: "el ajuste no se aplicó; reintente la operación completa"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.FromInventoryItem(item))
}

// ListMovements godoc
// @Summary      Historial de movimientos de un ítem
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del ítem"
// @Param        limit   query  int     false  "máximo de filas (default 20)"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {array}   dto.StockMovementDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()

	movements, err := h.movements.ListByItem(c.Context(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.StockMovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.FromStockMovement(m))
	}
	return c.JSON(fiber.Map{
		"movements": out,
		"page":      dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}
