package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/StockPilot-api/internal/application/dto"
	"github.com/jhoicas/StockPilot-api/internal/application/monitor"
	"github.com/jhoicas/StockPilot-api/internal/domain/repository"
)

// AlertsHandler expone el conjunto de alertas del loop de monitoreo y la
// consulta directa de ítems bajo umbral.
type AlertsHandler struct {
	loop  *monitor.Loop
	items repository.InventoryItemRepository
}

// NewAlertsHandler construye el handler.
func NewAlertsHandler(loop *monitor.Loop, items repository.InventoryItemRepository) *AlertsHandler {
	return &AlertsHandler{loop: loop, items: items}
}

// ListAlerts godoc
// @Summary      Alertas activas de stock
// @Description  Conjunto retenido del último ciclo del loop de monitoreo.
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.StockAlertDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/alerts [get]
func (h *AlertsHandler) ListAlerts(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"alerts": dto.FromStockAlerts(h.loop.CurrentAlerts())})
}

// ListLowStock godoc
// @Summary      Ítems bajo umbral (consulta fresca)
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.InventoryItemDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/inventory/low-stock [get]
func (h *AlertsHandler) ListLowStock(c *fiber.Ctx) error {
	snapshot, err := h.items.GetUnderThreshold(c.Context())
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "REPOSITORY_UNAVAILABLE", Message: "inventario no disponible, intente más tarde"})
	}
	out := make([]dto.InventoryItemDTO, 0, len(snapshot))
	for i := range snapshot {
		out = append(out, dto.FromInventoryItem(&snapshot[i]))
	}
	return c.JSON(fiber.Map{"items": out})
}
