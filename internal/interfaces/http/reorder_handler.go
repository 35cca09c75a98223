package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/StockPilot-api/internal/application/dto"
	"github.com/jhoicas/StockPilot-api/internal/application/reorder"
	"github.com/jhoicas/StockPilot-api/internal/domain/repository"
)

// ReorderHandler maneja borradores y generación automática de órdenes de compra.
type ReorderHandler struct {
	planner *reorder.Planner
	items   repository.InventoryItemRepository
	orders  repository.PurchaseOrderRepository
}

// NewReorderHandler construye el handler.
func NewReorderHandler(planner *reorder.Planner, items repository.InventoryItemRepository, orders repository.PurchaseOrderRepository) *ReorderHandler {
	return &ReorderHandler{planner: planner, items: items, orders: orders}
}

// plan arma los borradores para los ítems seleccionados que siguen bajo umbral.
func (h *ReorderHandler) plan(c *fiber.Ctx) ([]reorder.Draft, error) {
	var in dto.ReorderPlanRequest
	if err := c.BodyParser(&in); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "cuerpo inválido")
	}
	if len(in.ItemIDs) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "item_ids requerido")
	}
	catalog, err := h.items.GetUnderThreshold(c.Context())
	if err != nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "inventario no disponible, intente más tarde")
	}
	return h.planner.Plan(in.ItemIDs, catalog), nil
}

// Plan godoc
// @Summary      Borradores de órdenes de compra (sin persistir)
// @Description  Agrupa los ítems seleccionados bajo umbral por proveedor y
//
//	sugiere cantidades para reponer al doble del stock mínimo.
//
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReorderPlanRequest  true  "item_ids"
// @Success      200   {array}   dto.PurchaseOrderDraftDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/plan [post]
func (h *ReorderHandler) Plan(c *fiber.Ctx) error {
	drafts, err := h.plan(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "PLAN_FAILED", Message: fe.Message})
	}
	return c.JSON(fiber.Map{"drafts": dto.FromDrafts(drafts)})
}

// AutoGenerate godoc
// @Summary      Generar órdenes de compra para ítems bajo umbral
// @Description  Una orden por proveedor, cada una en su propia transacción:
//
//	el fallo de un proveedor no revierte las órdenes ya
//	confirmadas de otros. Devuelve el resultado por proveedor.
//
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReorderPlanRequest  true  "item_ids"
// @Success      201   {array}   dto.ConfirmResultDTO
// @Success      207   {array}   dto.ConfirmResultDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/auto-generate [post]
func (h *ReorderHandler) AutoGenerate(c *fiber.Ctx) error {
	drafts, err := h.plan(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "PLAN_FAILED", Message: fe.Message})
	}
	if len(drafts) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NOTHING_TO_ORDER", Message: "ningún ítem seleccionado sigue bajo umbral"})
	}

	results := h.planner.ConfirmAll(c.Context(), drafts)
	status := fiber.StatusCreated
	for _, r := range results {
		if r.Err != nil {
			// Fallo parcial: el caller reintenta solo los proveedores con error.
			status = fiber.StatusMultiStatus
			break
		}
	}
	return c.Status(status).JSON(fiber.Map{"results": dto.FromConfirmResults(results)})
}

// ListOrders godoc
// @Summary      Listar órdenes de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo de filas (default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}   dto.PurchaseOrderDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [get]
func (h *ReorderHandler) ListOrders(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	page.DefaultPage()

	orders, err := h.orders.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.PurchaseOrderDTO, 0, len(orders))
	for _, o := range orders {
		out = append(out, dto.FromPurchaseOrder(o))
	}
	return c.JSON(fiber.Map{
		"orders": out,
		"page":   dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}
