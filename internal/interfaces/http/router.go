package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/StockPilot-api/internal/application/monitor"
	"github.com/jhoicas/StockPilot-api/internal/application/reorder"
	"github.com/jhoicas/StockPilot-api/internal/application/stock"
	"github.com/jhoicas/StockPilot-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Monitor     *monitor.Loop
	Adjustments *stock.AdjustmentService
	Planner     *reorder.Planner
	Items       repository.InventoryItemRepository
	Movements   repository.StockMovementRepository
	Orders      repository.PurchaseOrderRepository
	JWTSecret   string
}

// Router registra las rutas de la API (todas protegidas con Bearer Token).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	alertsHandler := NewAlertsHandler(deps.Monitor, deps.Items)
	api.Get("/alerts", alertsHandler.ListAlerts)
	api.Get("/inventory/low-stock", alertsHandler.ListLowStock)

	stockHandler := NewStockHandler(deps.Adjustments, deps.Movements)
	api.Post("/inventory/:id/adjustments", stockHandler.Adjust)
	api.Get("/inventory/:id/movements", stockHandler.ListMovements)

	reorderHandler := NewReorderHandler(deps.Planner, deps.Items, deps.Orders)
	api.Post("/purchase-orders/plan", reorderHandler.Plan)
	// Generar órdenes escribe en la BD: solo admin y bodeguero.
	api.Post("/purchase-orders/auto-generate", RequireRole("admin", "bodeguero"), reorderHandler.AutoGenerate)
	api.Get("/purchase-orders", reorderHandler.ListOrders)
}
