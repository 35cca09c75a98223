package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/StockPilot-api/internal/domain/entity"
)

// AdjustStockRequest body para POST /api/inventory/:id/adjustments.
// Para in/out, quantity es el delta (> 0); para adjustment es el total
// absoluto resultante (>= 0).
type AdjustStockRequest struct {
	MovementType string `json:"movement_type"`
	Quantity     int    `json:"quantity"`
	Reason       string `json:"reason,omitempty"`
}

// InventoryItemDTO respuesta de un ítem con su estado derivado.
type InventoryItemDTO struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	CategoryID   string          `json:"category_id,omitempty"`
	SupplierID   string          `json:"supplier_id,omitempty"`
	SupplierName string          `json:"supplier_name,omitempty"`
	CurrentStock int             `json:"current_stock"`
	MinimumStock int             `json:"minimum_stock"`
	UnitPrice    decimal.Decimal `json:"unit_price"` // centavos
	Status       string          `json:"status"`     // derivado, nunca almacenado
	UpdatedAt    time.Time       `json:"updated_at"`
}

// FromInventoryItem arma el DTO recalculando el estado en lectura.
func FromInventoryItem(item *entity.InventoryItem) InventoryItemDTO {
	return InventoryItemDTO{
		ID:           item.ID,
		Name:         item.Name,
		SKU:          item.SKU,
		CategoryID:   item.CategoryID,
		SupplierID:   item.SupplierID,
		SupplierName: item.SupplierName,
		CurrentStock: item.CurrentStock,
		MinimumStock: item.MinimumStock,
		UnitPrice:    item.UnitPrice,
		Status:       item.Status(),
		UpdatedAt:    item.UpdatedAt,
	}
}

// StockMovementDTO fila del historial de movimientos de un ítem.
type StockMovementDTO struct {
	ID            string    `json:"id"`
	ItemID        string    `json:"inventory_item_id"`
	MovementType  string    `json:"movement_type"`
	Quantity      int       `json:"quantity"`
	PreviousStock int       `json:"previous_stock"`
	NewStock      int       `json:"new_stock"`
	Reason        string    `json:"reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// FromStockMovement convierte la entidad a DTO.
func FromStockMovement(m *entity.StockMovement) StockMovementDTO {
	return StockMovementDTO{
		ID:            m.ID,
		ItemID:        m.ItemID,
		MovementType:  m.Type,
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		Reason:        m.Reason,
		CreatedAt:     m.CreatedAt,
	}
}

// StockAlertDTO alerta activa de stock bajo umbral.
type StockAlertDTO struct {
	ItemID       string `json:"item_id"`
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	CurrentStock int    `json:"current_stock"`
	MinimumStock int    `json:"minimum_stock"`
	Severity     string `json:"severity"` // low-stock | critical
	SupplierName string `json:"supplier_name,omitempty"`
}

// FromStockAlerts convierte la lista de alertas a DTOs.
func FromStockAlerts(alerts []entity.StockAlert) []StockAlertDTO {
	out := make([]StockAlertDTO, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, StockAlertDTO{
			ItemID:       a.ItemID,
			Name:         a.Name,
			SKU:          a.SKU,
			CurrentStock: a.CurrentStock,
			MinimumStock: a.MinimumStock,
			Severity:     a.Severity,
			SupplierName: a.SupplierName,
		})
	}
	return out
}
