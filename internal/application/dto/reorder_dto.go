package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/StockPilot-api/internal/application/reorder"
	"github.com/jhoicas/StockPilot-api/internal/domain/entity"
)

// ReorderPlanRequest body para POST /api/purchase-orders/plan y
// /api/purchase-orders/auto-generate.
type ReorderPlanRequest struct {
	ItemIDs []string `json:"item_ids"`
}

// DraftLineDTO línea sugerida de un borrador.
type DraftLineDTO struct {
	ItemID            string          `json:"inventory_item_id"`
	Name              string          `json:"name"`
	SKU               string          `json:"sku"`
	SuggestedQuantity int             `json:"suggested_quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	LineTotal         decimal.Decimal `json:"line_total"`
}

// PurchaseOrderDraftDTO borrador de orden por proveedor (aún sin persistir).
type PurchaseOrderDraftDTO struct {
	SupplierID   string          `json:"supplier_id"`
	SupplierName string          `json:"supplier_name,omitempty"`
	Lines        []DraftLineDTO  `json:"lines"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// FromDrafts convierte los borradores del planner a DTOs.
func FromDrafts(drafts []reorder.Draft) []PurchaseOrderDraftDTO {
	out := make([]PurchaseOrderDraftDTO, 0, len(drafts))
	for _, d := range drafts {
		lines := make([]DraftLineDTO, 0, len(d.Lines))
		for _, l := range d.Lines {
			lines = append(lines, DraftLineDTO{
				ItemID:            l.ItemID,
				Name:              l.Name,
				SKU:               l.SKU,
				SuggestedQuantity: l.SuggestedQuantity,
				UnitPrice:         l.UnitPrice,
				LineTotal:         l.LineTotal,
			})
		}
		out = append(out, PurchaseOrderDraftDTO{
			SupplierID:   d.SupplierID,
			SupplierName: d.SupplierName,
			Lines:        lines,
			TotalAmount:  d.TotalAmount,
		})
	}
	return out
}

// PurchaseOrderDTO orden de compra persistida.
type PurchaseOrderDTO struct {
	ID          string          `json:"id"`
	PONumber    string          `json:"po_number"`
	SupplierID  string          `json:"supplier_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	OrderDate   time.Time       `json:"order_date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// FromPurchaseOrder convierte la entidad a DTO.
func FromPurchaseOrder(o *entity.PurchaseOrder) PurchaseOrderDTO {
	return PurchaseOrderDTO{
		ID:          o.ID,
		PONumber:    o.PONumber,
		SupplierID:  o.SupplierID,
		TotalAmount: o.TotalAmount,
		Status:      o.Status,
		OrderDate:   o.OrderDate,
		CreatedAt:   o.CreatedAt,
	}
}

// ConfirmResultDTO resultado por proveedor de la generación automática.
// Las órdenes de otros proveedores ya confirmadas no se revierten por el
// fallo de una: el caller reintenta solo el subconjunto con error.
type ConfirmResultDTO struct {
	SupplierID string            `json:"supplier_id"`
	Order      *PurchaseOrderDTO `json:"order,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// FromConfirmResults convierte los resultados del lote a DTOs.
func FromConfirmResults(results []reorder.ConfirmResult) []ConfirmResultDTO {
	out := make([]ConfirmResultDTO, 0, len(results))
	for _, r := range results {
		d := ConfirmResultDTO{SupplierID: r.SupplierID}
		if r.Order != nil {
			po := FromPurchaseOrder(r.Order)
			d.Order = &po
		}
		if r.Err != nil {
			d.Error = r.Err.Error()
		}
		out = append(out, d)
	}
	return out
}
