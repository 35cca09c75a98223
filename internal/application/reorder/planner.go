package reorder

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/StockPilot-api/internal/domain"
	"github.com/jhoicas/StockPilot-api/internal/domain/entity"
	"github.com/jhoicas/StockPilot-api/internal/domain/repository"
)

// reorderTargetMultiple: la orden repone hasta este múltiplo del stock mínimo.
// Constante de política fija, igual que en la consola original.
const reorderTargetMultiple = 2

// Line línea sugerida de un borrador de orden de compra.
type Line struct {
	ItemID            string
	Name              string
	SKU               string
	SuggestedQuantity int
	UnitPrice         decimal.Decimal // unidades menores de moneda
	LineTotal         decimal.Decimal
}

// Draft borrador de orden de compra por proveedor. Transitorio: recién al
// confirmarse se convierte en PurchaseOrder + líneas persistidas.
type Draft struct {
	SupplierID   string
	SupplierName string
	Lines        []Line
	TotalAmount  decimal.Decimal
}

// ConfirmResult resultado por proveedor de una confirmación en lote.
type ConfirmResult struct {
	SupplierID string
	Order      *entity.PurchaseOrder
	Err        error
}

// OrderTxRunner ejecuta una función con el repositorio de órdenes atado a una
// transacción: cabecera y líneas se confirman juntas o ninguna.
type OrderTxRunner interface {
	RunOrders(ctx context.Context, fn func(orders repository.PurchaseOrderRepository) error) error
}

// Planner agrupa ítems bajo umbral por proveedor y calcula borradores de
// órdenes de compra con cantidades sugeridas.
type Planner struct {
	txRunner OrderTxRunner
}

// NewPlanner construye el planner.
func NewPlanner(txRunner OrderTxRunner) *Planner {
	return &Planner{txRunner: txRunner}
}

// SuggestedQuantity devuelve max(minimum*2 - current, minimum): la orden
// siempre repone hasta al menos el doble del mínimo y nunca sugiere menos que
// el mínimo mismo. Con minimum = 0 el resultado puede ser 0; esas líneas se
// excluyen del borrador.
func SuggestedQuantity(currentStock, minimumStock int) int {
	qty := minimumStock*reorderTargetMultiple - currentStock
	if qty < minimumStock {
		qty = minimumStock
	}
	return qty
}

// Plan filtra el catálogo a los ids seleccionados que siguen bajo umbral,
// agrupa por proveedor y arma un borrador por proveedor. Los proveedores
// conservan el orden de primera aparición en el catálogo.
func (p *Planner) Plan(selected []string, catalog []entity.InventoryItem) []Draft {
	selectedSet := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		selectedSet[id] = struct{}{}
	}

	bySupplier := make(map[string]int) // supplierID -> índice en drafts
	var drafts []Draft

	for i := range catalog {
		item := &catalog[i]
		if _, ok := selectedSet[item.ID]; !ok {
			continue
		}
		// Un ítem repuesto entre la selección y el plan ya no se ordena.
		if !item.UnderThreshold() {
			continue
		}
		qty := SuggestedQuantity(item.CurrentStock, item.MinimumStock)
		if qty <= 0 {
			continue
		}

		idx, ok := bySupplier[item.SupplierID]
		if !ok {
			idx = len(drafts)
			bySupplier[item.SupplierID] = idx
			drafts = append(drafts, Draft{
				SupplierID:   item.SupplierID,
				SupplierName: item.SupplierName,
				TotalAmount:  decimal.Zero,
			})
		}

		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(qty)))
		drafts[idx].Lines = append(drafts[idx].Lines, Line{
			ItemID:            item.ID,
			Name:              item.Name,
			SKU:               item.SKU,
			SuggestedQuantity: qty,
			UnitPrice:         item.UnitPrice,
			LineTotal:         lineTotal,
		})
		drafts[idx].TotalAmount = drafts[idx].TotalAmount.Add(lineTotal)
	}

	return drafts
}

// GeneratePONumber genera un identificador con fecha y sufijo aleatorio de
// tres dígitos para desambiguar: PO-YYYYMMDD-NNN.
func GeneratePONumber(t time.Time) string {
	return fmt.Sprintf("PO-%s-%03d", t.Format("20060102"), rand.Intn(1000))
}

// Confirm persiste la cabecera y las líneas de un borrador en una sola
// transacción: todo visible junto o nada.
func (p *Planner) Confirm(ctx context.Context, draft Draft) (*entity.PurchaseOrder, error) {
	if len(draft.Lines) == 0 || draft.SupplierID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	order := &entity.PurchaseOrder{
		ID:          uuid.New().String(),
		PONumber:    GeneratePONumber(now),
		SupplierID:  draft.SupplierID,
		TotalAmount: draft.TotalAmount,
		Status:      entity.POStatusPending,
		OrderDate:   now,
		CreatedAt:   now,
	}

	err := p.txRunner.RunOrders(ctx, func(orders repository.PurchaseOrderRepository) error {
		if err := orders.CreateHeader(ctx, order); err != nil {
			return err
		}
		items := make([]entity.PurchaseOrderItem, 0, len(draft.Lines))
		for _, line := range draft.Lines {
			items = append(items, entity.PurchaseOrderItem{
				ID:              uuid.New().String(),
				PurchaseOrderID: order.ID,
				ItemID:          line.ItemID,
				Quantity:        line.SuggestedQuantity,
				UnitPrice:       line.UnitPrice,
				TotalPrice:      line.LineTotal,
			})
		}
		return orders.CreateItems(ctx, items)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ConfirmAll confirma cada borrador en su propia transacción: la orden de un
// proveedor que falla no revierte las ya confirmadas de otros. El caller
// recibe la lista de resultados por proveedor, no un error agregado, y puede
// reintentar solo el subconjunto fallido.
func (p *Planner) ConfirmAll(ctx context.Context, drafts []Draft) []ConfirmResult {
	results := make([]ConfirmResult, 0, len(drafts))
	for _, draft := range drafts {
		order, err := p.Confirm(ctx, draft)
		results = append(results, ConfirmResult{
			SupplierID: draft.SupplierID,
			Order:      order,
			Err:        err,
		})
	}
	return results
}
