package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/StockPilot-api/internal/domain"
	"github.com/jhoicas/StockPilot-api/internal/domain/entity"
	"github.com/jhoicas/StockPilot-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de órdenes de compra sobre PostgreSQL.
// CreateHeader y CreateItems deben invocarse con el mismo Querier transaccional
// para que cabecera y líneas queden visibles juntas.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// CreateHeader inserta la cabecera de la orden.
func (r *PurchaseOrderRepo) CreateHeader(ctx context.Context, order *entity.PurchaseOrder) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchase_orders (id, po_number, supplier_id, total_amount, status, order_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		order.ID, order.PONumber, order.SupplierID, order.TotalAmount,
		order.Status, order.OrderDate, order.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("po number %s ya existe: %w", order.PONumber, err)
		}
		return fmt.Errorf("create purchase order: %w", err)
	}
	return nil
}

// CreateItems inserta las líneas de la orden.
func (r *PurchaseOrderRepo) CreateItems(ctx context.Context, items []entity.PurchaseOrderItem) error {
	if len(items) == 0 {
		return domain.ErrInvalidInput
	}
	for _, item := range items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO purchase_order_items (id, purchase_order_id, inventory_item_id, quantity, unit_price, total_price)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			item.ID, item.PurchaseOrderID, item.ItemID,
			item.Quantity, item.UnitPrice, item.TotalPrice,
		)
		if err != nil {
			return fmt.Errorf("create purchase order item: %w", err)
		}
	}
	return nil
}

// List devuelve las órdenes, más reciente primero.
func (r *PurchaseOrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.PurchaseOrder, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, po_number, supplier_id, total_amount, status, order_date, created_at
		FROM purchase_orders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.PurchaseOrder
	for rows.Next() {
		var o entity.PurchaseOrder
		if err := rows.Scan(&o.ID, &o.PONumber, &o.SupplierID, &o.TotalAmount, &o.Status, &o.OrderDate, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		orders = append(orders, &o)
	}
	return orders, rows.Err()
}
