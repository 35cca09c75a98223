package repository

import (
	"context"

	"github.com/jhoicas/StockPilot-api/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia de órdenes de compra.
// CreateHeader y CreateItems se invocan dentro de una misma transacción:
// cabecera y líneas quedan visibles juntas o ninguna.
type PurchaseOrderRepository interface {
	CreateHeader(ctx context.Context, order *entity.PurchaseOrder) error
	CreateItems(ctx context.Context, items []entity.PurchaseOrderItem) error
	List(ctx context.Context, limit, offset int) ([]*entity.PurchaseOrder, error)
}
