package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/StockPilot-api/internal/domain"
	"github.com/jhoicas/StockPilot-api/internal/domain/entity"
	"github.com/jhoicas/StockPilot-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo implementación de InventoryItemRepository sobre PostgreSQL
// (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

const itemSelect = `
	SELECT i.id, i.name, i.sku,
	       COALESCE(i.category_id::text, ''), COALESCE(i.supplier_id::text, ''),
	       COALESCE(s.name, ''),
	       i.current_stock, i.minimum_stock, i.unit_price, i.updated_at
	FROM inventory_items i
	LEFT JOIN suppliers s ON s.id = i.supplier_id`

func scanItem(row pgx.Row, item *entity.InventoryItem) error {
	return row.Scan(
		&item.ID, &item.Name, &item.SKU,
		&item.CategoryID, &item.SupplierID, &item.SupplierName,
		&item.CurrentStock, &item.MinimumStock, &item.UnitPrice, &item.UpdatedAt,
	)
}

// GetByID obtiene un ítem con el nombre de su proveedor resuelto.
func (r *InventoryItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := scanItem(r.q.QueryRow(ctx, itemSelect+` WHERE i.id = $1`, id), &item)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &item, nil
}

// GetUnderThreshold devuelve los ítems con current_stock <= minimum_stock.
// Un fallo se reporta como ErrRepositoryUnavailable: el loop de monitoreo
// conserva su conjunto anterior y reintenta en el próximo tick.
func (r *InventoryItemRepo) GetUnderThreshold(ctx context.Context) ([]entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx, itemSelect+`
		WHERE i.current_stock <= i.minimum_stock
		ORDER BY i.name`)
	if err != nil {
		return nil, fmt.Errorf("%w: under threshold: %v", domain.ErrRepositoryUnavailable, err)
	}
	defer rows.Close()

	var items []entity.InventoryItem
	for rows.Next() {
		var item entity.InventoryItem
		if err := scanItem(rows, &item); err != nil {
			return nil, fmt.Errorf("%w: scan item: %v", domain.ErrRepositoryUnavailable, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: under threshold: %v", domain.ErrRepositoryUnavailable, err)
	}
	return items, nil
}

// GetForUpdate obtiene el ítem y bloquea la fila (SELECT FOR UPDATE).
// Usar dentro de una transacción del TxRunner.
func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	var item entity.InventoryItem
	err := scanItem(r.q.QueryRow(ctx, itemSelect+` WHERE i.id = $1 FOR UPDATE OF i`, id), &item)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get item for update: %w", err)
	}
	return &item, nil
}

// UpdateStock persiste el nuevo current_stock del ítem.
func (r *InventoryItemRepo) UpdateStock(ctx context.Context, id string, newStock int) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE inventory_items
		SET current_stock = $2, updated_at = now()
		WHERE id = $1`, id, newStock)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
