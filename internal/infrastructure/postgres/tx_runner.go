package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/StockPilot-api/internal/application/reorder"
	"github.com/jhoicas/StockPilot-api/internal/application/stock"
	"github.com/jhoicas/StockPilot-api/internal/domain/repository"
)

// Ensure TxRunner implements stock.TxRunner y reorder.OrderTxRunner.
var _ stock.TxRunner = (*TxRunner)(nil)
var _ reorder.OrderTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos de ítems y movimientos
// atados a la tx y hace Commit o Rollback. La actualización de stock y el
// registro del movimiento quedan visibles juntos o ninguno.
func (r *TxRunner) Run(ctx context.Context, fn func(
	items repository.InventoryItemRepository,
	movements repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInventoryItemRepository(tx), NewStockMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunOrders inicia una transacción con el repo de órdenes de compra: cabecera
// y líneas de una orden se confirman juntas. Cada orden de proveedor usa su
// propia transacción (el lote no es todo-o-nada entre proveedores).
func (r *TxRunner) RunOrders(ctx context.Context, fn func(
	orders repository.PurchaseOrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewPurchaseOrderRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
