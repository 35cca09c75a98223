package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/StockPilot-api/internal/domain/entity"
	"github.com/jhoicas/StockPilot-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del historial de movimientos sobre
// PostgreSQL (usable con pool o tx). Tabla append-only: solo INSERT y SELECT.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento de stock.
func (r *StockMovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	createdBy := (*string)(nil)
	if movement.CreatedBy != "" {
		createdBy = &movement.CreatedBy
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_movements
			(id, inventory_item_id, movement_type, quantity, previous_stock, new_stock, reason, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9)`,
		movement.ID, movement.ItemID, movement.Type, movement.Quantity,
		movement.PreviousStock, movement.NewStock, movement.Reason,
		movement.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// ListByItem devuelve el historial de un ítem, más reciente primero.
func (r *StockMovementRepo) ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, inventory_item_id, movement_type, quantity, previous_stock,
		       new_stock, COALESCE(reason, ''), created_at, COALESCE(created_by::text, '')
		FROM stock_movements
		WHERE inventory_item_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var movements []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.ItemID, &m.Type, &m.Quantity, &m.PreviousStock,
			&m.NewStock, &m.Reason, &m.CreatedAt, &m.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		movements = append(movements, &m)
	}
	return movements, rows.Err()
}
