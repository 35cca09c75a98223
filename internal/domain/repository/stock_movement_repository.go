package repository

import (
	"context"

	"github.com/jhoicas/StockPilot-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del historial de
// movimientos (append-only). Lo escribe el servicio de ajustes; lo leen los
// consumidores de reportes.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.StockMovement, error)
}
