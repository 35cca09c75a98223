package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/StockPilot-api/internal/domain"
	"github.com/jhoicas/StockPilot-api/internal/domain/entity"
	"github.com/jhoicas/StockPilot-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la actualización del ítem y el
// registro del movimiento se confirmen juntos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		items repository.InventoryItemRepository,
		movements repository.StockMovementRepository,
	) error) error
}

// Rechecker dispara una re-evaluación inmediata de alertas (la expone el
// MonitoringLoop). Umbrales recién cruzados se reflejan sin esperar el
// próximo tick periódico.
type Rechecker interface {
	CheckNow()
}

// AdjustmentInput entrada para aplicar un movimiento de stock.
// Para in/out, Quantity es el delta (> 0). Para adjustment, Quantity es el
// total absoluto resultante (>= 0).
type AdjustmentInput struct {
	ItemID   string
	Type     string // in, out, adjustment
	Quantity int
	Reason   string
	UserID   string
}

// AdjustmentService es la única vía de escritura de current_stock: calcula el
// stock resultante, lo persiste y agrega el movimiento de auditoría en la
// misma transacción.
type AdjustmentService struct {
	txRunner TxRunner
	recheck  Rechecker
}

// NewAdjustmentService construye el servicio. recheck puede ser nil (sin loop
// de monitoreo, por ejemplo en herramientas de carga).
func NewAdjustmentService(txRunner TxRunner, recheck Rechecker) *AdjustmentService {
	return &AdjustmentService{txRunner: txRunner, recheck: recheck}
}

// Apply valida y aplica el movimiento:
//   - in:  newStock = current + quantity
//   - out: newStock = current - quantity; ErrInvalidQuantity si queda negativo
//   - adjustment: newStock = quantity (total absoluto, no delta)
//
// Devuelve el ítem actualizado. Si la actualización del ítem o el movimiento
// fallan, la operación completa falla sin escritura parcial.
func (s *AdjustmentService) Apply(ctx context.Context, in AdjustmentInput) (*entity.InventoryItem, error) {
	if in.ItemID == "" {
		return nil, domain.ErrInvalidInput
	}
	switch in.Type {
	case entity.MovementTypeIn, entity.MovementTypeOut:
		if in.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
	case entity.MovementTypeAdjustment:
		if in.Quantity < 0 {
			return nil, domain.ErrInvalidQuantity
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var updated *entity.InventoryItem

	err := s.txRunner.Run(ctx, func(
		items repository.InventoryItemRepository,
		movements repository.StockMovementRepository,
	) error {
		item, err := items.GetForUpdate(ctx, in.ItemID)
		if err != nil {
			return err
		}

		previous := item.CurrentStock
		var newStock int
		switch in.Type {
		case entity.MovementTypeIn:
			newStock = previous + in.Quantity
		case entity.MovementTypeOut:
			if in.Quantity > previous {
				return domain.ErrInvalidQuantity
			}
			newStock = previous - in.Quantity
		case entity.MovementTypeAdjustment:
			newStock = in.Quantity
		}

		if err := items.UpdateStock(ctx, in.ItemID, newStock); err != nil {
			return fmt.Errorf("%w: actualizar stock: %v", domain.ErrNoPartialUpdate, err)
		}

		delta := newStock - previous
		if delta < 0 {
			delta = -delta
		}
		movement := &entity.StockMovement{
			ID:            uuid.New().String(),
			ItemID:        in.ItemID,
			Type:          in.Type,
			Quantity:      delta,
			PreviousStock: previous,
			NewStock:      newStock,
			Reason:        in.Reason,
			CreatedAt:     now,
			CreatedBy:     in.UserID,
		}
		if err := movements.Create(ctx, movement); err != nil {
			return fmt.Errorf("%w: registrar movimiento: %v", domain.ErrNoPartialUpdate, err)
		}

		item.CurrentStock = newStock
		item.UpdatedAt = now
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.recheck != nil {
		s.recheck.CheckNow()
	}
	return updated, nil
}
