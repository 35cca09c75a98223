package repository

import (
	"context"

	"github.com/jhoicas/StockPilot-api/internal/domain/entity"
)

// InventoryItemRepository define el puerto de lectura/escritura de ítems (DIP).
// InventoryItem es la única fuente de verdad de current_stock: toda mutación
// pasa por UpdateStock dentro de una transacción, nunca por escrituras sueltas.
type InventoryItemRepository interface {
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	// GetUnderThreshold devuelve los ítems con current_stock <= minimum_stock,
	// con el nombre del proveedor resuelto (join a suppliers).
	GetUnderThreshold(ctx context.Context) ([]entity.InventoryItem, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE). Usar dentro de transacciones.
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	UpdateStock(ctx context.Context, id string, newStock int) error
}
