package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIn         = "in"         // entrada
	MovementTypeOut        = "out"        // salida
	MovementTypeAdjustment = "adjustment" // ajuste a un total absoluto
)

// StockMovement registra un movimiento de stock de un ítem. Inmutable una
// vez creado: historial de auditoría append-only que acompaña cada cambio
// de CurrentStock.
type StockMovement struct {
	ID            string
	ItemID        string
	Type          string // in, out, adjustment
	Quantity      int    // delta absoluto aplicado entre PreviousStock y NewStock
	PreviousStock int
	NewStock      int
	Reason        string
	CreatedAt     time.Time
	CreatedBy     string // UserID del token del servicio de auth externo
}
