package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados derivados de un ítem según su stock actual vs el mínimo.
const (
	StatusInStock  = "in-stock"
	StatusLowStock = "low-stock"
	StatusCritical = "critical"
)

// InventoryItem representa un ítem del catálogo de inventario.
// CurrentStock es la única fuente de verdad del stock del ítem; el estado
// nunca es autoritativo por sí mismo, se recalcula en lectura con Status().
type InventoryItem struct {
	ID           string
	Name         string
	SKU          string // código único dentro del catálogo
	CategoryID   string
	SupplierID   string
	SupplierName string // denormalizado en lecturas (join a suppliers)
	CurrentStock int
	MinimumStock int
	UnitPrice    decimal.Decimal // unidades menores de moneda (centavos)
	UpdatedAt    time.Time
}

// Status devuelve el estado derivado del ítem: función pura de
// CurrentStock vs MinimumStock. Crítico si el stock es cero o cae a la
// mitad del mínimo o menos (current*2 <= minimum evita aritmética flotante).
func (i *InventoryItem) Status() string {
	switch {
	case i.CurrentStock == 0 || i.CurrentStock*2 <= i.MinimumStock:
		return StatusCritical
	case i.CurrentStock <= i.MinimumStock:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// UnderThreshold indica si el ítem está en o por debajo de su stock mínimo.
func (i *InventoryItem) UnderThreshold() bool {
	return i.CurrentStock <= i.MinimumStock
}
