package entity

// Severidades de una alerta de stock.
const (
	SeverityLowStock = "low-stock"
	SeverityCritical = "critical"
)

// StockAlert es una vista derivada de un ítem bajo umbral. No se persiste:
// se recalcula en cada ciclo de monitoreo y se compara por ItemID contra el
// ciclo anterior para detectar alertas nuevas.
type StockAlert struct {
	ItemID       string
	Name         string
	SKU          string
	CurrentStock int
	MinimumStock int
	Severity     string
	SupplierName string
}
