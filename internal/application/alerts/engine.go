package alerts

import (
	"github.com/jhoicas/StockPilot-api/internal/domain/entity"
)

// Engine evalúa alertas de stock bajo umbral a partir de un snapshot del
// catálogo. Sin estado ni efectos: el conjunto retenido entre ciclos lo
// administra el MonitoringLoop, no el engine.
type Engine struct{}

// NewEngine construye el engine de alertas.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate devuelve una alerta por cada ítem del snapshot con
// current_stock <= minimum_stock. La severidad es función pura del ítem:
// crítica cuando el stock es cero o cae a la mitad del mínimo o menos,
// low-stock en el resto de los casos (misma regla que InventoryItem.Status).
// Llamar dos veces con el mismo snapshot produce la misma lista.
func (e *Engine) Evaluate(snapshot []entity.InventoryItem) []entity.StockAlert {
	result := make([]entity.StockAlert, 0, len(snapshot))
	for i := range snapshot {
		item := &snapshot[i]
		if !item.UnderThreshold() {
			continue
		}
		severity := entity.SeverityLowStock
		if item.Status() == entity.StatusCritical {
			severity = entity.SeverityCritical
		}
		result = append(result, entity.StockAlert{
			ItemID:       item.ID,
			Name:         item.Name,
			SKU:          item.SKU,
			CurrentStock: item.CurrentStock,
			MinimumStock: item.MinimumStock,
			Severity:     severity,
			SupplierName: item.SupplierName,
		})
	}
	return result
}

// DiffNew devuelve las alertas de current cuyo ItemID no estaba en previous.
// Compara por identidad, no por valor: un cambio de severidad entre ciclos no
// cuenta como alerta nueva; solo la primera aparición. Un ítem que salió del
// conjunto y reaparece vuelve a notificarse (comportamiento intencional).
// El orden de la lista devuelta no está especificado.
func DiffNew(previous map[string]struct{}, current []entity.StockAlert) []entity.StockAlert {
	var fresh []entity.StockAlert
	for _, alert := range current {
		if _, seen := previous[alert.ItemID]; !seen {
			fresh = append(fresh, alert)
		}
	}
	return fresh
}

// IDSet devuelve el conjunto de ItemIDs de una lista de alertas, para usarse
// como previous en el próximo DiffNew.
func IDSet(alerts []entity.StockAlert) map[string]struct{} {
	ids := make(map[string]struct{}, len(alerts))
	for _, alert := range alerts {
		ids[alert.ItemID] = struct{}{}
	}
	return ids
}
