package monitor

import (
	"context"

	"github.com/jhoicas/StockPilot-api/internal/domain/entity"
)

// AlertSink consume las alertas nuevas de cada ciclo (toast/badge de la UI,
// log estructurado, etc.). No debe bloquear más allá de lo razonable: se
// invoca desde la goroutine del loop.
type AlertSink interface {
	NotifyNewAlerts(ctx context.Context, alerts []entity.StockAlert)
}
