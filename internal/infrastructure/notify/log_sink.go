package notify

import (
	"context"

	"github.com/jhoicas/StockPilot-api/internal/domain/entity"
	"github.com/jhoicas/StockPilot-api/pkg/logger"
)

// LogSink publica las alertas nuevas en el log estructurado. Es el sink por
// defecto del proceso: la UI (fuera de este repo) consume el conjunto actual
// vía GET /api/alerts.
type LogSink struct {
	log *logger.Logger
}

// NewLogSink construye el sink.
func NewLogSink(log *logger.Logger) *LogSink {
	return &LogSink{log: log}
}

// NotifyNewAlerts emite un registro por alerta nueva: warn para low-stock,
// error para critical.
func (s *LogSink) NotifyNewAlerts(_ context.Context, alerts []entity.StockAlert) {
	for _, a := range alerts {
		evt := s.log.Warn()
		if a.Severity == entity.SeverityCritical {
			evt = s.log.Error()
		}
		evt.
			Str("item_id", a.ItemID).
			Str("sku", a.SKU).
			Str("severity", a.Severity).
			Int("current_stock", a.CurrentStock).
			Int("minimum_stock", a.MinimumStock).
			Str("supplier", a.SupplierName).
			Msgf("alerta de stock: %s (%s) con %d unidades, mínimo %d", a.Name, a.SKU, a.CurrentStock, a.MinimumStock)
	}
}
