package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cyclesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockpilot_monitor_cycles_total",
		Help: "Ciclos de evaluación de stock completados.",
	})
	cycleErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockpilot_monitor_cycle_errors_total",
		Help: "Ciclos fallidos por repositorio no disponible (se reintenta en el próximo tick).",
	})
	newAlertsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stockpilot_monitor_new_alerts_total",
		Help: "Alertas nuevas emitidas hacia el sink.",
	})
	activeAlerts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "stockpilot_monitor_active_alerts",
		Help: "Ítems actualmente bajo umbral según el último ciclo.",
	})
)
