package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/StockPilot-api/internal/application/alerts"
	"github.com/jhoicas/StockPilot-api/internal/domain/entity"
	"github.com/jhoicas/StockPilot-api/internal/domain/repository"
	"github.com/jhoicas/StockPilot-api/pkg/logger"
)

// Valores por defecto del loop de monitoreo.
const (
	DefaultInterval = 30 * time.Second
	DefaultDebounce = time.Second
)

// Config opciones del loop de monitoreo.
type Config struct {
	Interval time.Duration // período entre ciclos (default 30s)
	Debounce time.Duration // ventana para colapsar ráfagas de notificaciones (default 1s)
}

// Loop ejecuta el ciclo de monitoreo de stock: snapshot bajo umbral →
// evaluación → diff contra el conjunto retenido → notificación de alertas
// nuevas. Una sola goroutine ejecuta los ciclos, de modo que nunca hay dos
// evaluaciones en vuelo; el conjunto retenido pertenece en exclusiva a esta
// instancia. Se crea una única instancia al arrancar el proceso y se detiene
// en el shutdown: nunca se (re)arranca implícitamente.
type Loop struct {
	engine   *alerts.Engine
	items    repository.InventoryItemRepository
	feed     repository.ItemChangeFeed
	sink     AlertSink
	log      *logger.Logger
	interval time.Duration
	debounce time.Duration

	mu      sync.RWMutex
	current []entity.StockAlert // conjunto completo del último ciclo exitoso
	prevIDs map[string]struct{} // ids del conjunto retenido, para DiffNew

	notifyCh    chan struct{} // señal del feed de cambios (colapsada a 1)
	checkCh     chan struct{} // pedido de re-evaluación inmediata (colapsado a 1)
	cancel      context.CancelFunc
	unsubscribe func()
	done        chan struct{}
	started     bool
}

// NewLoop construye el loop de monitoreo. Config en cero usa los defaults.
func NewLoop(
	engine *alerts.Engine,
	items repository.InventoryItemRepository,
	feed repository.ItemChangeFeed,
	sink AlertSink,
	log *logger.Logger,
	cfg Config,
) *Loop {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	return &Loop{
		engine:   engine,
		items:    items,
		feed:     feed,
		sink:     sink,
		log:      log,
		interval: cfg.Interval,
		debounce: cfg.Debounce,
		prevIDs:  map[string]struct{}{},
		notifyCh: make(chan struct{}, 1),
		checkCh:  make(chan struct{}, 1),
	}
}

// Start ejecuta un ciclo inmediato, agenda ciclos periódicos y se suscribe al
// feed de cambios. Llamarlo sobre un loop ya arrancado no tiene efecto.
func (l *Loop) Start(ctx context.Context) error {
	l.mu.Lock()
	if l.started {
		l.mu.Unlock()
		return nil
	}
	runCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.done = make(chan struct{})
	l.started = true
	l.mu.Unlock()

	unsubscribe, err := l.feed.Subscribe(runCtx, l.onItemChange)
	if err != nil {
		l.mu.Lock()
		l.started = false
		l.cancel = nil
		l.mu.Unlock()
		cancel()
		return err
	}
	l.mu.Lock()
	l.unsubscribe = unsubscribe
	l.mu.Unlock()

	go l.run(runCtx)
	return nil
}

// Stop es idempotente: tras retornar no se ejecuta ningún ciclo más y la
// suscripción al feed queda liberada. Un ciclo que ya pasó su fetch descarta
// el resultado sin mutar el conjunto retenido.
func (l *Loop) Stop() {
	l.mu.Lock()
	if !l.started {
		l.mu.Unlock()
		return
	}
	cancel := l.cancel
	unsubscribe := l.unsubscribe
	done := l.done
	l.started = false
	l.cancel = nil
	l.unsubscribe = nil
	l.mu.Unlock()

	cancel()
	if unsubscribe != nil {
		unsubscribe()
	}
	<-done
}

// CheckNow pide una re-evaluación inmediata sin esperar el próximo tick
// (usado por el servicio de ajustes tras una escritura exitosa). No bloquea:
// pedidos simultáneos colapsan en uno.
func (l *Loop) CheckNow() {
	select {
	case l.checkCh <- struct{}{}:
	default:
	}
}

// CurrentAlerts devuelve una copia del conjunto de alertas del último ciclo.
func (l *Loop) CurrentAlerts() []entity.StockAlert {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]entity.StockAlert, len(l.current))
	copy(out, l.current)
	return out
}

// onItemChange recibe cada notificación del feed; el loop aplica la ventana
// de debounce para que una ráfaga de escrituras produzca un solo ciclo.
func (l *Loop) onItemChange() {
	select {
	case l.notifyCh <- struct{}{}:
	default:
	}
}

func (l *Loop) run(ctx context.Context) {
	defer close(l.done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	// Timer de debounce creado detenido; se arma con cada notificación.
	debounce := time.NewTimer(l.debounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	// Ciclo inmediato al arrancar.
	l.cycle(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.cycle(ctx)
		case <-l.checkCh:
			l.cycle(ctx)
		case <-l.notifyCh:
			// Re-armar la ventana: ráfagas de cambios colapsan en un ciclo.
			if !debounce.Stop() {
				select {
				case <-debounce.C:
				default:
				}
			}
			debounce.Reset(l.debounce)
			continue
		case <-debounce.C:
			l.cycle(ctx)
		}

		// Ticks y pedidos inmediatos llegados mientras corría el ciclo se
		// descartan, no se encolan. Una notificación pendiente del feed sí
		// conserva su ventana de debounce.
		l.drainStale(ticker)
	}
}

func (l *Loop) drainStale(ticker *time.Ticker) {
	for {
		select {
		case <-l.checkCh:
		case <-ticker.C:
		default:
			return
		}
	}
}

// cycle ejecuta fetch → evaluate → diff → notify → reemplazo del conjunto
// retenido. Ante un repositorio no disponible conserva el conjunto anterior
// (no borra alertas por un error transitorio) y reintenta en el próximo tick.
func (l *Loop) cycle(ctx context.Context) {
	snapshot, err := l.items.GetUnderThreshold(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		cycleErrorsTotal.Inc()
		l.log.Warn().Err(err).Msg("ciclo de monitoreo: snapshot no disponible, se conserva el conjunto anterior")
		return
	}
	if ctx.Err() != nil {
		// Detenido durante el fetch: descartar sin mutar estado.
		return
	}

	current := l.engine.Evaluate(snapshot)

	l.mu.Lock()
	fresh := alerts.DiffNew(l.prevIDs, current)
	l.current = current
	l.prevIDs = alerts.IDSet(current)
	l.mu.Unlock()

	cyclesTotal.Inc()
	activeAlerts.Set(float64(len(current)))

	if len(fresh) > 0 {
		newAlertsTotal.Add(float64(len(fresh)))
		l.sink.NotifyNewAlerts(ctx, fresh)
	}
}
