package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/StockPilot-api/internal/domain/repository"
	"github.com/jhoicas/StockPilot-api/pkg/logger"
)

// Canal NOTIFY disparado por trigger ante insert/update/delete en
// inventory_items (equivalente al canal realtime del backend gestionado).
const itemChangeChannel = "inventory_items_changed"

var _ repository.ItemChangeFeed = (*ItemChangeListener)(nil)

// ItemChangeListener implementa ItemChangeFeed con LISTEN/NOTIFY de
// PostgreSQL sobre una conexión dedicada del pool.
type ItemChangeListener struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewItemChangeListener construye el listener.
func NewItemChangeListener(pool *pgxpool.Pool, log *logger.Logger) *ItemChangeListener {
	return &ItemChangeListener{pool: pool, log: log}
}

// Subscribe toma una conexión dedicada, ejecuta LISTEN y despacha handler por
// cada NOTIFY. La función devuelta libera la suscripción y espera a que la
// goroutine de escucha termine.
func (l *ItemChangeListener) Subscribe(ctx context.Context, handler func()) (func(), error) {
	subCtx, cancel := context.WithCancel(ctx)

	conn, err := l.pool.Acquire(subCtx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("acquire listen conn: %w", err)
	}
	if _, err := conn.Exec(subCtx, "LISTEN "+itemChangeChannel); err != nil {
		conn.Release()
		cancel()
		return nil, fmt.Errorf("listen %s: %w", itemChangeChannel, err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer conn.Release()
		for {
			if _, err := conn.Conn().WaitForNotification(subCtx); err != nil {
				if subCtx.Err() != nil {
					return
				}
				l.log.Warn().Err(err).Msg("feed de cambios: conexión de escucha perdida")
				return
			}
			handler()
		}
	}()

	return func() {
		cancel()
		<-done
	}, nil
}
