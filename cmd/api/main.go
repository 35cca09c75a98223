package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/StockPilot-api/internal/application/alerts"
	"github.com/jhoicas/StockPilot-api/internal/application/monitor"
	"github.com/jhoicas/StockPilot-api/internal/application/reorder"
	"github.com/jhoicas/StockPilot-api/internal/application/stock"
	"github.com/jhoicas/StockPilot-api/internal/infrastructure/notify"
	"github.com/jhoicas/StockPilot-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/StockPilot-api/internal/interfaces/http"
	"github.com/jhoicas/StockPilot-api/pkg/config"
	"github.com/jhoicas/StockPilot-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewInventoryItemRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	orderRepo := postgres.NewPurchaseOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	changeFeed := postgres.NewItemChangeListener(pool, log)

	// Singleton de monitoreo a nivel de proceso: se arranca aquí y se detiene
	// en el shutdown; nada lo (re)arranca implícitamente.
	engine := alerts.NewEngine()
	alertSink := notify.NewLogSink(log)
	monitorLoop := monitor.NewLoop(engine, itemRepo, changeFeed, alertSink, log, monitor.Config{
		Interval: cfg.Monitor.Interval(),
		Debounce: cfg.Monitor.Debounce(),
	})
	if err := monitorLoop.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("arrancar loop de monitoreo")
	}

	adjustmentSvc := stock.NewAdjustmentService(txRunner, monitorLoop)
	planner := reorder.NewPlanner(txRunner)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "StockPilot API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Monitor:     monitorLoop,
		Adjustments: adjustmentSvc,
		Planner:     planner,
		Items:       itemRepo,
		Movements:   movementRepo,
		Orders:      orderRepo,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	// Primero el loop: tras Stop no corre ningún ciclo más.
	monitorLoop.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
