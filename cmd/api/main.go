package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/analytics"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/catalog"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/ledger"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/projection"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/receipt"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/repository"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/infrastructure/docstore"
	infrapdf "github.com/bhuvanux/Sewvee-BMS-sub000/internal/infrastructure/pdf"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/infrastructure/postgres"
	httpRouter "github.com/bhuvanux/Sewvee-BMS-sub000/internal/interfaces/http"
	"github.com/bhuvanux/Sewvee-BMS-sub000/pkg/config"
	"github.com/bhuvanux/Sewvee-BMS-sub000/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Backend).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()

	// Almacén de documentos: PostgreSQL (JSONB + LISTEN/NOTIFY) o memoria para desarrollo.
	var store repository.DocumentStore
	switch cfg.Store.Backend {
	case config.StoreBackendMemory:
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		store = docstore.NewMemoryStore()
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		pgStore := postgres.NewDocumentStore(pool, cfg.Store.NotifyChannel, log)
		defer pgStore.Close()
		store = pgStore
	}

	seedUC := catalog.NewSeedUseCase(store, log)
	live := projection.NewLiveStore(store, seedUC, log)
	defer live.Close()

	// Las sesiones en vivo se abren bajo demanda por petición; se cierran tras LIVE_IDLE_MINUTES sin uso.
	evictCtx, stopEviction := context.WithCancel(ctx)
	defer stopEviction()
	if cfg.Store.LiveIdle > 0 {
		idle := time.Duration(cfg.Store.LiveIdle) * time.Minute
		go live.RunEviction(evictCtx, time.Minute, idle)
	}

	customerUC := ledger.NewCustomerUseCase(store, live, log)
	orderUC := ledger.NewOrderUseCase(store, log)
	paymentUC := ledger.NewPaymentUseCase(store, log)

	// PDF: recibo del pedido
	receiptUC := receipt.NewReceiptUseCase(store, infrapdf.NewMarotoPDFGenerator())

	app := fiber.New(fiber.Config{
		AppName:     cfg.App.Name,
		ReadTimeout: time.Second * 10,
		// Sin WriteTimeout: /api/live/events mantiene la respuesta abierta.
		IdleTimeout: time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Sewvee Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CustomerUC:  customerUC,
		OrderUC:     orderUC,
		PaymentUC:   paymentUC,
		ReceiptUC:   receiptUC,
		DashboardUC: analytics.NewDashboardUseCase(live),
		Live:        live,
		Logger:      log,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
