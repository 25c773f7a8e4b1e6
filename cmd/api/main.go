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
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Farmacia-api/internal/application/analytics"
	"github.com/jhoicas/Farmacia-api/internal/application/auth"
	appinv "github.com/jhoicas/Farmacia-api/internal/application/inventory"
	"github.com/jhoicas/Farmacia-api/internal/application/usecase"
	"github.com/jhoicas/Farmacia-api/internal/domain/inventory"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/Farmacia-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Farmacia-api/internal/interfaces/http"
	"github.com/jhoicas/Farmacia-api/pkg/config"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.DB.AutoMigrate {
		version, err := postgres.MigrateUp(cfg.DB.MigrationURL())
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Uint("version", version).Msg("migraciones aplicadas")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	medicineRepo := postgres.NewMedicineRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	txnRepo := postgres.NewTransactionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// El ledger en memoria se reconstruye desde los lotes persistidos
	ledger := inventory.NewStockLedger()
	loaded, err := appinv.LoadLedger(ctx, batchRepo, ledger)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar lotes en el ledger")
	}
	log.Info().
		Int("batches", loaded).
		Int("medicines", len(ledger.ProductIDs())).
		Msg("ledger de stock cargado")

	var notifier appinv.StockNotifier
	var stockEvents appinv.StockEventSubscriber
	if cfg.Redis.Enabled() {
		redisNotifier, err := notify.NewRedisStockNotifier(ctx, &redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, notify.WithChannel(cfg.Redis.Channel), notify.WithLogger(log.Zerolog()))
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		defer redisNotifier.Close()
		notifier = redisNotifier
		stockEvents = redisNotifier
		log.Info().Str("channel", redisNotifier.Channel()).Msg("eventos de stock por Redis")
	} else {
		notifier = notify.NewLogStockNotifier(log.Zerolog())
		log.Warn().Msg("REDIS_ADDR vacío: los eventos de stock solo se registran en el log")
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	medicineUC := usecase.NewMedicineUseCase(medicineRepo)
	transactionUC := usecase.NewTransactionUseCase(txnRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	stockUC := appinv.NewStockUseCase(ledger, txRunner, medicineRepo, notifier)
	orderUC := usecase.NewOrderUseCase(stockUC, txnRepo, medicineRepo)

	// PDF: reporte de vencimientos
	pdfGenerator := infrapdf.NewMarotoExpiryReportGenerator(cfg.App.Name)
	expiryUC := appinv.NewExpiryUseCase(ledger, medicineRepo, pdfGenerator,
		cfg.Inventory.CriticalDays, cfg.Inventory.WarningDays)

	dashboardUC := analytics.NewDashboardUseCase(ledger, medicineRepo,
		cfg.Inventory.LowStockThreshold, cfg.Inventory.CriticalDays)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout: time.Second * 10,
		// Sin WriteTimeout: /api/events/stock mantiene la respuesta abierta.
		IdleTimeout: time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Farmacia API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		MedicineUC:    medicineUC,
		StockUC:       stockUC,
		ExpiryUC:      expiryUC,
		TransactionUC: transactionUC,
		OrderUC:       orderUC,
		UserUC:        userUC,
		DashboardUC:   dashboardUC,
		StockEvents:   stockEvents,
		JWTSecret:     cfg.JWT.Secret,
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
