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

	"github.com/fys/fabrica-pinceles-api/internal/application/analytics"
	"github.com/fys/fabrica-pinceles-api/internal/application/auth"
	"github.com/fys/fabrica-pinceles-api/internal/application/fulfillment"
	"github.com/fys/fabrica-pinceles-api/internal/application/inventory"
	"github.com/fys/fabrica-pinceles-api/internal/infrastructure/cache"
	infrapdf "github.com/fys/fabrica-pinceles-api/internal/infrastructure/pdf"
	"github.com/fys/fabrica-pinceles-api/internal/infrastructure/postgres"
	"github.com/fys/fabrica-pinceles-api/internal/jobs"
	httpRouter "github.com/fys/fabrica-pinceles-api/internal/interfaces/http"
	"github.com/fys/fabrica-pinceles-api/pkg/config"
	"github.com/fys/fabrica-pinceles-api/pkg/logger"
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

	catalogRepo := postgres.NewCatalogRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	finishedRepo := postgres.NewFinishedGoodRepository(pool)
	productionRepo := postgres.NewProductionRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	dispatchRepo := postgres.NewDispatchRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	catalogUC := inventory.NewCatalogUseCase(catalogRepo)
	stockUC := inventory.NewStockUseCase(txRunner, catalogRepo, stockRepo, movementRepo, cfg.Policy.ImplicitCreate)
	produceUC := inventory.NewProduceUseCase(txRunner, productionRepo)
	finishedUC := inventory.NewFinishedUseCase(txRunner, finishedRepo)

	noteGen := infrapdf.NewMarotoDispatchNoteGenerator(cfg.App.Name)
	orderUC := fulfillment.NewOrderUseCase(txRunner, orderRepo, stockRepo, dispatchRepo, noteGen)

	// Caché de dashboard opcional: sin REDIS_ADDR la app corre sin caché, y si
	// Redis no responde al arranque también.
	var summaryCache analytics.SummaryCache
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisSummaryCache(ctx, cfg.Redis, log)
		if err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, dashboard sin caché")
		} else {
			summaryCache = redisCache
			defer redisCache.Close()
		}
	}
	dashboardUC := analytics.NewDashboardUseCase(analyticsRepo, summaryCache)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	scheduler, err := jobs.NewScheduler(dashboardUC, cfg.Jobs.LowStockEvery, log)
	if err != nil {
		log.Fatal().Err(err).Msg("scheduler de jobs")
	}
	scheduler.Start()

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
		Title:    "Fábrica de Pinceles API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:   catalogUC,
		StockUC:     stockUC,
		ProduceUC:   produceUC,
		FinishedUC:  finishedUC,
		OrderUC:     orderUC,
		DashboardUC: dashboardUC,
		AuthUC:      authUC,
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
	if err := scheduler.Stop(); err != nil {
		log.Error().Err(err).Msg("apagado del scheduler")
	}

	log.Info().Msg("aplicación detenida")
}
