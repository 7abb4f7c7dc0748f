// Siembra el catálogo estándar de materias primas (upsert-merge, idempotente).
package main

import (
	"context"

	"github.com/fys/fabrica-pinceles-api/internal/application/inventory"
	"github.com/fys/fabrica-pinceles-api/internal/infrastructure/postgres"
	"github.com/fys/fabrica-pinceles-api/pkg/config"
	"github.com/fys/fabrica-pinceles-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	catalogUC := inventory.NewCatalogUseCase(postgres.NewCatalogRepository(pool))
	applied, err := catalogUC.Seed(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("seed del catálogo")
	}
	log.Info().Int("filas_aplicadas", applied).Msg("catálogo sembrado")
}
