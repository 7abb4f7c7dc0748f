package inventory

import (
	"context"

	"github.com/fys/fabrica-pinceles-api/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Catalog    repository.CatalogRepository
	Stock      repository.StockRepository
	Movements  repository.MovementRepository
	Finished   repository.FinishedGoodRepository
	Production repository.ProductionRepository
	Orders     repository.OrderRepository
	Dispatches repository.DispatchRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// inventario: si fn devuelve error, todo se revierte.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx TxRepos) error) error
}
