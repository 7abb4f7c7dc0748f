package repository

import (
	"context"
	"time"

	"github.com/fys/fabrica-pinceles-api/internal/domain/entity"
)

// ProductionFilter filtra el historial de producción.
type ProductionFilter struct {
	Desde        *time.Time
	Hasta        *time.Time
	TipoProducto string
	Limit        int
	Offset       int
}

// ProductionRepository define el puerto del historial de producción. Append-only.
type ProductionRepository interface {
	Append(ctx context.Context, p *entity.ProductionRecord) error
	List(ctx context.Context, f ProductionFilter) ([]*entity.ProductionRecord, error)
}
