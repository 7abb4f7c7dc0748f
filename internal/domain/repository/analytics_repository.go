package repository

import (
	"context"
	"time"

	"github.com/fys/fabrica-pinceles-api/internal/domain/entity"
)

// TypeTotal es el stock total de un tipo de materia prima.
type TypeTotal struct {
	Tipo  string `json:"tipo"`
	Total int    `json:"total"`
}

// AnalyticsRepository define consultas read-only de agregados para el dashboard.
type AnalyticsRepository interface {
	TotalRawStock(ctx context.Context) (int, error)
	TotalFinishedStock(ctx context.Context) (int, error)
	OpenOrders(ctx context.Context) (int, error)
	// ProducedSince suma las cantidades producidas desde la fecha dada.
	ProducedSince(ctx context.Context, desde time.Time) (int, error)
	StockTotalsByType(ctx context.Context) ([]TypeTotal, error)
	// LowStockLines devuelve las filas con stock_actual < stock_minimo.
	LowStockLines(ctx context.Context) ([]*entity.StockLine, error)
}
