package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/fys/fabrica-pinceles-api/internal/domain/entity"
	"github.com/fys/fabrica-pinceles-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas read-only de agregados para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica. Pasar pool o tx (Querier).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

func (r *AnalyticsRepo) scalarInt(ctx context.Context, query string, args ...any) (int, error) {
	var v int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&v); err != nil {
		return 0, err
	}
	return v, nil
}

// TotalRawStock suma el stock de todas las filas de materia prima.
func (r *AnalyticsRepo) TotalRawStock(ctx context.Context) (int, error) {
	v, err := r.scalarInt(ctx, `SELECT COALESCE(SUM(stock_actual), 0) FROM stock_mp`)
	if err != nil {
		return 0, fmt.Errorf("total stock mp: %w", err)
	}
	return v, nil
}

// TotalFinishedStock suma el stock de producto terminado.
func (r *AnalyticsRepo) TotalFinishedStock(ctx context.Context) (int, error) {
	v, err := r.scalarInt(ctx, `SELECT COALESCE(SUM(stock_actual), 0) FROM stock_terminados`)
	if err != nil {
		return 0, fmt.Errorf("total terminados: %w", err)
	}
	return v, nil
}

// OpenOrders cuenta los pedidos en estado activo.
func (r *AnalyticsRepo) OpenOrders(ctx context.Context) (int, error) {
	v, err := r.scalarInt(ctx,
		`SELECT COUNT(*) FROM pedidos WHERE estado IN ('pendiente', 'confirmado', 'en_produccion')`)
	if err != nil {
		return 0, fmt.Errorf("pedidos abiertos: %w", err)
	}
	return v, nil
}

// ProducedSince suma las cantidades producidas desde la fecha dada.
func (r *AnalyticsRepo) ProducedSince(ctx context.Context, desde time.Time) (int, error) {
	v, err := r.scalarInt(ctx,
		`SELECT COALESCE(SUM(cantidad), 0) FROM produccion WHERE fecha >= $1`, desde)
	if err != nil {
		return 0, fmt.Errorf("produccion reciente: %w", err)
	}
	return v, nil
}

// StockTotalsByType agrega el stock de materia prima por tipo.
func (r *AnalyticsRepo) StockTotalsByType(ctx context.Context) ([]repository.TypeTotal, error) {
	rows, err := r.q.Query(ctx,
		`SELECT tipo, COALESCE(SUM(stock_actual), 0) FROM stock_mp GROUP BY tipo ORDER BY tipo`)
	if err != nil {
		return nil, fmt.Errorf("stock por tipo: %w", err)
	}
	defer rows.Close()
	var totals []repository.TypeTotal
	for rows.Next() {
		var t repository.TypeTotal
		if err := rows.Scan(&t.Tipo, &t.Total); err != nil {
			return nil, fmt.Errorf("scan stock por tipo: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// LowStockLines devuelve las filas con stock_actual < stock_minimo.
func (r *AnalyticsRepo) LowStockLines(ctx context.Context) ([]*entity.StockLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, tipo, variante, stock_minimo, stock_actual, ultima_entrada, proveedor_mas_frecuente
		FROM stock_mp WHERE stock_actual < stock_minimo ORDER BY tipo, variante`)
	if err != nil {
		return nil, fmt.Errorf("stock bajo minimo: %w", err)
	}
	return scanStockRows(rows)
}
