// Package analytics contiene los casos de uso de reportes y el resumen del
// dashboard de planta.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/fys/fabrica-pinceles-api/internal/application/dto"
	"github.com/fys/fabrica-pinceles-api/internal/domain/repository"
)

// producedWindow ventana del KPI de producción reciente.
const producedWindow = 7 * 24 * time.Hour

// SummaryCache cachea el resumen del dashboard. Una implementación nil-safe
// permite correr sin Redis.
type SummaryCache interface {
	Get(ctx context.Context) (*dto.DashboardSummaryDTO, bool)
	Set(ctx context.Context, summary *dto.DashboardSummaryDTO)
}

// DashboardUseCase genera los KPIs del dashboard de planta.
//
// Fuente de datos: AnalyticsRepository (consultas read-only de agregados).
// No toca las tablas fila a fila; delega todo en el repositorio.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	cache         SummaryCache
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, cache SummaryCache) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, cache: cache}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cinco consultas en paralelo:
//  1. TotalRawStock       → StockMPTotal
//  2. TotalFinishedStock  → StockTerminados
//  3. OpenOrders          → PedidosAbiertos
//  4. ProducedSince(7d)   → ProducidoSieteDias
//  5. StockTotalsByType + LowStockLines → StockPorTipo + AlertasStockBajo
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	if uc.cache != nil {
		if cached, ok := uc.cache.Get(ctx); ok {
			return cached, nil
		}
	}

	type intResult struct {
		value int
		err   error
	}
	type breakdownResult struct {
		totals []repository.TypeTotal
		alerts []dto.LowStockAlertDTO
		err    error
	}

	rawCh := make(chan intResult, 1)
	finishedCh := make(chan intResult, 1)
	ordersCh := make(chan intResult, 1)
	producedCh := make(chan intResult, 1)
	breakdownCh := make(chan breakdownResult, 1)

	go func() {
		v, err := uc.analyticsRepo.TotalRawStock(ctx)
		rawCh <- intResult{v, err}
	}()
	go func() {
		v, err := uc.analyticsRepo.TotalFinishedStock(ctx)
		finishedCh <- intResult{v, err}
	}()
	go func() {
		v, err := uc.analyticsRepo.OpenOrders(ctx)
		ordersCh <- intResult{v, err}
	}()
	go func() {
		v, err := uc.analyticsRepo.ProducedSince(ctx, time.Now().Add(-producedWindow))
		producedCh <- intResult{v, err}
	}()
	go func() {
		totals, err := uc.analyticsRepo.StockTotalsByType(ctx)
		if err != nil {
			breakdownCh <- breakdownResult{err: err}
			return
		}
		lines, err := uc.analyticsRepo.LowStockLines(ctx)
		if err != nil {
			breakdownCh <- breakdownResult{err: err}
			return
		}
		alerts := make([]dto.LowStockAlertDTO, 0, len(lines))
		for _, l := range lines {
			alerts = append(alerts, dto.LowStockAlertDTO{
				Tipo:        l.Tipo,
				Variante:    l.Variante,
				StockActual: l.StockActual,
				StockMinimo: l.StockMinimo,
			})
		}
		breakdownCh <- breakdownResult{totals: totals, alerts: alerts}
	}()

	raw := <-rawCh
	finished := <-finishedCh
	orders := <-ordersCh
	produced := <-producedCh
	breakdown := <-breakdownCh

	if raw.err != nil {
		return nil, fmt.Errorf("dashboard: stock de materia prima: %w", raw.err)
	}
	if finished.err != nil {
		return nil, fmt.Errorf("dashboard: stock de terminados: %w", finished.err)
	}
	if orders.err != nil {
		return nil, fmt.Errorf("dashboard: pedidos abiertos: %w", orders.err)
	}
	if produced.err != nil {
		return nil, fmt.Errorf("dashboard: producción reciente: %w", produced.err)
	}
	if breakdown.err != nil {
		return nil, fmt.Errorf("dashboard: desglose por tipo: %w", breakdown.err)
	}

	totals := make([]dto.TypeTotalDTO, 0, len(breakdown.totals))
	for _, t := range breakdown.totals {
		totals = append(totals, dto.TypeTotalDTO{Tipo: t.Tipo, Total: t.Total})
	}

	summary := &dto.DashboardSummaryDTO{
		StockMPTotal:       raw.value,
		StockTerminados:    finished.value,
		PedidosAbiertos:    orders.value,
		ProducidoSieteDias: produced.value,
		StockPorTipo:       totals,
		AlertasStockBajo:   breakdown.alerts,
	}
	if uc.cache != nil {
		uc.cache.Set(ctx, summary)
	}
	return summary, nil
}

// LowStockAlerts devuelve solo las filas bajo mínimo, para el job de alertas.
func (uc *DashboardUseCase) LowStockAlerts(ctx context.Context) ([]dto.LowStockAlertDTO, error) {
	lines, err := uc.analyticsRepo.LowStockLines(ctx)
	if err != nil {
		return nil, err
	}
	alerts := make([]dto.LowStockAlertDTO, 0, len(lines))
	for _, l := range lines {
		alerts = append(alerts, dto.LowStockAlertDTO{
			Tipo:        l.Tipo,
			Variante:    l.Variante,
			StockActual: l.StockActual,
			StockMinimo: l.StockMinimo,
		})
	}
	return alerts, nil
}
