package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fys/fabrica-pinceles-api/internal/application/analytics"
	"github.com/fys/fabrica-pinceles-api/internal/application/dto"
	"github.com/fys/fabrica-pinceles-api/internal/domain/entity"
	"github.com/fys/fabrica-pinceles-api/internal/domain/repository"
)

// fakeAnalyticsRepo devuelve agregados fijos.
type fakeAnalyticsRepo struct {
	raw      int
	finished int
	orders   int
	produced int
	totals   []repository.TypeTotal
	low      []*entity.StockLine
	err      error
}

func (f *fakeAnalyticsRepo) TotalRawStock(context.Context) (int, error)      { return f.raw, f.err }
func (f *fakeAnalyticsRepo) TotalFinishedStock(context.Context) (int, error) { return f.finished, f.err }
func (f *fakeAnalyticsRepo) OpenOrders(context.Context) (int, error)         { return f.orders, f.err }
func (f *fakeAnalyticsRepo) ProducedSince(context.Context, time.Time) (int, error) {
	return f.produced, f.err
}
func (f *fakeAnalyticsRepo) StockTotalsByType(context.Context) ([]repository.TypeTotal, error) {
	return f.totals, f.err
}
func (f *fakeAnalyticsRepo) LowStockLines(context.Context) ([]*entity.StockLine, error) {
	return f.low, f.err
}

// fakeCache guarda el último Set y sirve un hit fijo.
type fakeCache struct {
	hit  *dto.DashboardSummaryDTO
	sets int
	last *dto.DashboardSummaryDTO
}

func (c *fakeCache) Get(context.Context) (*dto.DashboardSummaryDTO, bool) {
	return c.hit, c.hit != nil
}

func (c *fakeCache) Set(_ context.Context, s *dto.DashboardSummaryDTO) {
	c.sets++
	c.last = s
}

func TestGetSummary_AgregaTodasLasFuentes(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		raw: 540, finished: 80, orders: 3, produced: 120,
		totals: []repository.TypeTotal{{Tipo: "Cerda", Total: 200}, {Tipo: "Mango", Total: 340}},
		low: []*entity.StockLine{
			{Tipo: "Chapita", Variante: "15", StockActual: 10, StockMinimo: 50},
		},
	}
	uc := analytics.NewDashboardUseCase(repo, nil)

	s, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 540, s.StockMPTotal)
	assert.Equal(t, 80, s.StockTerminados)
	assert.Equal(t, 3, s.PedidosAbiertos)
	assert.Equal(t, 120, s.ProducidoSieteDias)
	assert.Len(t, s.StockPorTipo, 2)
	require.Len(t, s.AlertasStockBajo, 1)
	assert.Equal(t, "Chapita", s.AlertasStockBajo[0].Tipo)
}

func TestGetSummary_ErrorDeFuente(t *testing.T) {
	repo := &fakeAnalyticsRepo{err: errors.New("conexión caída")}
	uc := analytics.NewDashboardUseCase(repo, nil)

	_, err := uc.GetSummary(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dashboard")
}

func TestGetSummary_CacheHitEvitaConsultas(t *testing.T) {
	cached := &dto.DashboardSummaryDTO{StockMPTotal: 999}
	cache := &fakeCache{hit: cached}
	uc := analytics.NewDashboardUseCase(&fakeAnalyticsRepo{raw: 1}, cache)

	s, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Same(t, cached, s)
	assert.Zero(t, cache.sets, "con hit no se reescribe el caché")
}

func TestGetSummary_CacheMissEscribe(t *testing.T) {
	cache := &fakeCache{}
	uc := analytics.NewDashboardUseCase(&fakeAnalyticsRepo{raw: 42}, cache)

	s, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
	assert.Same(t, s, cache.last)
}

func TestLowStockAlerts(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		low: []*entity.StockLine{
			{Tipo: "Cerda", Variante: "15", StockActual: 5, StockMinimo: 50},
			{Tipo: "Chapita", Variante: "10", StockActual: 0, StockMinimo: 50},
		},
	}
	uc := analytics.NewDashboardUseCase(repo, nil)

	alerts, err := uc.LowStockAlerts(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, 5, alerts[0].StockActual)
}
