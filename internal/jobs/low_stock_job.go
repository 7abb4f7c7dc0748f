// Package jobs contiene los trabajos programados de la aplicación.
package jobs

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/fys/fabrica-pinceles-api/internal/application/analytics"
	"github.com/fys/fabrica-pinceles-api/pkg/logger"
)

// Scheduler corre los trabajos de fondo de la planta. Por ahora, solo la
// alerta periódica de stock bajo.
type Scheduler struct {
	scheduler gocron.Scheduler
	dashboard *analytics.DashboardUseCase
	log       *logger.Logger
}

// NewScheduler construye el scheduler y registra la alerta de stock bajo con
// el intervalo dado. every <= 0 deja el job sin registrar.
func NewScheduler(dashboard *analytics.DashboardUseCase, every time.Duration, log *logger.Logger) (*Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	s := &Scheduler{scheduler: sched, dashboard: dashboard, log: log}

	if every > 0 {
		_, err = sched.NewJob(
			gocron.DurationJob(every),
			gocron.NewTask(s.checkLowStock, context.Background()),
			gocron.WithName("low-stock-alerts"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Start arranca los jobs registrados.
func (s *Scheduler) Start() {
	s.log.Info().Msg("scheduler de jobs iniciado")
	s.scheduler.Start()
}

// Stop detiene el scheduler y espera los jobs en curso.
func (s *Scheduler) Stop() error {
	s.log.Info().Msg("scheduler de jobs detenido")
	return s.scheduler.Shutdown()
}

// checkLowStock loguea una alerta por cada fila de materia prima bajo mínimo.
func (s *Scheduler) checkLowStock(ctx context.Context) error {
	alerts, err := s.dashboard.LowStockAlerts(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("alerta de stock bajo: consulta fallida")
		return err
	}
	for _, a := range alerts {
		s.log.Warn().
			Str("tipo", a.Tipo).
			Str("variante", a.Variante).
			Int("stock_actual", a.StockActual).
			Int("stock_minimo", a.StockMinimo).
			Msg("stock bajo mínimo")
	}
	if len(alerts) == 0 {
		s.log.Debug().Msg("alerta de stock bajo: sin faltantes")
	}
	return nil
}
