// Package cache implementa el caché del resumen del dashboard sobre Redis.
// El caché es best-effort: un fallo de Redis nunca afecta la respuesta.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fys/fabrica-pinceles-api/internal/application/analytics"
	"github.com/fys/fabrica-pinceles-api/internal/application/dto"
	"github.com/fys/fabrica-pinceles-api/pkg/config"
	"github.com/fys/fabrica-pinceles-api/pkg/logger"
)

const summaryKey = "dashboard:summary"

var _ analytics.SummaryCache = (*RedisSummaryCache)(nil)

// RedisSummaryCache guarda el resumen serializado en JSON con TTL corto.
type RedisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewRedisSummaryCache conecta a Redis y devuelve el caché. Falla si Redis no
// responde al ping; el caller decide si corre sin caché.
func NewRedisSummaryCache(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (*RedisSummaryCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisSummaryCache{client: client, ttl: ttl, log: log}, nil
}

// Get devuelve el resumen cacheado, o false si no hay o Redis falló.
func (c *RedisSummaryCache) Get(ctx context.Context) (*dto.DashboardSummaryDTO, bool) {
	data, err := c.client.Get(ctx, summaryKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Debug().Err(err).Msg("cache dashboard: get fallido")
		}
		return nil, false
	}
	var summary dto.DashboardSummaryDTO
	if err := json.Unmarshal(data, &summary); err != nil {
		c.log.Warn().Err(err).Msg("cache dashboard: payload corrupto")
		return nil, false
	}
	return &summary, true
}

// Set guarda el resumen con el TTL configurado.
func (c *RedisSummaryCache) Set(ctx context.Context, summary *dto.DashboardSummaryDTO) {
	data, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, summaryKey, data, c.ttl).Err(); err != nil {
		c.log.Debug().Err(err).Msg("cache dashboard: set fallido")
	}
}

// Close cierra la conexión a Redis.
func (c *RedisSummaryCache) Close() error {
	return c.client.Close()
}
