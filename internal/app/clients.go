package app

import (
	"fmt"

	"github.com/yungbote/bloglist-backend/internal/cache"
	"github.com/yungbote/bloglist-backend/internal/observability"
	"github.com/yungbote/bloglist-backend/internal/platform/logger"
)

type Clients struct {
	StatsCache cache.StatsCache
	Metrics    *observability.Metrics
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	// Redis
	statsCache := cache.NewNoopStatsCache()
	if cfg.Redis.Addr != "" {
		c, err := cache.NewRedisStatsCache(log, cfg.Redis)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis stats cache: %w", err)
		}
		statsCache = c
	}

	// Metrics
	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
	}

	return Clients{StatsCache: statsCache, Metrics: metrics}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.StatsCache != nil {
		_ = c.StatsCache.Close()
	}
}
