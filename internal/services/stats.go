package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/yungbote/bloglist-backend/internal/cache"
	"github.com/yungbote/bloglist-backend/internal/data/repos"
	types "github.com/yungbote/bloglist-backend/internal/domain"
	"github.com/yungbote/bloglist-backend/internal/observability"
	"github.com/yungbote/bloglist-backend/internal/platform/logger"
	"github.com/yungbote/bloglist-backend/internal/stats"
)

const recomputeTimeout = 30 * time.Second

type StatsService interface {
	Summary(ctx context.Context) (*stats.Summary, error)
}

type statsService struct {
	log        *logger.Logger
	blogRepo   repos.BlogRepo
	statsCache cache.StatsCache
	metrics    *observability.Metrics
	group      singleflight.Group
}

func NewStatsService(log *logger.Logger, blogRepo repos.BlogRepo, statsCache cache.StatsCache, metrics *observability.Metrics) StatsService {
	serviceLog := log.With("service", "StatsService")
	if statsCache == nil {
		statsCache = cache.NewNoopStatsCache()
	}
	return &statsService{
		log:        serviceLog,
		blogRepo:   blogRepo,
		statsCache: statsCache,
		metrics:    metrics,
	}
}

// Summary serves the cached summary when present and otherwise recomputes it
// from the full blog list. Concurrent misses within one cache generation
// share a recompute, which runs detached from any single caller's
// cancellation; each caller still stops waiting when its own ctx ends. The
// returned value is shared and must not be modified.
func (ss *statsService) Summary(ctx context.Context) (*stats.Summary, error) {
	cached, ok, err := ss.statsCache.Get(ctx)
	if err != nil {
		ss.log.Warn("Stats cache read failed, recomputing", "error", err)
	} else if ok {
		ss.metrics.IncStatsCache(true)
		return cached, nil
	}
	ss.metrics.IncStatsCache(false)

	gen, err := ss.statsCache.Generation(ctx)
	cacheable := err == nil
	if err != nil {
		ss.log.Warn("Stats cache generation read failed, not caching", "error", err)
	}

	key := "summary:" + strconv.FormatInt(gen, 10)
	if !cacheable {
		key = "summary:uncached"
	}
	ch := ss.group.DoChan(key, func() (interface{}, error) {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recomputeTimeout)
		defer cancel()
		return ss.recompute(rctx, gen, cacheable)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*stats.Summary), nil
	}
}

func (ss *statsService) recompute(ctx context.Context, gen int64, cacheable bool) (*stats.Summary, error) {
	blogs, err := ss.blogRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	summary := stats.Summarize(types.BlogRecords(blogs))
	if !cacheable {
		return &summary, nil
	}
	stored, err := ss.statsCache.Set(ctx, gen, &summary)
	if err != nil {
		ss.log.Warn("Stats cache write failed", "error", err)
	} else if !stored {
		ss.log.Debug("Stats summary outdated by a concurrent write, not cached", "generation", gen)
	}
	return &summary, nil
}
