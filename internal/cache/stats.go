package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/bloglist-backend/internal/platform/logger"
	"github.com/yungbote/bloglist-backend/internal/stats"
)

// StatsCache holds the most recently computed stats summary. Every
// Invalidate bumps a generation counter; a summary computed from data read
// under an older generation is refused by Set, so a recompute that raced a
// write can never repopulate the cache with the pre-write numbers.
type StatsCache interface {
	// Get reports ok=false on a miss.
	Get(ctx context.Context) (summary *stats.Summary, ok bool, err error)
	// Generation returns the current generation. Read it before loading the
	// data a summary is computed from.
	Generation(ctx context.Context) (int64, error)
	// Set stores summary only if the generation is still gen and reports
	// whether it did.
	Set(ctx context.Context, gen int64, summary *stats.Summary) (bool, error)
	Invalidate(ctx context.Context) error
	Close() error
}

type RedisConfig struct {
	Addr string        `yaml:"addr"`
	Key  string        `yaml:"key"`
	TTL  time.Duration `yaml:"ttl"`
}

type redisStatsCache struct {
	log    *logger.Logger
	rdb    *goredis.Client
	key    string
	genKey string
	ttl    time.Duration
}

// setIfGeneration writes KEYS[1] only while KEYS[2] still holds ARGV[1].
// ARGV[3] is the TTL in milliseconds, 0 for none.
var setIfGeneration = goredis.NewScript(`
local gen = redis.call("GET", KEYS[2]) or "0"
if gen ~= ARGV[1] then
	return 0
end
local ttl = tonumber(ARGV[3])
if ttl > 0 then
	redis.call("SET", KEYS[1], ARGV[2], "PX", ttl)
else
	redis.call("SET", KEYS[1], ARGV[2])
end
return 1
`)

func NewRedisStatsCache(log *logger.Logger, cfg RedisConfig) (StatsCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	key := strings.TrimSpace(cfg.Key)
	if key == "" {
		key = "bloglist:stats:summary"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &redisStatsCache{
		log:    log.With("service", "RedisStatsCache"),
		rdb:    rdb,
		key:    key,
		genKey: key + ":gen",
		ttl:    cfg.TTL,
	}, nil
}

func (c *redisStatsCache) Get(ctx context.Context) (*stats.Summary, bool, error) {
	raw, err := c.rdb.Get(ctx, c.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", c.key, err)
	}
	var summary stats.Summary
	if err := json.Unmarshal(raw, &summary); err != nil {
		c.log.Warn("Discarding undecodable stats cache entry", "error", err)
		return nil, false, nil
	}
	return &summary, true, nil
}

func (c *redisStatsCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, c.genKey).Int64()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get %s: %w", c.genKey, err)
	}
	return gen, nil
}

func (c *redisStatsCache) Set(ctx context.Context, gen int64, summary *stats.Summary) (bool, error) {
	if summary == nil {
		return false, nil
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return false, err
	}
	stored, err := setIfGeneration.Run(ctx, c.rdb,
		[]string{c.key, c.genKey},
		strconv.FormatInt(gen, 10), raw, c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("redis set %s: %w", c.key, err)
	}
	return stored == 1, nil
}

// Invalidate bumps the generation before dropping the entry, in one
// MULTI/EXEC.
func (c *redisStatsCache) Invalidate(ctx context.Context) error {
	_, err := c.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Incr(ctx, c.genKey)
		pipe.Del(ctx, c.key)
		return nil
	})
	return err
}

func (c *redisStatsCache) Close() error {
	return c.rdb.Close()
}

// noopStatsCache stores nothing but still counts generations, so callers
// keying work by generation see writes.
type noopStatsCache struct {
	gen atomic.Int64
}

// NewNoopStatsCache returns a cache that never hits.
func NewNoopStatsCache() StatsCache { return &noopStatsCache{} }

func (*noopStatsCache) Get(context.Context) (*stats.Summary, bool, error) { return nil, false, nil }

func (c *noopStatsCache) Generation(context.Context) (int64, error) { return c.gen.Load(), nil }

func (*noopStatsCache) Set(context.Context, int64, *stats.Summary) (bool, error) { return false, nil }

func (c *noopStatsCache) Invalidate(context.Context) error {
	c.gen.Add(1)
	return nil
}

func (*noopStatsCache) Close() error { return nil }
