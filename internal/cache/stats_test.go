package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/bloglist-backend/internal/platform/logger"
	"github.com/yungbote/bloglist-backend/internal/stats"
)

func TestNoopStatsCacheNeverHits(t *testing.T) {
	c := NewNoopStatsCache()
	ctx := context.Background()

	gen, err := c.Generation(ctx)
	require.NoError(t, err)
	stored, err := c.Set(ctx, gen, &stats.Summary{Dummy: 1})
	require.NoError(t, err)
	assert.False(t, stored)

	got, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)

	require.NoError(t, c.Invalidate(ctx))
	next, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, gen+1, next)
	assert.NoError(t, c.Close())
}

func TestNewRedisStatsCacheRequiresAddr(t *testing.T) {
	log, err := logger.New("test")
	require.NoError(t, err)

	_, err = NewRedisStatsCache(log, RedisConfig{})
	assert.Error(t, err)

	_, err = NewRedisStatsCache(nil, RedisConfig{Addr: "localhost:6379"})
	assert.Error(t, err)
}

func TestRedisStatsCacheRoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run redis integration tests")
	}
	log, err := logger.New("test")
	require.NoError(t, err)

	c, err := NewRedisStatsCache(log, RedisConfig{
		Addr: addr,
		Key:  "bloglist:test:" + uuid.NewString(),
		TTL:  time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	ctx := context.Background()
	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	want := &stats.Summary{
		Dummy:        1,
		BlogCount:    2,
		TotalLikes:   9,
		FavoriteBlog: stats.Favorite{Title: "B", Author: "y", Likes: 7},
		MostBlogs:    &stats.AuthorBlogs{Author: "x", Blogs: 1},
		MostLikes:    &stats.AuthorLikes{Author: "y", Likes: 7},
	}
	gen, err := c.Generation(ctx)
	require.NoError(t, err)
	stored, err := c.Set(ctx, gen, want)
	require.NoError(t, err)
	require.True(t, stored)

	got, ok, err := c.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	require.NoError(t, c.Invalidate(ctx))
	_, ok, err = c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	// A summary computed before the invalidation must not be stored.
	stored, err = c.Set(ctx, gen, want)
	require.NoError(t, err)
	assert.False(t, stored)
	_, ok, err = c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	next, err := c.Generation(ctx)
	require.NoError(t, err)
	stored, err = c.Set(ctx, next, want)
	require.NoError(t, err)
	assert.True(t, stored)
}
