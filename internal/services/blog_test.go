package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/bloglist-backend/internal/data/repos"
	"github.com/yungbote/bloglist-backend/internal/data/repos/testutil"
	"github.com/yungbote/bloglist-backend/internal/platform/apierr"
	"github.com/yungbote/bloglist-backend/internal/platform/ctxutil"
	"github.com/yungbote/bloglist-backend/internal/platform/pointers"
	"github.com/yungbote/bloglist-backend/internal/stats"
)

type recordingStatsCache struct {
	mu          sync.Mutex
	summary     *stats.Summary
	gen         int64
	gets        int
	sets        int
	rejected    int
	invalidated int
}

func (c *recordingStatsCache) Get(context.Context) (*stats.Summary, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	return c.summary, c.summary != nil, nil
}

func (c *recordingStatsCache) Generation(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen, nil
}

func (c *recordingStatsCache) Set(_ context.Context, gen int64, s *stats.Summary) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		c.rejected++
		return false, nil
	}
	c.sets++
	c.summary = s
	return true, nil
}

func (c *recordingStatsCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	c.gen++
	c.summary = nil
	return nil
}

func (c *recordingStatsCache) Close() error { return nil }

func (c *recordingStatsCache) counts() (sets, rejected int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sets, c.rejected
}

func newBlogService(t *testing.T) (BlogService, *recordingStatsCache) {
	t.Helper()
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	sc := &recordingStatsCache{}
	return NewBlogService(gdb, log, repos.NewBlogRepo(gdb, log), sc, nil), sc
}

func TestBlogServiceCreateDefaultsLikes(t *testing.T) {
	svc, sc := newBlogService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, BlogInput{Title: "Type wars", Author: "Robert C. Martin", URL: "http://blog.cleancoder.com/"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, 0, created.Likes)
	assert.Nil(t, created.UserID)
	assert.Equal(t, 1, sc.invalidated)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Type wars", all[0].Title)
}

func TestBlogServiceCreateRejectsMissingFields(t *testing.T) {
	svc, sc := newBlogService(t)
	ctx := context.Background()

	cases := []BlogInput{
		{Author: "a", URL: "http://x"},
		{Title: "t", Author: "a"},
		{Title: "   ", URL: "http://x"},
		{Title: "t", URL: "http://x", Likes: pointers.Int(-1)},
	}
	for _, in := range cases {
		_, err := svc.Create(ctx, in)
		require.Error(t, err)
		assert.ErrorIs(t, err, apierr.ErrInvalidArgument)
	}

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Equal(t, 0, sc.invalidated)
}

func TestBlogServiceCreateAttachesOwner(t *testing.T) {
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	svc := NewBlogService(gdb, log, repos.NewBlogRepo(gdb, log), nil, nil)
	owner := testutil.SeedUser(t, context.Background(), gdb, "owner")

	ctx := ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: owner.ID, Username: owner.Username})
	created, err := svc.Create(ctx, BlogInput{Title: "t", URL: "http://x", Likes: pointers.Int(3)})
	require.NoError(t, err)
	require.NotNil(t, created.UserID)
	assert.Equal(t, owner.ID, *created.UserID)
	assert.Equal(t, 3, created.Likes)
}

func TestBlogServiceGetNotFound(t *testing.T) {
	svc, _ := newBlogService(t)

	_, err := svc.Get(context.Background(), uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, apierr.ErrNotFound)

	var apiErr *apierr.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "blog_not_found", apiErr.Code)
}

func TestBlogServiceUpdateMergesFields(t *testing.T) {
	svc, sc := newBlogService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, BlogInput{Title: "React patterns", Author: "Michael Chan", URL: "https://reactpatterns.com/", Likes: pointers.Int(7)})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, BlogInput{Likes: pointers.Int(8)})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "React patterns", updated.Title)
	assert.Equal(t, "Michael Chan", updated.Author)
	assert.Equal(t, "https://reactpatterns.com/", updated.URL)
	assert.Equal(t, 8, updated.Likes)

	updated, err = svc.Update(ctx, created.ID, BlogInput{Title: "React patterns, 2nd ed."})
	require.NoError(t, err)
	assert.Equal(t, "React patterns, 2nd ed.", updated.Title)
	assert.Equal(t, 0, updated.Likes)
	assert.Equal(t, 3, sc.invalidated)
}

func TestBlogServiceUpdateUnknownID(t *testing.T) {
	svc, _ := newBlogService(t)

	_, err := svc.Update(context.Background(), uuid.New(), BlogInput{Likes: pointers.Int(1)})
	assert.ErrorIs(t, err, apierr.ErrNotFound)
}

func TestBlogServiceUpdateRejectsNegativeLikes(t *testing.T) {
	svc, _ := newBlogService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, BlogInput{Title: "t", URL: "http://x", Likes: pointers.Int(2)})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, BlogInput{Likes: pointers.Int(-5)})
	assert.ErrorIs(t, err, apierr.ErrInvalidArgument)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Likes)
}

func TestBlogServiceDeleteIsIdempotent(t *testing.T) {
	svc, sc := newBlogService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, BlogInput{Title: "t", URL: "http://x"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	require.NoError(t, svc.Delete(ctx, created.ID))
	require.NoError(t, svc.Delete(ctx, uuid.New()))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, apierr.ErrNotFound)
	assert.Equal(t, 2, sc.invalidated)
}
