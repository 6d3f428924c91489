package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/bloglist-backend/internal/cache"
	"github.com/yungbote/bloglist-backend/internal/data/repos"
	types "github.com/yungbote/bloglist-backend/internal/domain"
	"github.com/yungbote/bloglist-backend/internal/observability"
	"github.com/yungbote/bloglist-backend/internal/platform/apierr"
	"github.com/yungbote/bloglist-backend/internal/platform/ctxutil"
	"github.com/yungbote/bloglist-backend/internal/platform/logger"
)

// BlogInput is a create or update request. A nil Likes means the client
// sent no likes, which stores 0.
type BlogInput struct {
	Title  string
	Author string
	URL    string
	Likes  *int
}

type BlogService interface {
	List(ctx context.Context) ([]*types.Blog, error)
	Get(ctx context.Context, blogID uuid.UUID) (*types.Blog, error)
	Create(ctx context.Context, in BlogInput) (*types.Blog, error)
	Update(ctx context.Context, blogID uuid.UUID, in BlogInput) (*types.Blog, error)
	Delete(ctx context.Context, blogID uuid.UUID) error
}

type blogService struct {
	db         *gorm.DB
	log        *logger.Logger
	blogRepo   repos.BlogRepo
	statsCache cache.StatsCache
	metrics    *observability.Metrics
}

func NewBlogService(db *gorm.DB, log *logger.Logger, blogRepo repos.BlogRepo, statsCache cache.StatsCache, metrics *observability.Metrics) BlogService {
	serviceLog := log.With("service", "BlogService")
	if statsCache == nil {
		statsCache = cache.NewNoopStatsCache()
	}
	return &blogService{
		db:         db,
		log:        serviceLog,
		blogRepo:   blogRepo,
		statsCache: statsCache,
		metrics:    metrics,
	}
}

func (bs *blogService) List(ctx context.Context) ([]*types.Blog, error) {
	blogs, err := bs.blogRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	return blogs, nil
}

func (bs *blogService) Get(ctx context.Context, blogID uuid.UUID) (*types.Blog, error) {
	return bs.get(ctx, nil, blogID)
}

func (bs *blogService) get(ctx context.Context, tx *gorm.DB, blogID uuid.UUID) (*types.Blog, error) {
	found, err := bs.blogRepo.GetByIDs(ctx, tx, []uuid.UUID{blogID})
	if err != nil {
		return nil, fmt.Errorf("get blog %s: %w", blogID, err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, apierr.NotFound("blog_not_found", "blog not found")
	}
	return found[0], nil
}

func (bs *blogService) Create(ctx context.Context, in BlogInput) (*types.Blog, error) {
	in = normalizeBlogInput(in)
	if in.Title == "" || in.URL == "" {
		return nil, apierr.BadRequest("invalid_blog", "blog needs title and url")
	}
	likes := 0
	if in.Likes != nil {
		likes = *in.Likes
	}
	if likes < 0 {
		return nil, apierr.BadRequest("invalid_blog", "likes must not be negative")
	}

	blog := &types.Blog{
		Title:  in.Title,
		Author: in.Author,
		URL:    in.URL,
		Likes:  likes,
		UserID: ctxutil.CurrentUserID(ctx),
	}
	if _, err := bs.blogRepo.Create(ctx, nil, []*types.Blog{blog}); err != nil {
		bs.log.Warn("Create blog failed", "error", err)
		return nil, fmt.Errorf("create blog: %w", err)
	}
	bs.metrics.IncBlogWrite("create")
	bs.invalidateStats(ctx)
	bs.log.Debug("Blog created", "blog_id", blog.ID.String())
	return blog, nil
}

// Update keeps stored title, author and url when the request leaves them
// empty. Likes are always replaced.
func (bs *blogService) Update(ctx context.Context, blogID uuid.UUID, in BlogInput) (*types.Blog, error) {
	in = normalizeBlogInput(in)
	likes := 0
	if in.Likes != nil {
		likes = *in.Likes
	}
	if likes < 0 {
		return nil, apierr.BadRequest("invalid_blog", "likes must not be negative")
	}

	var updated *types.Blog
	err := bs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := bs.get(ctx, tx, blogID)
		if err != nil {
			return err
		}
		fields := map[string]any{
			"title":  firstNonEmpty(in.Title, existing.Title),
			"author": firstNonEmpty(in.Author, existing.Author),
			"url":    firstNonEmpty(in.URL, existing.URL),
			"likes":  likes,
		}
		if err := bs.blogRepo.Update(ctx, tx, blogID, fields); err != nil {
			return fmt.Errorf("update blog %s: %w", blogID, err)
		}
		updated, err = bs.get(ctx, tx, blogID)
		return err
	})
	if err != nil {
		return nil, err
	}
	bs.metrics.IncBlogWrite("update")
	bs.invalidateStats(ctx)
	return updated, nil
}

// Delete succeeds whether or not the blog exists.
func (bs *blogService) Delete(ctx context.Context, blogID uuid.UUID) error {
	n, err := bs.blogRepo.DeleteByIDs(ctx, nil, []uuid.UUID{blogID})
	if err != nil {
		return fmt.Errorf("delete blog %s: %w", blogID, err)
	}
	if n > 0 {
		bs.metrics.IncBlogWrite("delete")
		bs.invalidateStats(ctx)
	}
	return nil
}

func (bs *blogService) invalidateStats(ctx context.Context) {
	if err := bs.statsCache.Invalidate(ctx); err != nil {
		bs.log.Warn("Stats cache invalidation failed", "error", err)
	}
}

func normalizeBlogInput(in BlogInput) BlogInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	in.URL = strings.TrimSpace(in.URL)
	return in
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
