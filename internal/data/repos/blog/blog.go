package blog

import (
	"context"

	"github.com/google/uuid"
	types "github.com/yungbote/bloglist-backend/internal/domain"
	"github.com/yungbote/bloglist-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type BlogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, blogs []*types.Blog) ([]*types.Blog, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Blog, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, blogIDs []uuid.UUID) ([]*types.Blog, error)
	Update(ctx context.Context, tx *gorm.DB, blogID uuid.UUID, fields map[string]any) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, blogIDs []uuid.UUID) (int64, error)
}

type blogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBlogRepo(db *gorm.DB, baseLog *logger.Logger) BlogRepo {
	repoLog := baseLog.With("repo", "BlogRepo")
	return &blogRepo{db: db, log: repoLog}
}

func (br *blogRepo) Create(ctx context.Context, tx *gorm.DB, blogs []*types.Blog) ([]*types.Blog, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	if len(blogs) == 0 {
		return []*types.Blog{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&blogs).Error; err != nil {
		return nil, err
	}
	return blogs, nil
}

// List returns every blog in creation order. Blogs created in the same
// instant are ordered by id, so the order is stable across calls.
func (br *blogRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Blog, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var results []*types.Blog
	if err := transaction.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (br *blogRepo) GetByIDs(ctx context.Context, tx *gorm.DB, blogIDs []uuid.UUID) ([]*types.Blog, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var results []*types.Blog
	if len(blogIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", blogIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (br *blogRepo) Update(ctx context.Context, tx *gorm.DB, blogID uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Blog{}).
		Where("id = ?", blogID).
		Updates(fields).Error
}

// DeleteByIDs soft-deletes blogs and reports how many rows were affected.
func (br *blogRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, blogIDs []uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	if len(blogIDs) == 0 {
		return 0, nil
	}
	res := transaction.WithContext(ctx).
		Where("id IN ?", blogIDs).
		Delete(&types.Blog{})
	return res.RowsAffected, res.Error
}
