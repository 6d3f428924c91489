package db

import (
	"fmt"

	types "github.com/yungbote/bloglist-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&types.User{},
		&types.Blog{},
	); err != nil {
		return err
	}
	return EnsureBlogIndexes(db)
}

func EnsureBlogIndexes(db *gorm.DB) error {
	// Listing per owner in creation order.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_blog_user_created
		ON blog (user_id, created_at);
	`).Error; err != nil {
		return fmt.Errorf("create idx_blog_user_created: %w", err)
	}
	return nil
}
