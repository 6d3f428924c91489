package repos

import (
	"github.com/yungbote/bloglist-backend/internal/data/repos/blog"
	"github.com/yungbote/bloglist-backend/internal/data/repos/user"
	"github.com/yungbote/bloglist-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type BlogRepo = blog.BlogRepo
type UserRepo = user.UserRepo

func NewBlogRepo(db *gorm.DB, baseLog *logger.Logger) BlogRepo { return blog.NewBlogRepo(db, baseLog) }
func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }
