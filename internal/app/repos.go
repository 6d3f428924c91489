package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/bloglist-backend/internal/data/repos"
	"github.com/yungbote/bloglist-backend/internal/platform/logger"
)

type Repos struct {
	Blog repos.BlogRepo
	User repos.UserRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Blog: repos.NewBlogRepo(db, log),
		User: repos.NewUserRepo(db, log),
	}
}
