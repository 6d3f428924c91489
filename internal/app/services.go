package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/bloglist-backend/internal/platform/logger"
	"github.com/yungbote/bloglist-backend/internal/services"
)

type Services struct {
	Auth  services.AuthService
	User  services.UserService
	Blog  services.BlogService
	Stats services.StatsService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, clients Clients) Services {
	log.Info("Wiring services...")
	return Services{
		Auth:  services.NewAuthService(log, reposet.User, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		User:  services.NewUserService(db, log, reposet.User, cfg.BcryptCost),
		Blog:  services.NewBlogService(db, log, reposet.Blog, clients.StatsCache, clients.Metrics),
		Stats: services.NewStatsService(log, reposet.Blog, clients.StatsCache, clients.Metrics),
	}
}
