package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/bloglist-backend/internal/http"
	httpH "github.com/yungbote/bloglist-backend/internal/http/handlers"
	httpMW "github.com/yungbote/bloglist-backend/internal/http/middleware"
	"github.com/yungbote/bloglist-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health *httpH.HealthHandler
	Auth   *httpH.AuthHandler
	User   *httpH.UserHandler
	Blog   *httpH.BlogHandler
	Stats  *httpH.StatsHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(db),
		Auth:   httpH.NewAuthHandler(services.Auth),
		User:   httpH.NewUserHandler(services.User),
		Blog:   httpH.NewBlogHandler(services.Blog),
		Stats:  httpH.NewStatsHandler(services.Stats),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireServer(log *logger.Logger, cfg Config, clients Clients, handlers Handlers, middleware Middleware) *http.Server {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return http.NewServer(":"+cfg.Port, http.RouterConfig{
		Log:            log,
		Metrics:        clients.Metrics,
		ServiceName:    serviceName,
		CORSOrigins:    cfg.CORSAllowedOrigins,
		AuthMiddleware: middleware.Auth,
		BlogHandler:    handlers.Blog,
		StatsHandler:   handlers.Stats,
		UserHandler:    handlers.User,
		AuthHandler:    handlers.Auth,
		HealthHandler:  handlers.Health,
	})
}
