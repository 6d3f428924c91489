package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/bloglist-backend/internal/http/handlers"
	httpMW "github.com/yungbote/bloglist-backend/internal/http/middleware"
	"github.com/yungbote/bloglist-backend/internal/observability"
	"github.com/yungbote/bloglist-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	ServiceName string
	CORSOrigins []string

	AuthMiddleware *httpMW.AuthMiddleware

	BlogHandler   *httpH.BlogHandler
	StatsHandler  *httpH.StatsHandler
	UserHandler   *httpH.UserHandler
	AuthHandler   *httpH.AuthHandler
	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api")
	if cfg.AuthMiddleware != nil {
		api.Use(cfg.AuthMiddleware.OptionalAuth())
	}
	{
		// Auth
		if cfg.AuthHandler != nil {
			api.POST("/login", cfg.AuthHandler.Login)
		}

		// Blogs
		if cfg.BlogHandler != nil {
			api.GET("/blogs", cfg.BlogHandler.List)
			api.GET("/blogs/:id", cfg.BlogHandler.Get)
			api.POST("/blogs", cfg.BlogHandler.Create)
			api.PUT("/blogs/:id", cfg.BlogHandler.Update)
			api.DELETE("/blogs/:id", cfg.BlogHandler.Delete)
		}

		// Stats
		if cfg.StatsHandler != nil {
			api.GET("/stats", cfg.StatsHandler.Summary)
			api.GET("/stats/total-likes", cfg.StatsHandler.TotalLikes)
			api.GET("/stats/favorite", cfg.StatsHandler.FavoriteBlog)
			api.GET("/stats/most-blogs", cfg.StatsHandler.MostBlogs)
			api.GET("/stats/most-likes", cfg.StatsHandler.MostLikes)
		}

		// Users
		if cfg.UserHandler != nil {
			api.GET("/users", cfg.UserHandler.List)
			api.POST("/users", cfg.UserHandler.Create)
		}
	}

	return r
}
