package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/bloglist-backend/internal/http/response"
	"github.com/yungbote/bloglist-backend/internal/services"
	"github.com/yungbote/bloglist-backend/internal/stats"
)

type StatsHandler struct {
	statsService services.StatsService
}

func NewStatsHandler(statsService services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (sh *StatsHandler) respond(c *gin.Context, pick func(*stats.Summary) any) {
	summary, err := sh.statsService.Summary(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, pick(summary))
}

// GET /api/stats
func (sh *StatsHandler) Summary(c *gin.Context) {
	sh.respond(c, func(s *stats.Summary) any { return s })
}

// GET /api/stats/total-likes
func (sh *StatsHandler) TotalLikes(c *gin.Context) {
	sh.respond(c, func(s *stats.Summary) any { return gin.H{"total_likes": s.TotalLikes} })
}

// GET /api/stats/favorite
func (sh *StatsHandler) FavoriteBlog(c *gin.Context) {
	sh.respond(c, func(s *stats.Summary) any { return s.FavoriteBlog })
}

// GET /api/stats/most-blogs
func (sh *StatsHandler) MostBlogs(c *gin.Context) {
	sh.respond(c, func(s *stats.Summary) any { return s.MostBlogs })
}

// GET /api/stats/most-likes
func (sh *StatsHandler) MostLikes(c *gin.Context) {
	sh.respond(c, func(s *stats.Summary) any { return s.MostLikes })
}
