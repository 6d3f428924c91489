package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/bloglist-backend/internal/http/response"
	"github.com/yungbote/bloglist-backend/internal/services"
)

type BlogHandler struct {
	blogService services.BlogService
}

func NewBlogHandler(blogService services.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

type blogRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  *int   `json:"likes"`
}

func (r blogRequest) input() services.BlogInput {
	return services.BlogInput{Title: r.Title, Author: r.Author, URL: r.URL, Likes: r.Likes}
}

// GET /api/blogs
func (bh *BlogHandler) List(c *gin.Context) {
	blogs, err := bh.blogService.List(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, blogs)
}

// GET /api/blogs/:id
func (bh *BlogHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	blog, err := bh.blogService.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, blog)
}

// POST /api/blogs
// body: { "title": "...", "author": "...", "url": "...", "likes": 0 }
func (bh *BlogHandler) Create(c *gin.Context) {
	var req blogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	blog, err := bh.blogService.Create(c.Request.Context(), req.input())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, blog)
}

// PUT /api/blogs/:id
func (bh *BlogHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req blogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	blog, err := bh.blogService.Update(c.Request.Context(), id, req.input())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, blog)
}

// DELETE /api/blogs/:id
func (bh *BlogHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := bh.blogService.Delete(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondNoContent(c)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("malformatted id"))
		return uuid.Nil, false
	}
	return id, true
}
