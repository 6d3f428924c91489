package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/bloglist-backend/internal/domain"
	"github.com/yungbote/bloglist-backend/internal/http/response"
	"github.com/yungbote/bloglist-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type userBlogView struct {
	ID     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Author string    `json:"author"`
}

type userView struct {
	ID       uuid.UUID      `json:"id"`
	Username string         `json:"username"`
	Name     string         `json:"name"`
	Blogs    []userBlogView `json:"blogs"`
}

func newUserView(u *types.User) userView {
	view := userView{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Blogs:    make([]userBlogView, 0, len(u.Blogs)),
	}
	for _, b := range u.Blogs {
		view.Blogs = append(view.Blogs, userBlogView{ID: b.ID, Title: b.Title, Author: b.Author})
	}
	return view
}

// GET /api/users
func (uh *UserHandler) List(c *gin.Context) {
	users, err := uh.userService.List(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	out := make([]userView, 0, len(users))
	for _, u := range users {
		out = append(out, newUserView(u))
	}
	response.RespondOK(c, out)
}

// POST /api/users
// body: { "username": "...", "name": "...", "password": "..." }
func (uh *UserHandler) Create(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	u, err := uh.userService.Register(c.Request.Context(), services.RegisterInput{
		Username: req.Username,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, newUserView(u))
}
