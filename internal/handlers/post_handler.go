package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/tanvir-rifat07/chirplink/internal/cache"
	"github.com/tanvir-rifat07/chirplink/internal/models"
	"github.com/tanvir-rifat07/chirplink/internal/repositories"
)

// PostHandler handles post creation and engagement HTTP requests
type PostHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
	cache          *cache.Cache
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository, c *cache.Cache) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		userRepository: userRepo,
		cache:          c,
	}
}

// RegisterPostRoutes registers post-related routes that require authentication
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.POST("/posts/:id/like", h.ToggleLike)
	g.POST("/posts/:id/comments", h.AddComment)
}

// RegisterPublicRoutes registers post routes reachable without a token
func (h *PostHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/users/:id/posts", h.GetUserPosts)
}

// CreatePost creates a new post for the authenticated user
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if strings.TrimSpace(req.Content) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Post content cannot be empty")
	}

	post := &models.Post{
		AuthorID: getUserIDFromContext(c),
		Content:  req.Content,
		Image:    req.Image,
	}
	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// New post changes the discover listing
	h.cache.DeletePrefix(c.Request().Context(), "discover:")

	view, err := buildPostView(post, h.userRepository)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, view)
}

// GetUserPosts returns posts authored by exactly the given user, newest first
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	skip, limit := pagination(c)
	posts, err := h.postRepository.GetPostsByAuthor(c.Request().Context(), uint(id), skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	views, err := buildPostViews(posts, h.userRepository)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, views)
}

// ToggleLike likes the post if the user has not liked it yet, unlikes it
// otherwise, and returns the resulting like state
func (h *PostHandler) ToggleLike(c echo.Context) error {
	liked, err := h.postRepository.ToggleLike(c.Request().Context(), c.Param("id"), getUserIDFromContext(c))
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"liked": liked})
}

// AddComment appends a comment to the post and returns the updated post with
// all comment authors joined
func (h *PostHandler) AddComment(c echo.Context) error {
	var req models.AddCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if strings.TrimSpace(req.Text) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Comment text cannot be empty")
	}

	comment := models.Comment{
		AuthorID:  getUserIDFromContext(c),
		Text:      req.Text,
		CreatedAt: time.Now(),
	}
	post, err := h.postRepository.AddComment(c.Request().Context(), c.Param("id"), comment)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	view, err := buildPostView(post, h.userRepository)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, view)
}

// pagination reads page/limit query params with the usual defaults
func pagination(c echo.Context) (skip, limit int64) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 50 {
		size = 20
	}
	return int64((page - 1) * size), int64(size)
}
