package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/tanvir-rifat07/chirplink/internal/cache"
	"github.com/tanvir-rifat07/chirplink/internal/models"
	"github.com/tanvir-rifat07/chirplink/internal/repositories"
)

// discoverTTL keeps the unfiltered listing slightly stale at most
const discoverTTL = 30 * time.Second

// FeedHandler handles the personalized feed and the discover listing
type FeedHandler struct {
	postRepository   repositories.PostRepository
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
	cache            *cache.Cache
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(
	postRepo repositories.PostRepository,
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	c *cache.Cache,
) *FeedHandler {
	return &FeedHandler{
		postRepository:   postRepo,
		userRepository:   userRepo,
		followRepository: followRepo,
		cache:            c,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/posts", h.GetFeed)
	g.GET("/posts/discover", h.GetDiscover)
}

// GetFeed returns posts authored by the current user or anyone they follow,
// newest first, with author fields joined
func (h *FeedHandler) GetFeed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	followingIDs, err := h.followRepository.GetFollowingIDs(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	authorIDs := append(followingIDs, currentUserID)

	skip, limit := pagination(c)
	posts, err := h.postRepository.GetPostsByAuthors(c.Request().Context(), authorIDs, skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	views, err := buildPostViews(posts, h.userRepository)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, views)
}

// GetDiscover returns all posts regardless of authorship, newest first. The
// listing is identical for every caller, so it is served cache-aside.
func (h *FeedHandler) GetDiscover(c echo.Context) error {
	ctx := c.Request().Context()
	skip, limit := pagination(c)
	key := fmt.Sprintf("discover:%d:%d", skip, limit)

	var views []models.PostView
	if found, _ := h.cache.GetJSON(ctx, key, &views); found {
		return c.JSON(http.StatusOK, views)
	}

	posts, err := h.postRepository.GetAllPosts(ctx, skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	views, err = buildPostViews(posts, h.userRepository)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.cache.SetJSON(ctx, key, views, discoverTTL); err != nil {
		c.Logger().Warnf("failed to cache discover page: %v", err)
	}
	return c.JSON(http.StatusOK, views)
}
