package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/tanvir-rifat07/chirplink/internal/models"
	"github.com/tanvir-rifat07/chirplink/internal/repositories"
)

// UserHandler handles HTTP requests related to user profiles
type UserHandler struct {
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, followRepo repositories.FollowRepository) *UserHandler {
	return &UserHandler{
		userRepository:   userRepo,
		followRepository: followRepo,
	}
}

// RegisterProfileRoutes registers routes that require authentication
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/users/me", h.Me)
	g.PUT("/users/me", h.UpdateMe)
	g.GET("/users/search", h.SearchUsers)
}

// RegisterPublicRoutes registers routes reachable without a token
func (h *UserHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/users/:id", h.GetUser)
}

// publicUser joins the derived follower/following edge sets onto the user
func (h *UserHandler) publicUser(user *models.User) models.PublicUser {
	followers, _ := h.followRepository.GetFollowerIDs(user.ID)
	following, _ := h.followRepository.GetFollowingIDs(user.ID)
	return user.ToPublic(followers, following)
}

// Me retrieves the authenticated user's profile
func (h *UserHandler) Me(c echo.Context) error {
	user, err := h.userRepository.GetUserByID(getUserIDFromContext(c))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, h.publicUser(user))
}

// UpdateMe updates the authenticated user's profile
func (h *UserHandler) UpdateMe(c echo.Context) error {
	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(getUserIDFromContext(c))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.Username != "" && req.Username != user.Username {
		// Username is unique across all users
		if _, err := h.userRepository.GetUserByUsername(req.Username); err == nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Username already taken")
		}
		user.Username = req.Username
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.ProfilePicture != "" {
		user.ProfilePicture = req.ProfilePicture
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, h.publicUser(user))
}

// GetUser retrieves any user's public profile by ID
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	user, err := h.userRepository.GetUserByID(uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, h.publicUser(user))
}

// SearchUsers searches users by username or bio, case-insensitive
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Search query 'q' is required")
	}

	users, err := h.userRepository.SearchUsers(query)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	results := make([]models.PublicUser, len(users))
	for i := range users {
		results[i] = h.publicUser(&users[i])
	}
	return c.JSON(http.StatusOK, results)
}
