package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/tanvir-rifat07/chirplink/internal/repositories"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.POST("/users/:id/unfollow", h.UnfollowUser)
}

// checkTarget validates the :id param against the current user and the
// credential store, shared by follow and unfollow
func (h *FollowHandler) checkTarget(c echo.Context, currentUserID uint, action string) (uint, error) {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	if currentUserID == uint(targetID) {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "You cannot "+action+" yourself")
	}
	if _, err := h.userRepository.GetUserByID(uint(targetID)); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return 0, echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return 0, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return uint(targetID), nil
}

// FollowUser follows a user
func (h *FollowHandler) FollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	targetID, err := h.checkTarget(c, currentUserID, "follow")
	if err != nil {
		return err
	}

	if err := h.followRepository.Follow(currentUserID, targetID); err != nil {
		if errors.Is(err, repositories.ErrAlreadyFollowing) {
			return echo.NewHTTPError(http.StatusBadRequest, "You already follow this user")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "User followed successfully"})
}

// UnfollowUser unfollows a user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	targetID, err := h.checkTarget(c, currentUserID, "unfollow")
	if err != nil {
		return err
	}

	if err := h.followRepository.Unfollow(currentUserID, targetID); err != nil {
		if errors.Is(err, repositories.ErrNotFollowing) {
			return echo.NewHTTPError(http.StatusBadRequest, "You do not follow this user")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "User unfollowed successfully"})
}
