package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/revxlabs/revx/internal/dto"
	apierrors "github.com/revxlabs/revx/internal/errors"
	"github.com/revxlabs/revx/internal/middleware"
	"github.com/revxlabs/revx/internal/services"
)

// UserHandler coordinates profile endpoints.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// MyProjects returns the projects owned by the caller.
func (h *UserHandler) MyProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projects, err := h.userService.MyProjects(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch projects")
		return
	}

	c.JSON(http.StatusOK, dto.Success("", dto.ToProjectDTOs(projects)))
}

// UpdateProfile applies profile changes for the caller.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateProfileRequest struct {
		Username *string `json:"username"`
		FullName *string `json:"full_name"`
		Bio      *string `json:"bio"`
		Avatar   *string `json:"avatar"`
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateProfile(userID, services.UpdateProfileInput{
		Username: req.Username,
		FullName: req.FullName,
		Bio:      req.Bio,
		Avatar:   req.Avatar,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			apierrors.NotFound(c, err.Error())
		case errors.Is(err, services.ErrUsernameTaken):
			apierrors.Conflict(c, err.Error())
		default:
			apierrors.BadRequest(c, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, dto.Success("Profile updated successfully", dto.ToUserDTO(*user)))
}
