package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/revxlabs/revx/internal/dto"
	apierrors "github.com/revxlabs/revx/internal/errors"
	"github.com/revxlabs/revx/internal/services"
	"github.com/revxlabs/revx/internal/utils"
)

// AdminHandler coordinates moderation and dashboard endpoints. Every route
// here sits behind RequireAdmin.
type AdminHandler struct {
	adminService *services.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// Metrics returns dashboard totals and 30-day recents.
func (h *AdminHandler) Metrics(c *gin.Context) {
	metrics, err := h.adminService.Metrics()
	if err != nil {
		apierrors.InternalError(c, "Failed to compute metrics")
		return
	}

	c.JSON(http.StatusOK, metrics)
}

// ListUsers returns users newest first with limit/offset pagination.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, err := h.adminService.ListUsers(params.Limit, params.Offset)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch users")
		return
	}

	userDTOs := make([]dto.AdminUserDTO, len(users))
	for i, user := range users {
		userDTOs[i] = dto.ToAdminUserDTO(user)
	}

	count := len(userDTOs)
	c.JSON(http.StatusOK, dto.Envelope{
		Status: "success",
		Count:  &count,
		Data:   userDTOs,
	})
}

// ListProjects returns the admin project listing with owner username and
// average rating.
func (h *AdminHandler) ListProjects(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	projects, err := h.adminService.ListProjects(params.Limit, params.Offset)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch projects")
		return
	}

	projectDTOs := make([]dto.AdminProjectDTO, len(projects))
	for i, project := range projects {
		item := dto.AdminProjectDTO{
			ID:            project.ID,
			Title:         project.Title,
			OwnerID:       project.OwnerID,
			OwnerUsername: project.Owner.Username,
			CreatedAt:     project.CreatedAt,
		}
		if avg := dto.AverageRating(project.Reviews); avg != nil {
			item.AvgRating = *avg
		}
		projectDTOs[i] = item
	}

	count := len(projectDTOs)
	c.JSON(http.StatusOK, dto.Envelope{
		Status: "success",
		Count:  &count,
		Data:   projectDTOs,
	})
}

// SetUserAdmin toggles a user's admin flag.
func (h *AdminHandler) SetUserAdmin(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	type AdminUpdateRequest struct {
		IsAdmin *bool `json:"is_admin" binding:"required"`
	}

	var req AdminUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.adminService.SetAdmin(userID, *req.IsAdmin)
	if err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success("User admin status updated", dto.ToUserDTO(*user)))
}

// DeleteUser removes a user and all their associated data.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.adminService.DeleteUser(userID); err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success("User deleted successfully", gin.H{
		"id":      userID,
		"deleted": true,
	}))
}

// DeleteProject removes any project, bypassing the owner check.
func (h *AdminHandler) DeleteProject(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("project_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	if err := h.adminService.DeleteProject(projectID); err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success("Project deleted successfully", nil))
}

func respondAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, err.Error())
	}
}
