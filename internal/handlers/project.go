package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/revxlabs/revx/internal/dto"
	apierrors "github.com/revxlabs/revx/internal/errors"
	"github.com/revxlabs/revx/internal/middleware"
	"github.com/revxlabs/revx/internal/models"
	"github.com/revxlabs/revx/internal/services"
)

// ProjectHandler coordinates project, review, and contributor endpoints.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// projectRequest is the shared create/update payload.
type projectRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Category    *string  `json:"category"`
	TagIDs      []uint64 `json:"tag_ids"`
	Images      []string `json:"images"`
}

// ListProjects returns every project, fully loaded, in creation order.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectService.List()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch projects")
		return
	}

	c.JSON(http.StatusOK, dto.Success("", dto.ToProjectDTOs(projects)))
}

// GetProject returns a single project with reviews, contributors, and tags.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	project, err := h.projectService.Get(projectID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success("", dto.ToProjectDTO(*project)))
}

// ListTags returns the tag catalog.
func (h *ProjectHandler) ListTags(c *gin.Context) {
	tags, err := h.projectService.Tags()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tags")
		return
	}

	tagDTOs := make([]dto.TagDTO, len(tags))
	for i, tag := range tags {
		tagDTOs[i] = dto.ToTagDTO(tag)
	}

	c.JSON(http.StatusOK, dto.Success("", tagDTOs))
}

// CreateProject creates a project owned by the caller.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.Create(services.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		TagIDs:      req.TagIDs,
		Images:      req.Images,
		OwnerID:     userID,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Success("Project created successfully", dto.ToProjectDTO(*project)))
}

// UpdateProject replaces project metadata. Ownership is checked by
// RequireProjectOwner before this handler runs.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	project := mustContextProject(c)
	if project == nil {
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.projectService.Update(project.ID, services.UpdateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		TagIDs:      req.TagIDs,
		Images:      req.Images,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success("Project updated successfully", dto.ToProjectDTO(*updated)))
}

// DeleteProject removes a project and all its dependent data.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	project := mustContextProject(c)
	if project == nil {
		return
	}

	if err := h.projectService.Delete(project.ID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success("Project deleted successfully", nil))
}

// AddReview attaches a review to a project.
func (h *ProjectHandler) AddReview(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	type AddReviewRequest struct {
		Review string `json:"review" binding:"required"`
		Rating string `json:"rating" binding:"required"`
	}

	var req AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	review, err := h.projectService.AddReview(projectID, userID, req.Review, req.Rating)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Success("Review submitted successfully", dto.ToReviewDTO(*review)))
}

// RemoveReview deletes a review by review id.
func (h *ProjectHandler) RemoveReview(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid review ID")
		return
	}

	caller, err := h.projectService.CallerIsAdmin(userID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	if err := h.projectService.RemoveReview(reviewID, userID, caller); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success("Review removed successfully", nil))
}

// AddContributor associates a user, resolved by username, with a project.
func (h *ProjectHandler) AddContributor(c *gin.Context) {
	project := mustContextProject(c)
	if project == nil {
		return
	}

	type AddContributorRequest struct {
		Username string `json:"username" binding:"required"`
	}

	var req AddContributorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	contributor, err := h.projectService.AddContributor(project.ID, req.Username)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Success("Contributor added successfully", dto.ToContributorDTO(*contributor)))
}

// RemoveContributor detaches a contributor from a project.
func (h *ProjectHandler) RemoveContributor(c *gin.Context) {
	project := mustContextProject(c)
	if project == nil {
		return
	}

	contributorID, err := strconv.ParseUint(c.Param("contributor_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid contributor ID")
		return
	}

	if err := h.projectService.RemoveContributor(project.ID, contributorID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success("Contributor removed successfully", nil))
}

// mustContextProject pulls the project loaded by RequireProjectOwner.
func mustContextProject(c *gin.Context) *models.Project {
	projectInterface, exists := c.Get("project")
	if !exists {
		apierrors.InternalError(c, "Project not found in context")
		return nil
	}

	project, ok := projectInterface.(models.Project)
	if !ok {
		apierrors.InternalError(c, "Invalid project data")
		return nil
	}

	return &project
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrReviewNotFound),
		errors.Is(err, services.ErrContributorNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotProjectOwner),
		errors.Is(err, services.ErrNotReviewAuthor):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrOwnerCannotReview),
		errors.Is(err, services.ErrAlreadyReviewed),
		errors.Is(err, services.ErrOwnerAsContributor),
		errors.Is(err, services.ErrAlreadyContributor):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.BadRequest(c, err.Error())
	}
}
