package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/revxlabs/revx/internal/database"
	apierrors "github.com/revxlabs/revx/internal/errors"
	"github.com/revxlabs/revx/internal/models"
)

// RequireProjectOwner loads the project named by the :id parameter and
// verifies the authenticated user owns it. It runs after RequireAuth and
// stores the project in context for the handler.
func RequireProjectOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		projectIDStr := c.Param("id")
		projectID, err := strconv.ParseUint(projectIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var project models.Project
		if err := database.GetDB().First(&project, projectID).Error; err != nil {
			apierrors.NotFound(c, "Project not found")
			c.Abort()
			return
		}

		if project.OwnerID != userID {
			apierrors.Forbidden(c, "Only the project owner can perform this action")
			c.Abort()
			return
		}

		c.Set("project", project)
		c.Next()
	}
}
