package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/revxlabs/revx/internal/constants"
	"github.com/revxlabs/revx/internal/database"
	apierrors "github.com/revxlabs/revx/internal/errors"
	"github.com/revxlabs/revx/internal/models"
)

// RequireAdmin checks the is_admin flag of the authenticated user. It runs
// after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, userID).Error; err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if !user.IsAdmin {
			apierrors.Forbidden(c, "Admin access required")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}
