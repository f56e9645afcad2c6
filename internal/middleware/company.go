package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/fieldnote/fieldnote-api/internal/constants"
	"github.com/fieldnote/fieldnote-api/internal/database"
	apierrors "github.com/fieldnote/fieldnote-api/internal/errors"
	"github.com/fieldnote/fieldnote-api/internal/models"
)

// LoadCurrentUser resolves the session user and stores the full record in
// context. Runs after RequireAuth.
func LoadCurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().Preload("Company").First(&user, userID).Error; err != nil {
			// Session points at a deleted user; treat as logged out
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, &user)
		c.Next()
	}
}

// RequireCompany rejects users that are not attached to a company
func RequireCompany() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := CurrentUser(c)
		if !exists || user.CompanyID == nil {
			apierrors.Forbidden(c, "Company membership required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireStaff rejects non-staff users. Runs after LoadCurrentUser.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := CurrentUser(c)
		if !exists || !user.IsStaff {
			apierrors.Forbidden(c, "Staff privileges required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser retrieves the loaded user from context
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil, false
	}
	return user, true
}
