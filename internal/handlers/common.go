package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apierrors "github.com/fieldnote/fieldnote-api/internal/errors"
	"github.com/fieldnote/fieldnote-api/internal/middleware"
	"github.com/fieldnote/fieldnote-api/internal/models"
)

// parseIDParam reads a numeric URL parameter. On failure it writes the 400
// response and returns false.
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// actor returns the loaded current user. On failure it writes the 401
// response and returns false.
func actor(c *gin.Context) (*models.User, bool) {
	user, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return nil, false
	}
	return user, true
}
