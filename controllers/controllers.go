package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lazos-social/lazos/middleware"
	"github.com/lazos-social/lazos/models"
	"github.com/lazos-social/lazos/services"
	"github.com/lazos-social/lazos/utils"
)

// getUserID extracts the authenticated user ID set by the auth middleware.
func getUserID(ctx *gin.Context) (uint, bool) {
	v, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// publicUser shapes an account for responses visible to other users: the
// email stays private.
func publicUser(user models.User) gin.H {
	return gin.H{
		"id":           user.ID,
		"username":     user.Username,
		"display_name": user.DisplayName,
		"bio":          user.Bio,
		"avatar_url":   user.AvatarURL,
		"created_at":   user.CreatedAt,
	}
}

// respondServiceError maps core sentinel errors onto the JSON envelope.
func respondServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrDuplicateUsername):
		utils.Error(ctx, http.StatusConflict, 40901, "username already exists")
	case errors.Is(err, services.ErrDuplicateEmail):
		utils.Error(ctx, http.StatusConflict, 40902, "email already exists")
	case errors.Is(err, services.ErrInvalidEmail):
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid email address")
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.Error(ctx, http.StatusUnauthorized, 40106, "invalid username or password")
	case errors.Is(err, services.ErrEmptyBody):
		utils.Error(ctx, http.StatusBadRequest, 40011, "body cannot be empty")
	case errors.Is(err, services.ErrBodyTooLong):
		utils.Error(ctx, http.StatusBadRequest, 40012, "body exceeds maximum length")
	case errors.Is(err, services.ErrSelfFollow):
		utils.Error(ctx, http.StatusBadRequest, 40013, "cannot follow yourself")
	case errors.Is(err, services.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, 40401, "not found")
	case errors.Is(err, services.ErrForbidden):
		utils.Error(ctx, http.StatusForbidden, 40301, "forbidden")
	default:
		utils.Error(ctx, http.StatusInternalServerError, 50000, "internal error")
	}
}
