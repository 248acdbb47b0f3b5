package middlewares

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-orders/models"
	"github.com/yeremiapane/restaurant-orders/services"
	"github.com/yeremiapane/restaurant-orders/session"
	"github.com/yeremiapane/restaurant-orders/utils"
)

const identityKey = "identity"

// UserLoader resolves the user id stored in the session.
type UserLoader interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

// AuthMiddleware reloads the session's user from the database on every
// request, so role changes and deleted accounts take effect immediately.
// Anonymous requests pass through untouched.
func AuthMiddleware(users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := session.Get(c)
		userID := sess.UserID()
		if userID == 0 {
			c.Next()
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			utils.InfoLogger.Warnf("session refers to missing user %d, clearing it", userID)
			sess.SetUserID(0)
		case err != nil:
			utils.ErrorLogger.Errorf("load session user %d: %v", userID, err)
			utils.AbortWithMessage(c, http.StatusServiceUnavailable, "Database connection error")
			return
		default:
			c.Set(identityKey, user.Identity())
		}

		c.Next()
	}
}

// CurrentIdentity returns the authenticated principal, if any.
func CurrentIdentity(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return models.Identity{}, false
	}
	id, ok := v.(models.Identity)
	return id, ok
}

// SetIdentity marks the request as authenticated as id.
func SetIdentity(c *gin.Context, id models.Identity) {
	c.Set(identityKey, id)
}
