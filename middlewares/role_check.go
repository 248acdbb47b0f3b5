package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-orders/session"
	"github.com/yeremiapane/restaurant-orders/utils"
)

// RequireLogin sends anonymous browsers to the login page and answers JSON
// clients with 401.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentIdentity(c); ok {
			c.Next()
			return
		}

		if utils.WantsJSON(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.JSONResponse{
				Status:  false,
				Message: "authentication required",
			})
			return
		}

		sess := session.Get(c)
		sess.AddFlash(session.Info, "Please log in to access this page.")
		_ = sess.Save(c)
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
	}
}

// RequireAdmin must run after RequireLogin.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		if !ok || !id.IsAdmin() {
			utils.InfoLogger.WithField("path", c.Request.URL.Path).Warn("admin access refused")
			utils.AbortWithMessage(c, http.StatusForbidden, "admin access required")
			return
		}
		c.Next()
	}
}
