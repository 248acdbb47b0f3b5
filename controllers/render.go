package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-orders/middlewares"
	"github.com/yeremiapane/restaurant-orders/models"
	"github.com/yeremiapane/restaurant-orders/services"
	"github.com/yeremiapane/restaurant-orders/session"
	"github.com/yeremiapane/restaurant-orders/utils"
)

const msgDatabaseError = "Database connection error"

// render executes an HTML page with the data every page expects: the
// current user and the pending flash messages.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	sess := session.Get(c)
	data["Flashes"] = sess.Flashes()
	_ = sess.Save(c)
	if id, ok := middlewares.CurrentIdentity(c); ok {
		data["User"] = id
	}
	c.HTML(status, name, data)
}

// redirectWithFlash queues a message for the next page and redirects to it.
func redirectWithFlash(c *gin.Context, location, category, message string) {
	sess := session.Get(c)
	sess.AddFlash(category, message)
	_ = sess.Save(c)
	c.Redirect(http.StatusFound, location)
}

// identity is only called behind RequireLogin.
func identity(c *gin.Context) models.Identity {
	id, _ := middlewares.CurrentIdentity(c)
	return id
}

// abortWithServiceError maps an order service error to a status page or
// JSON error.
func abortWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.AbortWithMessage(c, http.StatusNotFound, "Order not found")
	case errors.Is(err, services.ErrForbidden):
		utils.AbortWithMessage(c, http.StatusForbidden, "You do not have access to this order")
	case errors.Is(err, services.ErrEmptyOrder):
		utils.AbortWithMessage(c, http.StatusBadRequest, msgChooseItem)
	case errors.Is(err, services.ErrOrderTooLarge):
		utils.AbortWithMessage(c, http.StatusBadRequest, msgOrderTooLarge)
	case errors.Is(err, services.ErrUnavailable):
		utils.AbortWithMessage(c, http.StatusServiceUnavailable, msgDatabaseError)
	default:
		utils.ErrorLogger.Errorf("unexpected error on %s: %v", c.Request.URL.Path, err)
		utils.AbortWithMessage(c, http.StatusInternalServerError, "Internal server error")
	}
}
