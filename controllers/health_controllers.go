package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-orders/database"
	"github.com/yeremiapane/restaurant-orders/utils"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

// Healthz reports whether the database answers within two seconds.
func (hc *HealthController) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := database.Ping(ctx, hc.DB); err != nil {
		utils.ErrorLogger.Errorf("health check: %v", err)
		utils.RespondJSON(c, http.StatusServiceUnavailable, "database unavailable", nil)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "ok", nil)
}
