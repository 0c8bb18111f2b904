package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mealsub/internal/shared/logger"
)

const healthCheckTimeout = 2 * time.Second

// HealthHandler reports process and database liveness.
type HealthHandler struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewHealthHandler(db *gorm.DB, logger logger.Interface) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

// HealthCheck handles GET /health
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	status := gin.H{
		"status":   "healthy",
		"service":  "mealsub",
		"database": "up",
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		sqlDB, err := h.db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			h.logger.Errorw("database health check failed", "error", err)
			status["status"] = "unhealthy"
			status["database"] = "down"
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
	}

	c.JSON(http.StatusOK, status)
}
