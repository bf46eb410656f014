package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/younger1612/Rd-storev1/internal/dto"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Health reports liveness plus which storage mode the process is running in.
// A nil db means the process booted degraded; a db that stops answering pings
// is reported the same way so the front end can show the banner.
func Health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		database := "degraded"
		if db != nil {
			if sqlDB, err := db.DB(); err == nil && sqlDB.PingContext(ctx) == nil {
				database = "connected"
			}
		}

		c.JSON(http.StatusOK, dto.HealthResponse{
			Status:    "ok",
			Database:  database,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}
