// Package health exposes liveness and database health endpoints.
package health

import (
	"context"
	"net/http"
	"time"

	"transition-crm/internal/db"

	"github.com/gin-gonic/gin"
)

// HealthResponse is the health endpoint payload.
type HealthResponse struct {
	Status string `json:"status"`
}

// Handler reports process liveness.
func Handler(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// DBHandler reports database reachability.
func DBHandler(database *db.Database, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		if err := database.HealthCheck(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
	}
}
