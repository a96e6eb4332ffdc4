package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tourbook/internal/middleware"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

// Check reports process and database liveness.
func (h *HealthHandler) Check(c *gin.Context) {
	db := middleware.MustDB(c)

	sqlDB, err := db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "error",
			"message": "database unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
