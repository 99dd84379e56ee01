package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	sessionCount func() int
}

// NewHealthHandler creates a health handler reporting the live session count
func NewHealthHandler(sessionCount func() int) *HealthHandler {
	return &HealthHandler{
		sessionCount: sessionCount,
	}
}

func (h *HealthHandler) Healthcheck(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"sessions": h.sessionCount(),
	})
}
