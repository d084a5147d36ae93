package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health reports liveness, whether persistence is off and how many
// sessions are connected.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"offline":   h.Hub.Offline(),
		"sessions":  h.Hub.SessionCount(),
	})
}
