package handler

import (
	"net/http"

	"emergencyrelay/backend/internal/auth"
	"emergencyrelay/backend/internal/config"
	"emergencyrelay/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const anonymousRole = "resident"

// IssueSession hands out a signed anonymous resident identity so that a
// client without a provider account can still authenticate. It is only
// available when a token secret is configured.
func (h *Handler) IssueSession(c *gin.Context) {
	if h.Cfg.JWTSecret == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "token issuing is disabled"})
		return
	}

	id := models.Identity{UserID: "anon-" + uuid.NewString(), Role: anonymousRole}
	token, err := auth.Issue(h.Cfg.JWTSecret, id, config.DevTokenTTL)
	if err != nil {
		h.log.Error("Failed to sign session token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "userId": id.UserID, "role": id.Role})
}
