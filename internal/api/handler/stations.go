package handler

import (
	"errors"
	"net/http"

	"emergencyrelay/backend/internal/chathub"
	"emergencyrelay/backend/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListReports(c *gin.Context) {
	reports, err := h.Hub.Reports(c.Request.Context())
	if err != nil {
		h.hubError(c, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}

func (h *Handler) ListStations(c *gin.Context) {
	stations, err := h.Hub.Stations(c.Request.Context())
	if err != nil {
		h.hubError(c, err)
		return
	}
	c.JSON(http.StatusOK, stations)
}

// SaveStation creates or replaces the station named in the path.
func (h *Handler) SaveStation(c *gin.Context) {
	var station models.Station
	if err := c.ShouldBindJSON(&station); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	station.ID = c.Param("id")
	if err := h.validate.Struct(station); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.Hub.SaveStation(c.Request.Context(), station)
	if err != nil {
		h.hubError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *Handler) DeleteStation(c *gin.Context) {
	id := c.Param("id")
	deleted, err := h.Hub.DeleteStation(c.Request.Context(), id)
	if err != nil {
		h.hubError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "station not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) hubError(c *gin.Context, err error) {
	if errors.Is(err, chathub.ErrHubStopped) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	h.log.Warn("Hub request failed", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusGatewayTimeout, gin.H{"error": err.Error()})
}
