// Package handler exposes the relay over HTTP: the WebSocket endpoint, the
// health probe and the small REST surface for stations and reports.
package handler

import (
	"log/slog"

	"emergencyrelay/backend/internal/chathub"
	"emergencyrelay/backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Handler holds what the HTTP routes need from the rest of the relay.
type Handler struct {
	Hub      *chathub.ManagerService
	Cfg      config.Config
	log      *slog.Logger
	validate *validator.Validate
}

func NewHandler(hub *chathub.ManagerService, cfg config.Config, log *slog.Logger) *Handler {
	return &Handler{Hub: hub, Cfg: cfg, log: log, validate: validator.New()}
}

// NewRouter wires every route onto a gin engine.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/health", h.Health)
	r.GET("/ws", h.ServeWebSocket)

	api := r.Group("/api")
	api.GET("/session", h.IssueSession)
	api.GET("/reports", h.ListReports)
	api.GET("/stations", h.ListStations)
	api.PUT("/stations/:id", h.SaveStation)
	api.DELETE("/stations/:id", h.DeleteStation)
	return r
}
