package handler

import (
	"net/http"

	"emergencyrelay/backend/internal/chathub"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

func (h *Handler) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || h.Cfg.OriginAllowed(origin)
		},
	}
}

// ServeWebSocket upgrades the request and hands the session to the hub.
// Identity is not required to connect; clients send authenticate later.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	upgrader := h.upgrader()
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		h.log.Warn("WebSocket upgrade failed", "remote", c.ClientIP(), "error", err)
		return
	}

	client := chathub.NewWebSocketClient(uuid.NewString(), conn, h.Hub)

	select {
	case h.Hub.RegisterCh <- client:
	case <-h.Hub.Done():
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
		_ = conn.Close()
		return
	}

	client.Run()
}
