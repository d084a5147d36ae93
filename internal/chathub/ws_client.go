package chathub

import (
	"encoding/json"
	"time"

	"emergencyrelay/backend/internal/config"
	"emergencyrelay/backend/internal/models"

	"github.com/gorilla/websocket"
)

// WebSocketClient implements Client over a gorilla connection.
type WebSocketClient struct {
	SessionID string
	Identity  models.Identity
	RoomID    string
	Conn      *websocket.Conn
	Hub       *ManagerService
	Send      chan models.Outbound
}

func NewWebSocketClient(sessionID string, conn *websocket.Conn, hub *ManagerService) *WebSocketClient {
	return &WebSocketClient{
		SessionID: sessionID,
		Conn:      conn,
		Hub:       hub,
		Send:      make(chan models.Outbound, config.ClientSendBuffer),
	}
}

func (c *WebSocketClient) GetSessionID() string                   { return c.SessionID }
func (c *WebSocketClient) GetIdentity() models.Identity           { return c.Identity }
func (c *WebSocketClient) SetIdentity(id models.Identity)         { c.Identity = id }
func (c *WebSocketClient) GetRoomID() string                      { return c.RoomID }
func (c *WebSocketClient) SetRoomID(id string)                    { c.RoomID = id }
func (c *WebSocketClient) GetSendChannel() chan<- models.Outbound { return c.Send }

// Run starts the pumps.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close closes Send, which stops writePump; readPump stops when the
// connection is closed.
func (c *WebSocketClient) Close() {
	close(c.Send)
}

// readPump decodes frames and hands them to the hub until the connection drops.
func (c *WebSocketClient) readPump() {
	defer func() {
		select {
		case c.Hub.IncomingCh <- Envelope{Client: c, Disconnect: true}:
		case <-c.Hub.Done():
		}
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(config.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(config.PongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(config.PongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.log.Warn("Unexpected close", "session", c.SessionID, "error", err)
			}
			return
		}

		var msg models.Inbound
		if err := json.Unmarshal(message, &msg); err != nil {
			c.Hub.log.Warn("Error decoding frame", "session", c.SessionID, "error", err)
			continue
		}

		select {
		case c.Hub.IncomingCh <- Envelope{Client: c, Msg: msg}:
		case <-c.Hub.Done():
			return
		}
	}
}

// writePump writes queued frames, one JSON object per WebSocket message,
// and keeps the connection alive with pings.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(config.PingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if !ok {
				// hub closed the channel
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				c.Hub.log.Debug("Write failed", "session", c.SessionID, "error", err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
