package config

import "time"

const (
	// WebSocket pumps
	WriteWait      = 10 * time.Second
	PongWait       = 60 * time.Second
	PingPeriod     = (PongWait * 9) / 10
	MaxMessageSize = 8 << 20 // chat messages may carry inline images

	// Buffers
	ClientSendBuffer = 256
	HubInboxBuffer   = 1024

	// Identity
	DevTokenTTL = 72 * time.Hour
	TokenIssuer = "emergency-relay"
)

// Roles allowed to change a report's status when role enforcement is on.
var StatusEditorRoles = []string{"admin", "responder"}
