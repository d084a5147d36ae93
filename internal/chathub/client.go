package chathub

import "emergencyrelay/backend/internal/models"

// Client is one live connection (a session). The hub goroutine is the only
// caller of the identity and room accessors, so implementations need no locking.
type Client interface {
	// GetSessionID returns the id assigned when the connection was accepted.
	GetSessionID() string

	// GetIdentity returns what the session asserted at authenticate time,
	// or the zero Identity before that.
	GetIdentity() models.Identity
	SetIdentity(models.Identity)

	// GetRoomID returns the report whose chat the session is in, or "".
	GetRoomID() string
	SetRoomID(string)

	// GetSendChannel returns the channel the hub writes outbound frames to.
	GetSendChannel() chan<- models.Outbound

	// Run starts the client's pumps.
	Run()
	// Close shuts down the send side; the pumps then close the connection.
	Close()
}
