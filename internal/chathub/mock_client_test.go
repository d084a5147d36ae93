package chathub_test

import (
	"emergencyrelay/backend/internal/models"
)

// MockClient is an in-memory chathub.Client that records outbound frames.
type MockClient struct {
	sessionID string
	identity  models.Identity
	roomID    string
	send      chan models.Outbound
	closed    bool
}

func newMockClient(sessionID string) *MockClient {
	return newMockClientWithBuffer(sessionID, 64)
}

func newMockClientWithBuffer(sessionID string, size int) *MockClient {
	return &MockClient{
		sessionID: sessionID,
		send:      make(chan models.Outbound, size),
	}
}

func (c *MockClient) GetSessionID() string                   { return c.sessionID }
func (c *MockClient) GetIdentity() models.Identity           { return c.identity }
func (c *MockClient) SetIdentity(id models.Identity)         { c.identity = id }
func (c *MockClient) GetRoomID() string                      { return c.roomID }
func (c *MockClient) SetRoomID(id string)                    { c.roomID = id }
func (c *MockClient) GetSendChannel() chan<- models.Outbound { return c.send }
func (c *MockClient) Run()                                   {}

func (c *MockClient) Close() {
	c.closed = true
	close(c.send)
}

// DrainMessages returns every frame queued so far.
func (c *MockClient) DrainMessages() []models.Outbound {
	var messages []models.Outbound
	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return messages
			}
			messages = append(messages, msg)
		default:
			return messages
		}
	}
}

// eventsNamed filters frames by event name.
func eventsNamed(frames []models.Outbound, event string) []models.Outbound {
	var out []models.Outbound
	for _, f := range frames {
		if f.Event == event {
			out = append(out, f)
		}
	}
	return out
}

func eventNames(frames []models.Outbound) []string {
	names := make([]string, 0, len(frames))
	for _, f := range frames {
		names = append(names, f.Event)
	}
	return names
}
