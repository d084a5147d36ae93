package chathub

import "emergencyrelay/backend/internal/models"

// AddClient registers a new session and sends it the current snapshot so
// read-only viewers get data without authenticating.
func (m *ManagerService) AddClient(c Client) {
	m.Clients[c.GetSessionID()] = c
	m.sessions.Add(1)
	m.log.Info("Session connected", "session", c.GetSessionID(), "sessions", len(m.Clients))
	m.sendSnapshot(c)
}

// RemoveClient discards a session. Shared tables are left untouched.
func (m *ManagerService) RemoveClient(c Client) {
	if _, ok := m.Clients[c.GetSessionID()]; !ok {
		return
	}
	m.Rooms.Leave(c)
	delete(m.Clients, c.GetSessionID())
	m.sessions.Add(-1)
	c.Close()
	m.log.Info("Session disconnected", "session", c.GetSessionID(), "sessions", len(m.Clients))
}

// authenticate stores the session identity and replies with the snapshot.
// With a verifier configured, a supplied token overrides the asserted fields.
func (m *ManagerService) authenticate(c Client, p models.AuthenticatePayload) {
	identity := models.Identity{Email: p.Email, UserID: p.UserID, Role: p.Role}
	if p.Token != "" && m.verifier != nil {
		verified, err := m.verifier.Verify(p.Token)
		if err != nil {
			m.log.Warn("Token rejected", "session", c.GetSessionID(), "error", err)
			m.send(c, models.Outbound{Event: models.EventAuthError, Data: models.ErrorPayload{Event: models.EventAuthenticate, Error: err.Error()}})
			return
		}
		identity = verified
	}

	c.SetIdentity(identity)
	m.log.Info("Session authenticated", "session", c.GetSessionID(), "user", identity.UserID, "role", identity.Role)
	m.sendSnapshot(c)
}

func (m *ManagerService) sendSnapshot(c Client) {
	m.send(c, models.Outbound{Event: models.EventInitialReports, Data: m.Tables.Reports()})
	m.send(c, models.Outbound{Event: models.EventInitialStations, Data: m.Tables.Stations()})
}
