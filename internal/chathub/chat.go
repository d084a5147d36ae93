package chathub

import "emergencyrelay/backend/internal/models"

// joinChat moves the session into the report's room and sends it the room
// history. Later messages are queued behind the history on the same channel.
func (m *ManagerService) joinChat(c Client, reportID string) {
	m.Rooms.Join(c, reportID)
	m.send(c, models.Outbound{
		Event: models.EventChatHistory,
		Data:  models.ChatHistoryPayload{ReportID: reportID, Messages: m.Tables.Messages(reportID)},
	})
}

// sendChatMessage appends to the room log and delivers to room members only.
func (m *ManagerService) sendChatMessage(p models.ChatMessagePayload) {
	now := m.now()
	msg := models.ChatMessage{
		ID:        models.NewMessageID(now),
		ReportID:  p.ReportID,
		Text:      p.Text,
		UserName:  p.UserName,
		UserRole:  p.UserRole,
		ImageData: p.ImageData,
		Timestamp: now,
	}

	m.Tables.AppendMessage(msg)
	m.mirror.SaveMessage(msg)

	evt := models.Outbound{Event: models.EventNewChatMessage, Data: msg}
	for _, c := range m.Rooms.Members(p.ReportID) {
		m.send(c, evt)
	}
	m.mirror.Publish(evt)
}
