package models

import "encoding/json"

// Inbound events (client -> relay).
const (
	EventAuthenticate      = "authenticate"
	EventSubmitReport      = "submit_report"
	EventUpdateReport      = "update_report"
	EventJoinReportChat    = "join_report_chat"
	EventLeaveReportChat   = "leave_report_chat"
	EventReportChatMessage = "report_chat_message"
)

// Outbound events (relay -> client).
const (
	EventInitialReports    = "initial_reports"
	EventInitialStations   = "initial_stations"
	EventNewReport         = "new_report"
	EventReportSubmitted   = "report_submitted"
	EventReportUpdated     = "report_updated"
	EventReportUpdateError = "report_update_error"
	EventChatHistory       = "chat_history"
	EventNewChatMessage    = "new_chat_message"
	EventStationSaved      = "station_saved"
	EventStationDeleted    = "station_deleted"
	EventAuthError         = "auth_error"
	EventCommandRejected   = "command_rejected"
)

// Inbound is a frame read from a client. Data is decoded by the handler
// that owns the event.
type Inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Outbound is a frame written to a client.
type Outbound struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type AuthenticatePayload struct {
	Email  string `json:"email"`
	UserID string `json:"userId"`
	Role   string `json:"role"`
	Token  string `json:"token,omitempty"`
}

type UpdateReportPayload struct {
	ReportID string       `json:"reportId"`
	Status   ReportStatus `json:"status"`
	Notes    *string      `json:"notes,omitempty"`
}

type JoinChatPayload struct {
	ReportID string `json:"reportId"`
}

type ChatMessagePayload struct {
	ReportID  string `json:"reportId"`
	Text      string `json:"text"`
	UserName  string `json:"userName"`
	UserRole  string `json:"userRole"`
	ImageData string `json:"imageData,omitempty"`
}

type ReportSubmittedPayload struct {
	Success bool   `json:"success"`
	Report  Report `json:"report"`
}

type ReportUpdateErrorPayload struct {
	ReportID string `json:"reportId"`
	Error    string `json:"error"`
}

type ChatHistoryPayload struct {
	ReportID string        `json:"reportId"`
	Messages []ChatMessage `json:"messages"`
}

type StationDeletedPayload struct {
	ID string `json:"id"`
}

type ErrorPayload struct {
	Event string `json:"event"`
	Error string `json:"error"`
}
