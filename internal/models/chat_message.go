package models

import (
	"time"

	"gorm.io/gorm"
)

// ChatMessage is one entry of a report's chat room. ReportID is not checked
// against the report table, so temporary client ids are accepted.
type ChatMessage struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	ReportID  string    `gorm:"not null;index:idx_report_msg" json:"reportId"`
	Text      string    `gorm:"type:text" json:"text"`
	UserName  string    `json:"userName"`
	UserRole  string    `json:"userRole"`
	ImageData string    `gorm:"type:text" json:"imageData,omitempty"`
	Timestamp time.Time `gorm:"index:idx_report_msg" json:"timestamp"`
}

// NewMessageID builds a unique chat message id.
func NewMessageID(now time.Time) string {
	return newID("MSG", now)
}

// BeforeCreate assigns an id to messages inserted without one.
func (m *ChatMessage) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = NewMessageID(time.Now())
	}
	return
}
