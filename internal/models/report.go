package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportStatus is the workflow state of an emergency report.
type ReportStatus string

const (
	StatusPending  ReportStatus = "pending"
	StatusCurrent  ReportStatus = "current"
	StatusApproved ReportStatus = "approved"
	StatusRejected ReportStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s ReportStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCurrent, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// GeoPoint is a latitude/longitude pair.
type GeoPoint struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

// Fields holds the client-supplied part of a report, keyed by JSON name.
// Values are kept as sent.
type Fields map[string]json.RawMessage

// Report is one emergency incident. ID, Status, Notes, Timestamp and
// UpdatedAt belong to the relay; everything else the client sent is kept
// in Fields and relayed untouched.
type Report struct {
	ID        string       `gorm:"primaryKey"`
	Status    ReportStatus `gorm:"index"`
	Notes     string       `gorm:"type:text"`
	Timestamp time.Time    `gorm:"index"`
	UpdatedAt *time.Time   `gorm:"autoUpdateTime:false"`
	Fields    Fields       `gorm:"serializer:json"`
}

// MarshalJSON writes the client fields and the relay fields as one flat
// object. Relay fields win on a name clash.
func (r Report) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Fields)+5)
	for key, value := range r.Fields {
		out[key] = value
	}
	out["id"] = r.ID
	out["status"] = r.Status
	out["timestamp"] = r.Timestamp
	delete(out, "updatedAt")
	if r.UpdatedAt != nil {
		out["updatedAt"] = r.UpdatedAt
	}
	if r.Notes != "" {
		out["notes"] = r.Notes
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts any JSON object. Relay fields that do not decode
// are dropped, except notes, which is then kept as a client field.
func (r *Report) UnmarshalJSON(data []byte) error {
	var raw Fields
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = Report{}
	owned := []struct {
		key    string
		target any
	}{
		{"id", &r.ID},
		{"status", &r.Status},
		{"timestamp", &r.Timestamp},
		{"updatedAt", &r.UpdatedAt},
		{"notes", &r.Notes},
	}
	for _, f := range owned {
		value, ok := raw[f.key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(value, f.target); err != nil && f.key == "notes" {
			continue
		}
		delete(raw, f.key)
	}
	if len(raw) > 0 {
		r.Fields = raw
	}
	return nil
}

// Field returns a client field as text: strings unquoted, other JSON
// values verbatim, "" when absent or null.
func (r Report) Field(key string) string {
	value, ok := r.Fields[key]
	if !ok || string(value) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(value, &s); err == nil {
		return s
	}
	return string(value)
}

// Location decodes the location field, or returns nil when it is absent,
// null or not a lat/lng object.
func (r Report) Location() *GeoPoint {
	value, ok := r.Fields["location"]
	if !ok {
		return nil
	}
	var point *GeoPoint
	if err := json.Unmarshal(value, &point); err != nil {
		return nil
	}
	return point
}

// With returns a copy of r with key set to the JSON encoding of value.
// Values that cannot be encoded leave r unchanged.
func (r Report) With(key string, value any) Report {
	raw, err := json.Marshal(value)
	if err != nil {
		return r
	}
	fields := make(Fields, len(r.Fields)+1)
	for k, v := range r.Fields {
		fields[k] = v
	}
	fields[key] = raw
	r.Fields = fields
	return r
}

// NewReportID builds a time-ordered id with a random suffix.
func NewReportID(now time.Time) string {
	return newID("RPT", now)
}

// BeforeCreate assigns an id to reports inserted without one.
func (r *Report) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = NewReportID(time.Now())
	}
	return
}

func newID(prefix string, now time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%s-%d-%s", prefix, now.UnixMilli(), random[:12])
}
