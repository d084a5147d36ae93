package chathub

import (
	"slices"
	"strings"

	"emergencyrelay/backend/internal/models"
	"emergencyrelay/backend/internal/storage"

	"github.com/samber/lo"
)

// Tables is the in-memory source of truth: reports, chat messages by report
// and stations. It is owned by one ManagerService and only touched from its
// goroutine.
type Tables struct {
	reports     map[string]models.Report
	reportOrder []string
	messages    map[string][]models.ChatMessage
	stations    map[string]models.Station
}

// NewTables seeds the tables from what the store returned at startup.
func NewTables(snap storage.Snapshot) *Tables {
	order := lo.Uniq(lo.Map(snap.Reports, func(r models.Report, _ int) string { return r.ID }))
	return &Tables{
		reports:     lo.KeyBy(snap.Reports, func(r models.Report) string { return r.ID }),
		reportOrder: order,
		messages:    lo.GroupBy(snap.Messages, func(m models.ChatMessage) string { return m.ReportID }),
		stations:    lo.KeyBy(snap.Stations, func(s models.Station) string { return s.ID }),
	}
}

// Reports returns every report in insertion order.
func (t *Tables) Reports() []models.Report {
	return lo.Map(t.reportOrder, func(id string, _ int) models.Report { return t.reports[id] })
}

func (t *Tables) Report(id string) (models.Report, bool) {
	r, ok := t.reports[id]
	return r, ok
}

func (t *Tables) PutReport(r models.Report) {
	if _, ok := t.reports[r.ID]; !ok {
		t.reportOrder = append(t.reportOrder, r.ID)
	}
	t.reports[r.ID] = r
}

// Messages returns a copy of the room's log in arrival order, never nil.
func (t *Tables) Messages(reportID string) []models.ChatMessage {
	out := make([]models.ChatMessage, len(t.messages[reportID]))
	copy(out, t.messages[reportID])
	return out
}

func (t *Tables) AppendMessage(m models.ChatMessage) {
	t.messages[m.ReportID] = append(t.messages[m.ReportID], m)
}

// Stations returns every station sorted by name.
func (t *Tables) Stations() []models.Station {
	stations := lo.Values(t.stations)
	slices.SortFunc(stations, func(a, b models.Station) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return stations
}

func (t *Tables) PutStation(s models.Station) {
	t.stations[s.ID] = s
}

func (t *Tables) DeleteStation(id string) bool {
	if _, ok := t.stations[id]; !ok {
		return false
	}
	delete(t.stations, id)
	return true
}
