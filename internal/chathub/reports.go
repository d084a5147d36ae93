package chathub

import (
	"emergencyrelay/backend/internal/models"
)

const errReportNotFound = "Report not found"

// submitReport stamps a new report, stores it and fans it out. The submitter
// also gets a private acknowledgment so it can swap a temporary id for the
// final one.
func (m *ManagerService) submitReport(c Client, report models.Report) {
	now := m.now()
	if report.ID == "" {
		report.ID = models.NewReportID(now)
	} else if _, taken := m.Tables.Report(report.ID); taken {
		fresh := models.NewReportID(now)
		m.log.Warn("Submitted id already in use, assigning a new one", "id", report.ID, "assigned", fresh, "session", c.GetSessionID())
		report.ID = fresh
	}
	report.Status = models.StatusPending
	report.Timestamp = now
	report.UpdatedAt = nil

	m.Tables.PutReport(report)
	m.mirror.SaveReport(report)

	m.broadcast(models.Outbound{Event: models.EventNewReport, Data: report})
	m.send(c, models.Outbound{Event: models.EventReportSubmitted, Data: models.ReportSubmittedPayload{Success: true, Report: report}})

	if m.notifier != nil {
		go m.notifier.NotifyNewReport(report)
	}
	m.log.Info("Report submitted", "report", report.ID, "type", report.Field("type"), "session", c.GetSessionID())
}

// updateReport changes a report's status (and notes). Failures are reported
// to the caller only.
func (m *ManagerService) updateReport(c Client, p models.UpdateReportPayload) {
	report, ok := m.Tables.Report(p.ReportID)
	if !ok {
		m.log.Warn("Update for unknown report", "report", p.ReportID, "session", c.GetSessionID())
		m.send(c, models.Outbound{Event: models.EventReportUpdateError, Data: models.ReportUpdateErrorPayload{ReportID: p.ReportID, Error: errReportNotFound}})
		return
	}
	if err := m.policy.Check(report.Status, p.Status); err != nil {
		m.log.Warn("Status change refused", "report", p.ReportID, "error", err)
		m.send(c, models.Outbound{Event: models.EventReportUpdateError, Data: models.ReportUpdateErrorPayload{ReportID: p.ReportID, Error: err.Error()}})
		return
	}

	now := m.now()
	report.Status = p.Status
	if p.Notes != nil {
		report.Notes = *p.Notes
	}
	report.UpdatedAt = &now

	m.Tables.PutReport(report)
	m.mirror.SaveReport(report)
	m.broadcast(models.Outbound{Event: models.EventReportUpdated, Data: report})
	m.log.Info("Report updated", "report", report.ID, "status", report.Status, "session", c.GetSessionID())
}
