package chathub

import (
	"context"

	"emergencyrelay/backend/internal/models"
)

// Reports returns a copy of the report table, read on the hub goroutine.
func (m *ManagerService) Reports(ctx context.Context) ([]models.Report, error) {
	var reports []models.Report
	if err := m.Do(ctx, func() { reports = m.Tables.Reports() }); err != nil {
		return nil, err
	}
	return reports, nil
}

func (m *ManagerService) Stations(ctx context.Context) ([]models.Station, error) {
	var stations []models.Station
	if err := m.Do(ctx, func() { stations = m.Tables.Stations() }); err != nil {
		return nil, err
	}
	return stations, nil
}

// SaveStation creates or replaces a station and tells every session.
func (m *ManagerService) SaveStation(ctx context.Context, station models.Station) (models.Station, error) {
	var saved models.Station
	err := m.Do(ctx, func() {
		saved = station
		saved.UpdatedAt = m.now()
		m.Tables.PutStation(saved)
		m.mirror.SaveStation(saved)
		m.broadcast(models.Outbound{Event: models.EventStationSaved, Data: saved})
	})
	if err != nil {
		return models.Station{}, err
	}
	return saved, nil
}

// DeleteStation reports false when the id is unknown.
func (m *ManagerService) DeleteStation(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := m.Do(ctx, func() {
		if deleted = m.Tables.DeleteStation(id); !deleted {
			return
		}
		m.mirror.DeleteStation(id)
		m.broadcast(models.Outbound{Event: models.EventStationDeleted, Data: models.StationDeletedPayload{ID: id}})
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}
