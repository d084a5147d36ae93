package storage_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"emergencyrelay/backend/internal/models"
	"emergencyrelay/backend/internal/storage"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMirror_SaveReport_Async(t *testing.T) {
	store := new(MockStore)
	report := models.Report{ID: "RPT-1", Status: models.StatusPending}
	store.On("SaveReport", mock.Anything, report).Return(nil).Once()

	m := storage.NewMirror(store, nil, false, time.Second, logs.GetLoggerFromLevel(slog.LevelDebug))
	m.SaveReport(report)
	m.Wait()

	store.AssertExpectations(t)
}

func TestMirror_FailureIsSwallowed(t *testing.T) {
	store := new(MockStore)
	store.On("SaveMessage", mock.Anything, mock.AnythingOfType("models.ChatMessage")).
		Return(errors.New("connection refused")).Once()

	m := storage.NewMirror(store, nil, false, time.Second, logs.GetLoggerFromLevel(slog.LevelDebug))

	assert.NotPanics(t, func() {
		m.SaveMessage(models.ChatMessage{ID: "MSG-1", ReportID: "RPT-1"})
		m.Wait()
	})
	store.AssertExpectations(t)
}

func TestMirror_PanicInStoreIsRecovered(t *testing.T) {
	store := new(MockStore)
	store.On("DeleteStation", mock.Anything, "st-1").Run(func(mock.Arguments) {
		panic("driver bug")
	}).Return(nil)

	m := storage.NewMirror(store, nil, false, time.Second, logs.GetLoggerFromLevel(slog.LevelDebug))

	assert.NotPanics(t, func() {
		m.DeleteStation("st-1")
		m.Wait()
	})
}

func TestMirror_AppliesTimeout(t *testing.T) {
	store := new(MockStore)
	var deadlineSet bool
	store.On("SaveStation", mock.Anything, mock.AnythingOfType("models.Station")).
		Run(func(args mock.Arguments) {
			_, deadlineSet = args.Get(0).(context.Context).Deadline()
		}).Return(nil)

	m := storage.NewMirror(store, nil, false, 50*time.Millisecond, logs.GetLoggerFromLevel(slog.LevelDebug))
	m.SaveStation(models.Station{ID: "st-1"})
	m.Wait()

	assert.True(t, deadlineSet)
}

func TestMirror_OfflineIsNoop(t *testing.T) {
	store := new(MockStore)
	publisher := new(MockPublisher)

	m := storage.NewMirror(store, publisher, true, time.Second, logs.GetLoggerFromLevel(slog.LevelDebug))
	m.SaveReport(models.Report{ID: "RPT-1"})
	m.SaveMessage(models.ChatMessage{ID: "MSG-1"})
	m.SaveStation(models.Station{ID: "st-1"})
	m.DeleteStation("st-1")
	m.Publish(models.Outbound{Event: models.EventNewReport})
	snap := m.LoadAll(context.Background())
	m.Wait()

	assert.True(t, m.Offline())
	assert.Empty(t, snap.Reports)
	store.AssertNotCalled(t, "SaveReport", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "LoadAllReports", mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestMirror_NilStoreForcesOffline(t *testing.T) {
	m := storage.NewMirror(nil, nil, false, time.Second, slog.Default())

	assert.True(t, m.Offline())
	assert.NotPanics(t, func() { m.SaveReport(models.Report{ID: "RPT-1"}) })
	assert.NoError(t, m.Close())
}

func TestMirror_Publish(t *testing.T) {
	store := new(MockStore)
	publisher := new(MockPublisher)
	evt := models.Outbound{Event: models.EventNewReport, Data: models.Report{ID: "RPT-1"}}
	publisher.On("Publish", mock.Anything, evt).Return(nil).Once()

	m := storage.NewMirror(store, publisher, false, time.Second, logs.GetLoggerFromLevel(slog.LevelDebug))
	m.Publish(evt)
	m.Wait()

	publisher.AssertExpectations(t)
}

func TestMirror_LoadAll_PartialFailure(t *testing.T) {
	store := new(MockStore)
	reports := []models.Report{{ID: "RPT-1"}, {ID: "RPT-2"}}
	store.On("LoadAllReports", mock.Anything).Return(reports, nil)
	store.On("LoadAllMessages", mock.Anything).Return(nil, errors.New("timeout"))
	store.On("LoadAllStations", mock.Anything).Return([]models.Station{{ID: "st-1"}}, nil)

	m := storage.NewMirror(store, nil, false, time.Second, logs.GetLoggerFromLevel(slog.LevelDebug))
	snap := m.LoadAll(context.Background())

	assert.Equal(t, reports, snap.Reports)
	assert.Empty(t, snap.Messages)
	assert.Len(t, snap.Stations, 1)
}

func TestMirror_Close(t *testing.T) {
	store := new(MockStore)
	publisher := new(MockPublisher)
	store.On("Close").Return(nil).Once()
	publisher.On("Close").Return(errors.New("already closed")).Once()

	m := storage.NewMirror(store, publisher, false, time.Second, slog.Default())
	err := m.Close()

	assert.ErrorContains(t, err, "close publisher")
	store.AssertExpectations(t)
	publisher.AssertExpectations(t)
}
