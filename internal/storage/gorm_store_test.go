package storage_test

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"emergencyrelay/backend/internal/config"
	"emergencyrelay/backend/internal/models"
	"emergencyrelay/backend/internal/storage"

	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) storage.Store {
	t.Helper()
	cfg := config.Config{
		StoreDriver: config.DriverSQLite,
		DatabaseURL: filepath.Join(t.TempDir(), "relay.db"),
	}
	store, err := storage.Open(context.Background(), cfg, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestGormStore_ReportUpsert(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := newSQLiteStore(t)

	at := time.Now().UTC().Truncate(time.Millisecond)
	report := models.Report{ID: "RPT-1", Status: models.StatusPending, Timestamp: at}.
		With("type", "Flood").
		With("description", "rising water").
		With("severity", 3).
		With("photoUrl", "x.png").
		With("location", models.GeoPoint{Lat: 14.65, Lng: 121.03})
	req.NoError(store.SaveReport(ctx, report))

	updated := at.Add(time.Minute)
	report.Status = models.StatusApproved
	report.UpdatedAt = &updated
	req.NoError(store.SaveReport(ctx, report))

	reports, err := store.LoadAllReports(ctx)
	req.NoError(err)
	req.Len(reports, 1)
	req.Equal(models.StatusApproved, reports[0].Status)
	req.Equal(&models.GeoPoint{Lat: 14.65, Lng: 121.03}, reports[0].Location())
	req.Equal("3", reports[0].Field("severity"))
	req.Equal("x.png", reports[0].Field("photoUrl"))
	req.NotNil(reports[0].UpdatedAt)
	req.True(updated.Equal(*reports[0].UpdatedAt))
}

func TestGormStore_ReportsOrderedByTimestamp(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := newSQLiteStore(t)

	at := time.Now().UTC()
	req.NoError(store.SaveReport(ctx, models.Report{ID: "b", Timestamp: at.Add(time.Minute)}))
	req.NoError(store.SaveReport(ctx, models.Report{ID: "a", Timestamp: at.Add(2 * time.Minute)}))
	req.NoError(store.SaveReport(ctx, models.Report{ID: "c", Timestamp: at}))

	reports, err := store.LoadAllReports(ctx)
	req.NoError(err)
	req.Equal([]string{"c", "b", "a"}, []string{reports[0].ID, reports[1].ID, reports[2].ID})
}

func TestGormStore_Messages(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := newSQLiteStore(t)

	at := time.Now().UTC()
	req.NoError(store.SaveMessage(ctx, models.ChatMessage{ID: "m2", ReportID: "RPT-1", Text: "second", Timestamp: at.Add(time.Second)}))
	req.NoError(store.SaveMessage(ctx, models.ChatMessage{ID: "m1", ReportID: "RPT-1", Text: "first", Timestamp: at, ImageData: "data:image/png;base64,AAAA"}))

	messages, err := store.LoadAllMessages(ctx)
	req.NoError(err)
	req.Len(messages, 2)
	req.Equal("first", messages[0].Text)
	req.Equal("data:image/png;base64,AAAA", messages[0].ImageData)
	req.Equal("second", messages[1].Text)
}

func TestGormStore_Stations(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := newSQLiteStore(t)

	station := models.Station{
		ID:       "st-1",
		Name:     "Barangay Fire Sub-station",
		Type:     "fire",
		Services: []string{"rescue", "ambulance"},
	}
	req.NoError(store.SaveStation(ctx, station))
	req.NoError(store.SaveStation(ctx, models.Station{ID: "st-2", Name: "Health Center", Type: "health"}))

	stations, err := store.LoadAllStations(ctx)
	req.NoError(err)
	req.Len(stations, 2)
	req.Equal([]string{"rescue", "ambulance"}, stations[0].Services)

	req.NoError(store.DeleteStation(ctx, "st-1"))
	stations, err = store.LoadAllStations(ctx)
	req.NoError(err)
	req.Len(stations, 1)
	req.Equal("st-2", stations[0].ID)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := storage.Open(context.Background(), config.Config{StoreDriver: "mongo"}, slog.Default())
	require.ErrorIs(t, err, storage.ErrUnknownDriver)
}
