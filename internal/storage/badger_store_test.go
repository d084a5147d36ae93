package storage_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"emergencyrelay/backend/internal/models"
	"emergencyrelay/backend/internal/storage"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func newBadgerStore(t *testing.T) *storage.BadgerStore {
	t.Helper()
	store, err := storage.OpenBadger(t.TempDir(), logs.GetLoggerFromLevel(slog.LevelError))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func Test_Badger_Reports_Sorted_By_Timestamp(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := newBadgerStore(t)

	at := time.Now().UTC()
	// ids sort opposite to timestamps on purpose
	req.NoError(store.SaveReport(ctx, models.Report{ID: "a", Timestamp: at.Add(time.Hour)}.With("type", "Fire")))
	req.NoError(store.SaveReport(ctx, models.Report{ID: "b", Timestamp: at}.With("type", "Flood").With("photoUrl", "x.png")))

	reports, err := store.LoadAllReports(ctx)
	req.NoError(err)
	req.Len(reports, 2)
	req.Equal("b", reports[0].ID)
	req.Equal("a", reports[1].ID)
	req.Equal("x.png", reports[0].Field("photoUrl"))
}

func Test_Badger_Report_Overwrite(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := newBadgerStore(t)

	report := models.Report{ID: "RPT-1", Status: models.StatusPending, Timestamp: time.Now().UTC()}
	req.NoError(store.SaveReport(ctx, report))
	report.Status = models.StatusRejected
	req.NoError(store.SaveReport(ctx, report))

	reports, err := store.LoadAllReports(ctx)
	req.NoError(err)
	req.Len(reports, 1)
	req.Equal(models.StatusRejected, reports[0].Status)
}

func Test_Badger_Messages_Arrival_Order_Per_Room(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := newBadgerStore(t)

	at := time.Now().UTC()
	messages := []models.ChatMessage{
		{ID: "m3", ReportID: "RPT-1", Text: "three", Timestamp: at.Add(2 * time.Second)},
		{ID: "m1", ReportID: "RPT-1", Text: "one", Timestamp: at},
		{ID: "x1", ReportID: "RPT-2", Text: "other room", Timestamp: at},
		{ID: "m2", ReportID: "RPT-1", Text: "two", Timestamp: at.Add(time.Second)},
	}
	for _, m := range messages {
		req.NoError(store.SaveMessage(ctx, m))
	}

	loaded, err := store.LoadAllMessages(ctx)
	req.NoError(err)
	req.Len(loaded, 4)

	var room1 []string
	for _, m := range loaded {
		if m.ReportID == "RPT-1" {
			room1 = append(room1, m.Text)
		}
	}
	req.Equal([]string{"one", "two", "three"}, room1)
}

func Test_Badger_Station_Delete(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := newBadgerStore(t)

	req.NoError(store.SaveStation(ctx, models.Station{ID: "st-1", Name: "Police Outpost", Type: "police"}))
	req.NoError(store.SaveStation(ctx, models.Station{ID: "st-2", Name: "Fire Station", Type: "fire"}))
	req.NoError(store.DeleteStation(ctx, "st-1"))

	stations, err := store.LoadAllStations(ctx)
	req.NoError(err)
	req.Len(stations, 1)
	req.Equal("st-2", stations[0].ID)
}
