package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"emergencyrelay/backend/internal/models"
)

// Mirror is the relay's only path to persistence. Writes are fire-and-forget:
// each runs in its own goroutine, failures are logged and dropped, and
// nothing is retried. In offline mode every method is a no-op.
type Mirror struct {
	store     Store
	publisher Publisher
	offline   bool
	timeout   time.Duration
	log       *slog.Logger

	wg sync.WaitGroup
}

// NewMirror wraps store. A nil store forces offline mode; publisher may be nil.
func NewMirror(store Store, publisher Publisher, offline bool, timeout time.Duration, log *slog.Logger) *Mirror {
	return &Mirror{
		store:     store,
		publisher: publisher,
		offline:   offline || store == nil,
		timeout:   timeout,
		log:       log,
	}
}

// NewOfflineMirror keeps all state in memory only.
func NewOfflineMirror(log *slog.Logger) *Mirror {
	return NewMirror(nil, nil, true, 0, log)
}

func (m *Mirror) Offline() bool { return m.offline }

func (m *Mirror) SaveReport(report models.Report) {
	m.async("save_report", report.ID, func(ctx context.Context) error {
		return m.store.SaveReport(ctx, report)
	})
}

func (m *Mirror) SaveMessage(msg models.ChatMessage) {
	m.async("save_message", msg.ID, func(ctx context.Context) error {
		return m.store.SaveMessage(ctx, msg)
	})
}

func (m *Mirror) SaveStation(station models.Station) {
	m.async("save_station", station.ID, func(ctx context.Context) error {
		return m.store.SaveStation(ctx, station)
	})
}

func (m *Mirror) DeleteStation(id string) {
	m.async("delete_station", id, func(ctx context.Context) error {
		return m.store.DeleteStation(ctx, id)
	})
}

// Publish forwards a broadcast event to the external publisher, if any.
func (m *Mirror) Publish(evt models.Outbound) {
	if m.publisher == nil {
		return
	}
	m.async("publish", evt.Event, func(ctx context.Context) error {
		return m.publisher.Publish(ctx, evt)
	})
}

func (m *Mirror) async(op, id string, fn func(ctx context.Context) error) {
	if m.offline {
		return
	}
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				m.log.Error("Persistence panicked", "op", op, "id", id, "panic", r)
			}
		}()

		ctx := context.Background()
		if m.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, m.timeout)
			defer cancel()
		}
		if err := fn(ctx); err != nil {
			m.log.Error("Persistence failed, change kept in memory only", "op", op, "id", id, "error", err)
			return
		}
		m.log.Debug("Persisted", "op", op, "id", id)
	}()
}

// Snapshot is the state loaded once at startup.
type Snapshot struct {
	Reports  []models.Report
	Messages []models.ChatMessage
	Stations []models.Station
}

// LoadAll reads the three tables fully. Offline mode yields an empty
// snapshot; a failing table is logged and loaded as empty.
func (m *Mirror) LoadAll(ctx context.Context) Snapshot {
	var snap Snapshot
	if m.offline {
		m.log.Warn("Offline mode: starting with empty tables")
		return snap
	}

	var err error
	if snap.Reports, err = m.store.LoadAllReports(ctx); err != nil {
		m.log.Error("Failed to load reports", "error", err)
	}
	if snap.Messages, err = m.store.LoadAllMessages(ctx); err != nil {
		m.log.Error("Failed to load chat messages", "error", err)
	}
	if snap.Stations, err = m.store.LoadAllStations(ctx); err != nil {
		m.log.Error("Failed to load stations", "error", err)
	}
	m.log.Info("Loaded tables from store",
		"reports", len(snap.Reports),
		"messages", len(snap.Messages),
		"stations", len(snap.Stations))
	return snap
}

// Wait blocks until every in-flight write has finished.
func (m *Mirror) Wait() {
	m.wg.Wait()
}

// Close drains pending writes and releases the store and publisher.
func (m *Mirror) Close() error {
	m.Wait()
	var errs []error
	if m.store != nil {
		if err := m.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close store: %w", err))
		}
	}
	if m.publisher != nil {
		if err := m.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close publisher: %w", err))
		}
	}
	return errors.Join(errs...)
}
