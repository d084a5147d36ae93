package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"

	"emergencyrelay/backend/internal/models"

	"github.com/dgraph-io/badger/v4"
)

const (
	reportPrefix  = "report:"
	messagePrefix = "message:"
	stationPrefix = "station:"
)

// BadgerStore keeps JSON documents in an embedded BadgerDB.
type BadgerStore struct {
	db  *badger.DB
	log *slog.Logger
}

func OpenBadger(path string, log *slog.Logger) (*BadgerStore, error) {
	db, err := badger.Open(badger.DefaultOptions(path).WithLoggingLevel(badger.ERROR))
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %s: %w", path, err)
	}
	return NewBadgerStore(db, log), nil
}

func NewBadgerStore(db *badger.DB, log *slog.Logger) *BadgerStore {
	return &BadgerStore{db: db, log: log}
}

// messageKey is "message:{reportId}:{unix nanos padded}:{id}" so a prefix
// scan yields each room's messages in arrival order.
func messageKey(msg models.ChatMessage) string {
	return fmt.Sprintf("%s%s:%019d:%s", messagePrefix, msg.ReportID, msg.Timestamp.UnixNano(), msg.ID)
}

func (s *BadgerStore) put(key string, value any) error {
	bytes, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

func (s *BadgerStore) SaveReport(_ context.Context, report models.Report) error {
	return s.put(reportPrefix+report.ID, report)
}

func (s *BadgerStore) SaveMessage(_ context.Context, msg models.ChatMessage) error {
	return s.put(messageKey(msg), msg)
}

func (s *BadgerStore) SaveStation(_ context.Context, station models.Station) error {
	return s.put(stationPrefix+station.ID, station)
}

func (s *BadgerStore) DeleteStation(_ context.Context, id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(stationPrefix + id))
	})
}

// scan decodes every value under prefix, in key order.
func scan[T any](ctx context.Context, db *badger.DB, prefix string) ([]T, error) {
	var out []T
	err := db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var v T
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &v)
			})
			if err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			out = append(out, v)
		}
		return nil
	})
	return out, err
}

// LoadAllReports returns every report, oldest first.
func (s *BadgerStore) LoadAllReports(ctx context.Context) ([]models.Report, error) {
	reports, err := scan[models.Report](ctx, s.db, reportPrefix)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(reports, func(a, b models.Report) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return reports, nil
}

// LoadAllMessages returns messages grouped by report, each group in arrival order.
func (s *BadgerStore) LoadAllMessages(ctx context.Context) ([]models.ChatMessage, error) {
	return scan[models.ChatMessage](ctx, s.db, messagePrefix)
}

func (s *BadgerStore) LoadAllStations(ctx context.Context) ([]models.Station, error) {
	return scan[models.Station](ctx, s.db, stationPrefix)
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
