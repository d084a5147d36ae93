// Package storage persists reports, chat messages and stations. The relay
// keeps its tables in memory; everything here is a write-behind mirror that
// is read once at startup.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"emergencyrelay/backend/internal/config"
	"emergencyrelay/backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrUnknownDriver = errors.New("unknown store driver")

// Store is a document store holding the three record kinds.
type Store interface {
	SaveReport(ctx context.Context, report models.Report) error
	SaveMessage(ctx context.Context, msg models.ChatMessage) error
	SaveStation(ctx context.Context, station models.Station) error
	DeleteStation(ctx context.Context, id string) error

	LoadAllReports(ctx context.Context) ([]models.Report, error)
	LoadAllMessages(ctx context.Context) ([]models.ChatMessage, error)
	LoadAllStations(ctx context.Context) ([]models.Station, error)

	Close() error
}

// Open connects the backend selected by cfg.StoreDriver.
func Open(ctx context.Context, cfg config.Config, log *slog.Logger) (Store, error) {
	gormConfig := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	switch cfg.StoreDriver {
	case config.DriverBadger:
		return OpenBadger(cfg.BadgerPath, log)
	case config.DriverSQLite:
		db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		return NewGormStore(ctx, db, log)
	case config.DriverPostgres:
		db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to connect PostgreSQL: %w", err)
		}
		return NewGormStore(ctx, db, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.StoreDriver)
	}
}
