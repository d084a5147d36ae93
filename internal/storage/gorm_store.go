package storage

import (
	"context"
	"fmt"
	"log/slog"

	"emergencyrelay/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps each record kind in its own table (PostgreSQL or SQLite).
type GormStore struct {
	DB  *gorm.DB
	log *slog.Logger
}

// NewGormStore migrates the schema and wraps db.
func NewGormStore(ctx context.Context, db *gorm.DB, log *slog.Logger) (*GormStore, error) {
	err := db.WithContext(ctx).AutoMigrate(
		&models.Report{},
		&models.ChatMessage{},
		&models.Station{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return &GormStore{DB: db, log: log}, nil
}

// upsert inserts value or overwrites every column of the existing row.
func (s *GormStore) upsert(ctx context.Context, value any) error {
	return s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(value).Error
}

func (s *GormStore) SaveReport(ctx context.Context, report models.Report) error {
	return s.upsert(ctx, &report)
}

func (s *GormStore) SaveMessage(ctx context.Context, msg models.ChatMessage) error {
	return s.upsert(ctx, &msg)
}

func (s *GormStore) SaveStation(ctx context.Context, station models.Station) error {
	return s.upsert(ctx, &station)
}

func (s *GormStore) DeleteStation(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Delete(&models.Station{}, "id = ?", id).Error
}

func byTimestamp() clause.OrderByColumn {
	return clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}}
}

// LoadAllReports returns every report, oldest first.
func (s *GormStore) LoadAllReports(ctx context.Context) ([]models.Report, error) {
	var reports []models.Report
	if err := s.DB.WithContext(ctx).Order(byTimestamp()).Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// LoadAllMessages returns every chat message in arrival order.
func (s *GormStore) LoadAllMessages(ctx context.Context) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	if err := s.DB.WithContext(ctx).Order(byTimestamp()).Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *GormStore) LoadAllStations(ctx context.Context) ([]models.Station, error) {
	var stations []models.Station
	if err := s.DB.WithContext(ctx).Order("name asc").Find(&stations).Error; err != nil {
		return nil, err
	}
	return stations, nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
