package storage_test

import (
	"context"

	"emergencyrelay/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStore is a testify mock of storage.Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) SaveReport(ctx context.Context, report models.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockStore) SaveMessage(ctx context.Context, msg models.ChatMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockStore) SaveStation(ctx context.Context, station models.Station) error {
	args := m.Called(ctx, station)
	return args.Error(0)
}

func (m *MockStore) DeleteStation(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) LoadAllReports(ctx context.Context) ([]models.Report, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Report), args.Error(1)
}

func (m *MockStore) LoadAllMessages(ctx context.Context) ([]models.ChatMessage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatMessage), args.Error(1)
}

func (m *MockStore) LoadAllStations(ctx context.Context) ([]models.Station, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Station), args.Error(1)
}

func (m *MockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockPublisher is a testify mock of storage.Publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, evt models.Outbound) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
