package chathub_test

import (
	"context"

	"emergencyrelay/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock of storage.Store.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) SaveReport(ctx context.Context, report models.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockStorage) SaveMessage(ctx context.Context, msg models.ChatMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockStorage) SaveStation(ctx context.Context, station models.Station) error {
	args := m.Called(ctx, station)
	return args.Error(0)
}

func (m *MockStorage) DeleteStation(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStorage) LoadAllReports(ctx context.Context) ([]models.Report, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Report), args.Error(1)
}

func (m *MockStorage) LoadAllMessages(ctx context.Context) ([]models.ChatMessage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatMessage), args.Error(1)
}

func (m *MockStorage) LoadAllStations(ctx context.Context) ([]models.Station, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Station), args.Error(1)
}

func (m *MockStorage) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockVerifier is a testify mock of chathub.IdentityVerifier.
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(token string) (models.Identity, error) {
	args := m.Called(token)
	return args.Get(0).(models.Identity), args.Error(1)
}

// chanNotifier forwards notified reports to a channel.
type chanNotifier chan models.Report

func (n chanNotifier) NotifyNewReport(report models.Report) {
	n <- report
}
