package mocks

import (
	"context"

	"github.com/benmeehan/tiletrack/pkg/tracker"
	"github.com/stretchr/testify/mock"
)

// MockTrackerService is a mock implementation of the tracker.Service interface
type MockTrackerService struct {
	mock.Mock
}

func (m *MockTrackerService) Login(ctx context.Context, email, password string) (tracker.Session, error) {
	args := m.Called(ctx, email, password)
	session, _ := args.Get(0).(tracker.Session)
	return session, args.Error(1)
}

// MockTrackerSession is a mock implementation of the tracker.Session interface
type MockTrackerSession struct {
	mock.Mock
}

func (m *MockTrackerSession) ListDevices(ctx context.Context) ([]tracker.Device, error) {
	args := m.Called(ctx)
	devices, _ := args.Get(0).([]tracker.Device)
	return devices, args.Error(1)
}

func (m *MockTrackerSession) Close() error {
	args := m.Called()
	return args.Error(0)
}
