package mocks

import (
	"context"

	"github.com/benmeehan/tiletrack/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockLocator is a mock implementation of the services.Locator interface
type MockLocator struct {
	mock.Mock
}

func (m *MockLocator) AuthenticateAndFetch(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLocator) GetLocation() models.OptionalCoordinate {
	args := m.Called()
	return args.Get(0).(models.OptionalCoordinate)
}

func (m *MockLocator) TargetDeviceID() string {
	args := m.Called()
	return args.String(0)
}

// MockRenderer is a mock implementation of the services.Renderer interface
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) SetLocation(coordinate models.Coordinate) {
	m.Called(coordinate)
}

func (m *MockRenderer) Render(ctx context.Context) (models.RenderedMap, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.RenderedMap), args.Error(1)
}

// MockSink is a mock implementation of the services.Sink interface
type MockSink struct {
	mock.Mock
}

func (m *MockSink) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockSink) Deliver(ctx context.Context, rendered models.RenderedMap) error {
	args := m.Called(ctx, rendered)
	return args.Error(0)
}
