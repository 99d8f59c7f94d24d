package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/benmeehan/tiletrack/internal/mocks"
	"github.com/benmeehan/tiletrack/internal/models"
	"github.com/benmeehan/tiletrack/internal/services"
	"github.com/benmeehan/tiletrack/pkg/tracker"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newTestDeviceLocator wires a DeviceLocator to a mocked tracking service.
func newTestDeviceLocator(target string) (*services.DeviceLocator, *mocks.MockTrackerService) {
	mockTracker := new(mocks.MockTrackerService)
	locator := services.NewDeviceLocator("user@example.com", "secret", target, mockTracker, zerolog.Nop())
	return locator, mockTracker
}

// TestDeviceLocator_TargetFound checks the coordinate of the matching device is kept.
func TestDeviceLocator_TargetFound(t *testing.T) {
	locator, mockTracker := newTestDeviceLocator("dev-1")
	mockSession := new(mocks.MockTrackerSession)

	mockTracker.On("Login", mock.Anything, "user@example.com", "secret").Return(mockSession, nil)
	mockSession.On("ListDevices", mock.Anything).Return([]tracker.Device{
		{ID: "dev-2", Name: "Wallet", Latitude: 1, Longitude: 2, HasLocation: true},
		{ID: "dev-1", Name: "Keys", Latitude: 35.0, Longitude: 135.0, HasLocation: true},
	}, nil)
	mockSession.On("Close").Return(nil).Once()

	err := locator.AuthenticateAndFetch(context.Background())
	require.NoError(t, err)

	coordinate, ok := locator.GetLocation().Get()
	assert.True(t, ok)
	assert.Equal(t, models.Coordinate{Latitude: 35.0, Longitude: 135.0}, coordinate)
	mockTracker.AssertExpectations(t)
	mockSession.AssertExpectations(t)
}

// TestDeviceLocator_LastMatchWins checks duplicate ids resolve to the last entry listed.
func TestDeviceLocator_LastMatchWins(t *testing.T) {
	locator, mockTracker := newTestDeviceLocator("dev-1")
	mockSession := new(mocks.MockTrackerSession)

	mockTracker.On("Login", mock.Anything, mock.Anything, mock.Anything).Return(mockSession, nil)
	mockSession.On("ListDevices", mock.Anything).Return([]tracker.Device{
		{ID: "dev-1", Latitude: 10, Longitude: 20, HasLocation: true},
		{ID: "dev-1", Latitude: 30, Longitude: 40, HasLocation: true},
	}, nil)
	mockSession.On("Close").Return(nil)

	require.NoError(t, locator.AuthenticateAndFetch(context.Background()))

	coordinate, ok := locator.GetLocation().Get()
	assert.True(t, ok)
	assert.Equal(t, models.Coordinate{Latitude: 30, Longitude: 40}, coordinate)
}

// TestDeviceLocator_TargetMissing checks a missing target leaves the location unset without error.
func TestDeviceLocator_TargetMissing(t *testing.T) {
	locator, mockTracker := newTestDeviceLocator("dev-9")
	mockSession := new(mocks.MockTrackerSession)

	mockTracker.On("Login", mock.Anything, mock.Anything, mock.Anything).Return(mockSession, nil)
	mockSession.On("ListDevices", mock.Anything).Return([]tracker.Device{
		{ID: "dev-1", Latitude: 35.0, Longitude: 135.0, HasLocation: true},
		{ID: "dev-9", Name: "Never seen", HasLocation: false},
	}, nil)
	mockSession.On("Close").Return(nil).Once()

	err := locator.AuthenticateAndFetch(context.Background())
	assert.NoError(t, err)
	assert.False(t, locator.GetLocation().IsSet())
	mockSession.AssertExpectations(t)
}

// TestDeviceLocator_LoginRejected checks rejected credentials map to AuthenticationError.
func TestDeviceLocator_LoginRejected(t *testing.T) {
	locator, mockTracker := newTestDeviceLocator("dev-1")
	mockTracker.On("Login", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, tracker.ErrInvalidCredentials)

	err := locator.AuthenticateAndFetch(context.Background())

	var authErr *services.AuthenticationError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "user@example.com", authErr.Email)
	assert.True(t, errors.Is(err, tracker.ErrInvalidCredentials))
	assert.False(t, locator.GetLocation().IsSet())
}

// TestDeviceLocator_LoginUnreachable checks network failures map to TransportError.
func TestDeviceLocator_LoginUnreachable(t *testing.T) {
	locator, mockTracker := newTestDeviceLocator("dev-1")
	mockTracker.On("Login", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("dial tcp: connection refused"))

	err := locator.AuthenticateAndFetch(context.Background())

	var transportErr *services.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, "tracker login", transportErr.Op)
}

// TestDeviceLocator_ListFailureClosesSession checks the session is released on early failure.
func TestDeviceLocator_ListFailureClosesSession(t *testing.T) {
	locator, mockTracker := newTestDeviceLocator("dev-1")
	mockSession := new(mocks.MockTrackerSession)

	mockTracker.On("Login", mock.Anything, mock.Anything, mock.Anything).Return(mockSession, nil)
	mockSession.On("ListDevices", mock.Anything).Return(nil, context.DeadlineExceeded)
	mockSession.On("Close").Return(nil).Once()

	err := locator.AuthenticateAndFetch(context.Background())

	var transportErr *services.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	mockSession.AssertExpectations(t)
}

// TestDeviceLocator_RefetchClearsPreviousLocation checks a second lookup does not keep a stale coordinate.
func TestDeviceLocator_RefetchClearsPreviousLocation(t *testing.T) {
	locator, mockTracker := newTestDeviceLocator("dev-1")
	mockSession := new(mocks.MockTrackerSession)

	mockTracker.On("Login", mock.Anything, mock.Anything, mock.Anything).Return(mockSession, nil)
	mockSession.On("ListDevices", mock.Anything).Return([]tracker.Device{
		{ID: "dev-1", Latitude: 1, Longitude: 1, HasLocation: true},
	}, nil).Once()
	mockSession.On("ListDevices", mock.Anything).Return([]tracker.Device{}, nil).Once()
	mockSession.On("Close").Return(nil)

	require.NoError(t, locator.AuthenticateAndFetch(context.Background()))
	assert.True(t, locator.GetLocation().IsSet())

	require.NoError(t, locator.AuthenticateAndFetch(context.Background()))
	assert.False(t, locator.GetLocation().IsSet())
}
