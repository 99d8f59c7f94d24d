package tracker

import (
	"context"
	"errors"
)

// ErrInvalidCredentials is returned when the tracking service rejects a login.
var ErrInvalidCredentials = errors.New("tracking service rejected credentials")

// Service opens authenticated sessions against a tracking service.
type Service interface {
	Login(ctx context.Context, email, password string) (Session, error)
}

// Session is an authenticated connection to a tracking service.
// Close must be called once the session is no longer needed.
type Session interface {
	ListDevices(ctx context.Context) ([]Device, error)
	Close() error
}
