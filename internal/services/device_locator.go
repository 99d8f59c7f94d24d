package services

import (
	"context"

	"github.com/benmeehan/tiletrack/internal/models"
	"github.com/benmeehan/tiletrack/pkg/tracker"
	"github.com/rs/zerolog"
)

// DeviceLocator looks up the last known position of one device on the tracking service.
type DeviceLocator struct {
	// Configuration fields
	email          string
	password       string
	targetDeviceID string

	// Dependencies
	tracker tracker.Service
	logger  zerolog.Logger

	// Result of the last AuthenticateAndFetch
	location models.OptionalCoordinate
}

// NewDeviceLocator creates a new DeviceLocator instance.
func NewDeviceLocator(email, password, targetDeviceID string, trackerService tracker.Service, logger zerolog.Logger) *DeviceLocator {
	return &DeviceLocator{
		email:          email,
		password:       password,
		targetDeviceID: targetDeviceID,
		tracker:        trackerService,
		logger:         logger.With().Str("component", "device_locator").Logger(),
	}
}

// AuthenticateAndFetch logs in, lists every device and keeps the coordinate of the target device.
// The session is closed on every return path. When several entries carry the target id the
// last one wins. A missing target is not an error here; GetLocation stays unset.
func (d *DeviceLocator) AuthenticateAndFetch(ctx context.Context) error {
	d.location = models.OptionalCoordinate{}

	session, err := d.tracker.Login(ctx, d.email, d.password)
	if err != nil {
		if tracker.IsInvalidCredentials(err) {
			d.logger.Debug().Err(err).Msg("Tracking service rejected credentials")
			return &AuthenticationError{Email: d.email, Err: err}
		}
		d.logger.Debug().Err(err).Msg("Failed to open tracking session")
		return &TransportError{Op: "tracker login", Err: err}
	}
	defer func() {
		if err := session.Close(); err != nil {
			d.logger.Warn().Err(err).Msg("Failed to close tracking session")
		}
	}()

	devices, err := session.ListDevices(ctx)
	if err != nil {
		if tracker.IsInvalidCredentials(err) {
			return &AuthenticationError{Email: d.email, Err: err}
		}
		d.logger.Debug().Err(err).Msg("Failed to list devices")
		return &TransportError{Op: "list devices", Err: err}
	}

	for _, device := range devices {
		d.logger.Debug().
			Str("device_id", device.ID).
			Str("name", device.Name).
			Bool("has_location", device.HasLocation).
			Msg("Device listed")

		if device.ID != d.targetDeviceID || !device.HasLocation {
			continue
		}
		d.location = models.SomeCoordinate(models.Coordinate{
			Latitude:  device.Latitude,
			Longitude: device.Longitude,
		})
		d.logger.Info().
			Str("device_id", device.ID).
			Str("name", device.Name).
			Time("last_seen", device.LastSeen).
			Msg("Target device matched")
	}

	d.logger.Info().
		Int("devices", len(devices)).
		Str("target_device_id", d.targetDeviceID).
		Bool("found", d.location.IsSet()).
		Msg("Device lookup finished")
	return nil
}

// GetLocation returns the coordinate stored by the last AuthenticateAndFetch.
func (d *DeviceLocator) GetLocation() models.OptionalCoordinate {
	return d.location
}

// TargetDeviceID returns the configured device id.
func (d *DeviceLocator) TargetDeviceID() string {
	return d.targetDeviceID
}
