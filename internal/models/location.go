package models

import (
	"time"
)

// Coordinate is a latitude/longitude pair. Both fields are always present.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// OptionalCoordinate holds either a Coordinate or nothing.
// The zero value is unset.
type OptionalCoordinate struct {
	value Coordinate
	set   bool
}

// SomeCoordinate wraps c in a set OptionalCoordinate.
func SomeCoordinate(c Coordinate) OptionalCoordinate {
	return OptionalCoordinate{value: c, set: true}
}

// Get returns the coordinate and whether it is set.
func (o OptionalCoordinate) Get() (Coordinate, bool) {
	return o.value, o.set
}

// IsSet reports whether a coordinate is held.
func (o OptionalCoordinate) IsSet() bool {
	return o.set
}

// LocationEvent is the message published when a device has been located and rendered.
type LocationEvent struct {
	RunID     string    `json:"run_id"`
	DeviceID  string    `json:"device_id"`
	Timestamp time.Time `json:"timestamp"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	MapFile   string    `json:"map_file"`
}
