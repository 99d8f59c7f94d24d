package models

import "time"

// RenderedMap describes a map image that has been written to disk.
type RenderedMap struct {
	RunID      string
	DeviceID   string
	Coordinate Coordinate
	Path       string
	Bytes      int64
	RenderedAt time.Time
}
