package tracker

import "time"

// Device is a tracked device together with its last known position.
type Device struct {
	ID          string
	Name        string
	Latitude    float64
	Longitude   float64
	HasLocation bool // false when the service never reported a position
	LastSeen    time.Time
}

type envelope[T any] struct {
	Result T `json:"result"`
}

type tileState struct {
	TileID string `json:"tile_id"`
}

type tileDetails struct {
	TileUUID      string `json:"tile_uuid"`
	Name          string `json:"name"`
	LastTileState *struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		Timestamp int64    `json:"timestamp"` // milliseconds since epoch
	} `json:"last_tile_state"`
}
