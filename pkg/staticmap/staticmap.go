package staticmap

import (
	"net/url"
	"strconv"
	"strings"

	"googlemaps.github.io/maps"
)

// DefaultBaseURL is the Google Static Maps endpoint.
const DefaultBaseURL = "https://maps.googleapis.com/maps/api/staticmap"

// Request holds the parameters of a static map request.
type Request struct {
	Latitude  float64
	Longitude float64
	Zoom      int
	Size      string // "WIDTHxHEIGHT"
	Marker    maps.Marker
	APIKey    string
}

// FormatLatLng renders a coordinate as "lat,lng".
// Whole numbers keep one decimal place, so 35 becomes "35.0".
func FormatLatLng(lat, lng float64) string {
	return formatDegrees(lat) + "," + formatDegrees(lng)
}

func formatDegrees(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Center returns the center parameter.
func (r Request) Center() string {
	return FormatLatLng(r.Latitude, r.Longitude)
}

// Markers returns the markers parameter: the marker style followed by the center.
func (r Request) Markers() string {
	style := r.Marker.String()
	if style == "" {
		return r.Center()
	}
	return style + "|" + r.Center()
}

// Query returns the encoded query parameters.
func (r Request) Query() url.Values {
	q := url.Values{}
	q.Set("center", r.Center())
	q.Set("zoom", strconv.Itoa(r.Zoom))
	q.Set("size", r.Size)
	q.Set("markers", r.Markers())
	q.Set("key", r.APIKey)
	return q
}

// URL returns the full request URL against baseURL.
func (r Request) URL(baseURL string) string {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return strings.TrimRight(baseURL, "?") + "?" + r.Query().Encode()
}
