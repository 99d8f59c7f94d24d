package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/benmeehan/tiletrack/internal/models"
	"github.com/benmeehan/tiletrack/pkg/file"
	"github.com/benmeehan/tiletrack/pkg/staticmap"
	"github.com/rs/zerolog"
	"googlemaps.github.io/maps"
)

// HTTPDoer is the subset of *http.Client used by the services.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// MapRendererOptions holds the fixed parameters of every map request.
type MapRendererOptions struct {
	BaseURL    string
	APIKey     string
	Zoom       int
	Size       string
	Marker     maps.Marker
	OutputPath string
}

// MapRenderer fetches a static map centered on a coordinate and writes it to disk.
type MapRenderer struct {
	opts MapRendererOptions

	httpClient HTTPDoer
	fileClient file.FileOperations
	logger     zerolog.Logger

	location models.OptionalCoordinate
}

// NewMapRenderer creates a new MapRenderer instance.
func NewMapRenderer(opts MapRendererOptions, httpClient HTTPDoer, fileClient file.FileOperations, logger zerolog.Logger) *MapRenderer {
	return &MapRenderer{
		opts:       opts,
		httpClient: httpClient,
		fileClient: fileClient,
		logger:     logger.With().Str("component", "map_renderer").Logger(),
	}
}

// SetLocation sets the coordinate to render, replacing any previous one.
func (m *MapRenderer) SetLocation(coordinate models.Coordinate) {
	m.location = models.SomeCoordinate(coordinate)
}

// Request returns the map request for the current location.
func (m *MapRenderer) Request() (staticmap.Request, error) {
	coordinate, ok := m.location.Get()
	if !ok {
		return staticmap.Request{}, &LocationNotSetError{}
	}

	return staticmap.Request{
		Latitude:  coordinate.Latitude,
		Longitude: coordinate.Longitude,
		Zoom:      m.opts.Zoom,
		Size:      m.opts.Size,
		Marker:    m.opts.Marker,
		APIKey:    m.opts.APIKey,
	}, nil
}

// Render downloads the map image and writes it to the output path.
// The output file is only replaced after a 200 response has been read in full.
func (m *MapRenderer) Render(ctx context.Context) (models.RenderedMap, error) {
	mapRequest, err := m.Request()
	if err != nil {
		return models.RenderedMap{}, err
	}
	coordinate, _ := m.location.Get()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mapRequest.URL(m.opts.BaseURL), nil)
	if err != nil {
		return models.RenderedMap{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		m.logger.Debug().Err(err).Msg("Map request failed")
		return models.RenderedMap{}, &TransportError{Op: "map request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Body is diagnostic only; a failed read must not hide the status.
		body, _ := io.ReadAll(resp.Body)
		m.logger.Debug().
			Int("status", resp.StatusCode).
			Str("center", mapRequest.Center()).
			Msg("Map service returned an error")
		return models.RenderedMap{}, &RenderRequestError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.RenderedMap{}, &TransportError{Op: "read map response", Err: err}
	}

	if err := m.fileClient.WriteFileAtomic(m.opts.OutputPath, payload, 0644); err != nil {
		m.logger.Debug().Err(err).Str("path", m.opts.OutputPath).Msg("Failed to write map image")
		return models.RenderedMap{}, &StorageError{Path: m.opts.OutputPath, Err: err}
	}

	m.logger.Info().
		Str("center", mapRequest.Center()).
		Int("zoom", mapRequest.Zoom).
		Str("path", m.opts.OutputPath).
		Int("bytes", len(payload)).
		Msg("Map image written")

	return models.RenderedMap{
		Coordinate: coordinate,
		Path:       m.opts.OutputPath,
		Bytes:      int64(len(payload)),
		RenderedAt: time.Now().UTC(),
	}, nil
}
