package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/publicsuffix"
)

// DefaultTileBaseURL is the production Tile API root.
const DefaultTileBaseURL = "https://production.tile-api.com/api/v1"

// TileOptions configures a TileClient.
type TileOptions struct {
	BaseURL    string
	ClientUUID string
	AppID      string
	AppVersion string
	Locale     string
	Timeout    time.Duration
}

// TileClient talks to the Tile tracking API.
type TileClient struct {
	opts   TileOptions
	logger zerolog.Logger
}

// NewTileClient creates a new TileClient.
func NewTileClient(opts TileOptions, logger zerolog.Logger) *TileClient {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultTileBaseURL
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")

	return &TileClient{
		opts:   opts,
		logger: logger,
	}
}

// Login registers the client and opens a cookie-backed session.
// On failure every connection opened by the attempt is released.
func (c *TileClient) Login(ctx context.Context, email, password string) (Session, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	s := &tileSession{
		client: c,
		http: &http.Client{
			Jar:       jar,
			Timeout:   c.opts.Timeout,
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
		},
	}

	clientForm := url.Values{
		"app_id":      {c.opts.AppID},
		"app_version": {c.opts.AppVersion},
		"locale":      {c.opts.Locale},
	}
	if err := s.do(ctx, http.MethodPut, "/clients/"+c.opts.ClientUUID, clientForm, nil); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to register client: %w", err)
	}

	sessionForm := url.Values{
		"email":    {email},
		"password": {password},
	}
	if err := s.do(ctx, http.MethodPost, "/clients/"+c.opts.ClientUUID+"/sessions", sessionForm, nil); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	c.logger.Debug().Str("client_uuid", c.opts.ClientUUID).Msg("Tile session established")
	return s, nil
}

type tileSession struct {
	client *TileClient
	http   *http.Client
}

// ListDevices returns every Tile on the account in the order the service lists them.
func (s *tileSession) ListDevices(ctx context.Context) ([]Device, error) {
	var states envelope[[]tileState]
	if err := s.do(ctx, http.MethodGet, "/tiles/tile_states", nil, &states); err != nil {
		return nil, fmt.Errorf("failed to list tile states: %w", err)
	}

	devices := make([]Device, 0, len(states.Result))
	for _, state := range states.Result {
		var details envelope[tileDetails]
		if err := s.do(ctx, http.MethodGet, "/tiles/"+url.PathEscape(state.TileID), nil, &details); err != nil {
			return nil, fmt.Errorf("failed to fetch tile %s: %w", state.TileID, err)
		}

		device := Device{
			ID:   state.TileID,
			Name: details.Result.Name,
		}
		if last := details.Result.LastTileState; last != nil && last.Latitude != nil && last.Longitude != nil {
			device.Latitude = *last.Latitude
			device.Longitude = *last.Longitude
			device.HasLocation = true
			device.LastSeen = time.UnixMilli(last.Timestamp).UTC()
		}
		devices = append(devices, device)
	}

	return devices, nil
}

// Close releases the connections held by the session.
func (s *tileSession) Close() error {
	s.http.CloseIdleConnections()
	return nil
}

func (s *tileSession) do(ctx context.Context, method, path string, form url.Values, out any) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, s.client.opts.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Tile_app_id", s.client.opts.AppID)
	req.Header.Set("Tile_app_version", s.client.opts.AppVersion)
	req.Header.Set("Tile_client_uuid", s.client.opts.ClientUUID)
	req.Header.Set("Accept", "application/json")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrInvalidCredentials
	}
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// StatusError is an unexpected HTTP status from the tracking service.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// IsInvalidCredentials reports whether err is a credential rejection.
func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}

var _ Service = (*TileClient)(nil)
