package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dghubble/oauth1"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// Supported authorisation schemes for PostService.
const (
	PostAuthOAuth1 = "oauth1" // user context signed with consumer and access token secrets
	PostAuthOAuth2 = "oauth2" // user bearer token in AccessToken
)

// PostCredentials are the secrets used to authorise posts.
type PostCredentials struct {
	ConsumerKey       string
	ConsumerSecret    string
	AccessToken       string
	AccessTokenSecret string
}

// PostService publishes short text messages on behalf of a user.
type PostService struct {
	endpoint   string
	httpClient HTTPDoer
	logger     zerolog.Logger
}

// NewPostService creates a PostService using the given authorisation scheme.
// base carries transport settings such as the timeout and may be nil.
func NewPostService(ctx context.Context, endpoint, authMode string, creds PostCredentials, base *http.Client,
	logger zerolog.Logger) (*PostService, error) {

	if base == nil {
		base = &http.Client{}
	}

	var httpClient *http.Client
	switch authMode {
	case PostAuthOAuth1, "":
		ctx = context.WithValue(ctx, oauth1.HTTPClient, base)
		config := oauth1.NewConfig(creds.ConsumerKey, creds.ConsumerSecret)
		httpClient = config.Client(ctx, oauth1.NewToken(creds.AccessToken, creds.AccessTokenSecret))
		httpClient.Timeout = base.Timeout
	case PostAuthOAuth2:
		ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: creds.AccessToken, TokenType: "Bearer"})
		httpClient = oauth2.NewClient(ctx, ts)
	default:
		return nil, fmt.Errorf("unsupported post auth mode %q", authMode)
	}

	return &PostService{
		endpoint:   endpoint,
		httpClient: httpClient,
		logger:     logger.With().Str("component", "post_service").Logger(),
	}, nil
}

type postRequest struct {
	Text string `json:"text"`
}

type postResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}

// Post publishes text and returns the id assigned by the service.
func (p *PostService) Post(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(postRequest{Text: text})
	if err != nil {
		return "", fmt.Errorf("failed to serialize post: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Op: "post request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(resp.Body)
		p.logger.Debug().Int("status", resp.StatusCode).Msg("Post rejected")
		return "", &PostRequestError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(b)),
		}
	}

	var created postResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		p.logger.Warn().Err(err).Msg("Post created but response could not be decoded")
	}

	p.logger.Info().Str("id", created.Data.ID).Msg("Post published successfully")
	return created.Data.ID, nil
}
