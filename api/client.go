// Package api is the typed HTTP client for the Studienwege platform API.
// Every response travels in the uniform {success, message, data, timestamp}
// envelope; every failure is normalized into an *Error. The client never
// retries — refresh orchestration belongs to the session store.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/studienwege/go-client/internal/errors"
)

const refreshEndpoint = "/auth/refresh"

// TokenProvider supplies the current bearer token, or "" when none is held.
// When empty, authenticated endpoints rely on the HttpOnly cookie carried by
// the cookie jar.
type TokenProvider interface {
	AccessToken() string
}

// Config is the subset of configuration the client needs.
type Config interface {
	GetAPIBaseURL() string
	GetRequestTimeout() time.Duration
	GetRequestsPerSecond() float64
}

// Client issues requests against the platform API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenProvider
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// Option defines a function type to modify the Client instance.
type Option func(*Client)

// WithLogger sets the request logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithTokenProvider sets the bearer token source for authenticated calls.
func WithTokenProvider(tokens TokenProvider) Option {
	return func(c *Client) { c.tokens = tokens }
}

// WithHTTPClient replaces the underlying HTTP client (primarily for testing).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// New creates a Client. Cookies are always carried so any HttpOnly cookie the
// server sets (notably the refresh token) is included automatically.
func New(cfg Config, options ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errors.Wrapf(errors.ErrRequestFailed, "[api.New] config is required")
	}

	burst := int(cfg.GetRequestsPerSecond())
	if burst < 1 {
		burst = 1
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.GetAPIBaseURL(), "/"),
		limiter: rate.NewLimiter(rate.Limit(cfg.GetRequestsPerSecond()), burst),
		logger:  zerolog.Nop(),
	}

	for _, opt := range options {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: cfg.GetRequestTimeout()}
	}
	if c.httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, errors.Wrapf(err, "[api.New] cookiejar.New")
		}
		c.httpClient.Jar = jar
	}

	return c, nil
}

// BaseURL returns the resolved base URL the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// SetTokenProvider attaches the bearer token source after construction. The
// session store both drives this client and supplies its token, so one of
// the two has to be wired late.
func (c *Client) SetTokenProvider(tokens TokenProvider) { c.tokens = tokens }

// request performs a single API call and normalizes the outcome. skipAuth
// suppresses the bearer header for public endpoints.
func (c *Client) request(ctx context.Context, method, endpoint string, body any, skipAuth bool) (*Envelope, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, newNetworkError()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrapf(err, "encoding request body")
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return nil, errors.Wrapf(err, "building request")
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	if !skipAuth && c.tokens != nil {
		if token := c.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().
			Err(err).
			Str("method", method).
			Str("endpoint", endpoint).
			Str("request_id", requestID).
			Msg("transport failure")
		return nil, newNetworkError()
	}
	defer func() { _ = resp.Body.Close() }()

	var wire wireResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&wire)

	c.logger.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api request")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, c.errorFromResponse(resp.StatusCode, &wire, endpoint, skipAuth)
	}
	if decodeErr != nil {
		return nil, newRequestFailedError("Failed to parse server response", resp.StatusCode)
	}
	return wire.envelope(), nil
}

// errorFromResponse maps a non-2xx response to the error taxonomy. A 401 on
// an authenticated call that is not itself the refresh endpoint becomes the
// distinguished session-expired error; the session store decides what happens
// next.
func (c *Client) errorFromResponse(status int, wire *wireResponse, endpoint string, skipAuth bool) error {
	if status == http.StatusUnauthorized && !skipAuth && !strings.Contains(endpoint, refreshEndpoint) {
		return newSessionExpiredError()
	}
	if len(wire.Errors) > 0 {
		return newValidationError(wire.Message, status, wire.Errors)
	}
	return newRequestFailedError(wire.Message, status)
}

// Health checks the unwrapped /health endpoint.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, errors.Wrapf(err, "building request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newNetworkError()
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, newRequestFailedError("health check failed", resp.StatusCode)
	}

	var status HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, newRequestFailedError("Failed to parse server response", resp.StatusCode)
	}
	return &status, nil
}
