// Package gateway implements a client for the MultiversX gateway REST API.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/ratelimit"
)

const (
	// DefaultURL is the public mainnet gateway.
	DefaultURL = "https://gateway.multiversx.com"
	// DefaultTimeout bounds a single gateway request.
	DefaultTimeout = 5 * time.Second

	maxResponseBytes = 64 << 20
)

type (
	// Metrics records metrics for gateway calls.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
	Code  string          `json:"code"`
}

// Client issues GET requests against a gateway and unwraps the response envelope.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    ratelimit.Limiter
	metrics    Metrics
}

// NewClient constructs a gateway client. A non-positive rps disables rate limiting.
func NewClient(baseURL string, timeout time.Duration, rps int, metrics Metrics) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("gateway url scheme %q not supported", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("gateway url missing host")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	limiter := ratelimit.NewUnlimited()
	if rps > 0 {
		limiter = ratelimit.New(rps)
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
		metrics:    metrics,
	}, nil
}

// Get fetches path relative to the gateway url and returns the envelope's data field.
func (c *Client) Get(ctx context.Context, path string) (data json.RawMessage, err error) {
	started := time.Now()
	defer func() {
		if c.metrics != nil {
			c.metrics.Observe(operationName(path), err, started)
		}
	}()

	fullURL := c.baseURL + "/" + strings.TrimLeft(path, "/")

	c.limiter.Take()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, &GatewayError{Path: path, URL: fullURL, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &GatewayError{Path: path, URL: fullURL, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &GatewayError{Path: path, URL: fullURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	var env envelope
	decodeErr := json.Unmarshal(body, &env)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg := http.StatusText(resp.StatusCode)
		if decodeErr == nil && env.Error != "" {
			msg = env.Error
		}
		return nil, &GatewayError{Path: path, URL: fullURL, StatusCode: resp.StatusCode, Err: errors.New(msg)}
	}
	if decodeErr != nil {
		return nil, &GatewayError{Path: path, URL: fullURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode envelope: %w", decodeErr)}
	}
	if env.Error != "" {
		return nil, &GatewayError{Path: path, URL: fullURL, StatusCode: resp.StatusCode, Err: errors.New(env.Error)}
	}

	return env.Data, nil
}

// operationName maps a gateway path to a low-cardinality metrics label.
func operationName(path string) string {
	path = strings.TrimLeft(path, "/")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	parts := strings.Split(path, "/")
	switch {
	case len(parts) >= 2 && parts[0] == "network":
		return "network_" + parts[1]
	case parts[0] == "block":
		return "block_by_nonce"
	case parts[0] == "hyperblock":
		return "hyperblock_by_nonce"
	case parts[0] == "":
		return "unknown"
	default:
		return parts[0]
	}
}
