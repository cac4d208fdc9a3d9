// Package upstream provides the typed REST client for the Pocketledger core
// API. Every call carries a static CallConfig (attempt timeout, retry count,
// response-validation flag) chosen by the action layer; the client itself
// holds no per-resource policy.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pocketledger/actions-api/internal/config"
	"go.uber.org/zap"
)

const (
	defaultInitialBackoff = 250 * time.Millisecond
	defaultMaxBackoff     = 2 * time.Second
	defaultBackoffFactor  = 2.0

	defaultHealthCheckTimeout = 5 * time.Second

	// maxErrorBodyBytes caps how much of an upstream error body is read
	// for the error detail
	maxErrorBodyBytes = 4096
)

// CallConfig is the static configuration an action forwards with a call
type CallConfig struct {
	// Timeout bounds each attempt, not the call as a whole
	Timeout time.Duration
	// MaxRetries is the number of additional attempts after the first
	MaxRetries int
	// ValidateResponse runs struct validation over the decoded payload
	ValidateResponse bool
}

// Client is the HTTP client for the core API. Safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	validate   *validator.Validate
	logger     *zap.Logger
}

// HealthStatus reports the reachability of the core API
type HealthStatus struct {
	Status  string        `json:"status"`
	Latency time.Duration `json:"latency_ms"`
	Error   string        `json:"error,omitempty"`
}

// NewClient creates a core API client from configuration
func NewClient(cfg *config.UpstreamConfig, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("upstream base URL is required")
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid upstream base URL: %w", err)
	}

	transport := &http.Transport{
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConns,
		IdleConnTimeout:     90 * time.Second,
	}

	logger.Info("Initializing upstream client",
		zap.String("base_url", baseURL),
		zap.Int("query_timeout_seconds", cfg.QueryTimeout),
		zap.Int("mutation_timeout_seconds", cfg.MutationTimeout),
		zap.Bool("validate_responses", cfg.ValidateResponses),
	)

	return &Client{
		baseURL:   baseURL,
		apiKey:    cfg.ApiKey,
		userAgent: cfg.UserAgent,
		httpClient: &http.Client{
			Transport: transport,
			// Per-attempt deadlines come from the CallConfig via context
		},
		validate: validator.New(),
		logger:   logger,
	}, nil
}

// do executes one upstream call with the given static configuration.
// The body, when non-nil, is marshalled to JSON once and replayed on each
// attempt. On success the response is decoded into out (which may be nil
// for 204 responses). Transient failures (network errors, 429, 5xx) are
// retried up to cfg.MaxRetries times with capped exponential backoff;
// any other non-2xx status returns an *APIStatusError without retrying.
func (c *Client) do(ctx context.Context, cfg CallConfig, method, path string, query url.Values, body interface{}, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	attempts := cfg.MaxRetries + 1
	backoff := defaultInitialBackoff

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff = min(time.Duration(float64(backoff)*defaultBackoffFactor), defaultMaxBackoff)
			c.logger.Debug("retrying upstream call",
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", attempts),
			)
		}

		done, err := c.attempt(ctx, cfg, method, endpoint, payload, out)
		if done {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("upstream call failed after %d attempts: %w", attempts, lastErr)
}

// attempt performs a single request. The bool result reports whether the
// outcome is final (success or permanent failure).
func (c *Client) attempt(ctx context.Context, cfg CallConfig, method, endpoint string, payload []byte, out interface{}) (bool, error) {
	attemptCtx := ctx
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(attemptCtx, method, endpoint, bodyReader)
	if err != nil {
		return true, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-Service-Key", c.apiKey)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Parent context cancellation is final; attempt timeouts and other
		// transport failures are transient
		if ctx.Err() != nil {
			return true, ctx.Err()
		}
		c.logger.Warn("upstream request failed",
			zap.String("method", method),
			zap.String("url", endpoint),
			zap.Error(err),
		)
		return false, err
	}
	defer resp.Body.Close()

	c.logger.Debug("upstream response",
		zap.String("method", method),
		zap.String("url", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil || resp.StatusCode == http.StatusNoContent {
			return true, nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return true, fmt.Errorf("failed to decode upstream response: %w", err)
		}
		if cfg.ValidateResponse {
			if err := c.validateResponse(out); err != nil {
				return true, fmt.Errorf("upstream response failed validation: %w", err)
			}
		}
		return true, nil

	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		// Transient: retry
		return false, newStatusError(resp, method)

	default:
		// Permanent client error
		return true, newStatusError(resp, method)
	}
}

// validateResponse runs struct validation over the decoded payload.
// Slices are validated element-wise since validator.Struct rejects
// non-struct top-level values.
func (c *Client) validateResponse(out interface{}) error {
	switch v := out.(type) {
	case validatable:
		return v.validateWith(c.validate)
	default:
		if err := c.validate.Struct(out); err != nil {
			if _, ok := err.(*validator.InvalidValidationError); ok {
				// Non-struct payloads (e.g. raw maps) are not validated
				return nil
			}
			return err
		}
		return nil
	}
}

// validatable lets envelope types validate their elements
type validatable interface {
	validateWith(v *validator.Validate) error
}

// HealthCheck probes the core API health endpoint
func (c *Client) HealthCheck(ctx context.Context) *HealthStatus {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultHealthCheckTimeout)
		defer cancel()
	}

	start := time.Now()
	err := c.do(ctx, CallConfig{Timeout: defaultHealthCheckTimeout}, http.MethodGet, "/health/", nil, nil, nil)
	latency := time.Since(start)

	status := &HealthStatus{Latency: latency}
	if err != nil {
		c.logger.Warn("upstream health check failed",
			zap.Error(err),
			zap.Duration("latency", latency),
		)
		status.Status = "unhealthy"
		status.Error = err.Error()
	} else {
		status.Status = "healthy"
	}

	return status
}

// BaseURL returns the configured core API root
func (c *Client) BaseURL() string {
	return c.baseURL
}
