// Package gateway is the HTTP client for the Share2care REST API. Every admin
// mutation and fetch made by the console goes through it.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/share2care/admin-console/internal/api/metrics"
	"github.com/share2care/admin-console/internal/core/domain"
	"github.com/share2care/admin-console/internal/core/ports"
)

const (
	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 10 << 20
)

// Config captures the settings for reaching the API.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// RatePerSecond caps outbound requests; zero disables pacing.
	RatePerSecond float64
	Burst         int
}

// APIError is a non-success answer from the API. Message is the API's own
// human-readable explanation.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("share2care api: status %d", e.Status)
	}
	return e.Message
}

// Unwrap maps well-known statuses onto domain errors.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ErrValidation
	}
	return nil
}

// Client talks to the Share2care REST API.
type Client struct {
	base    *url.URL
	http    *http.Client
	limiter *rate.Limiter
	log     zerolog.Logger
}

// New validates cfg and returns a ready client.
func New(cfg Config, log zerolog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("gateway: invalid base url %q", cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	limit, burst := rate.Inf, 0
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
		burst = max(cfg.Burst, 1)
	}
	return &Client{
		base:    base,
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, burst),
		log:     log,
	}, nil
}

type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := checkPath(path); err != nil {
		return err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("gateway: %s %s: %w", method, path, err)
	}

	u := c.base.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gateway: encode %s body: %w", path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("gateway: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := ports.TokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resource := resourceLabel(path)
	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.GatewayRequestDuration.WithLabelValues(method, resource).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GatewayRequestsTotal.WithLabelValues(method, resource, "transport_error").Inc()
		return fmt.Errorf("gateway: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		metrics.GatewayRequestsTotal.WithLabelValues(method, resource, "transport_error").Inc()
		return fmt.Errorf("gateway: read %s response: %w", path, err)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("gateway call")

	if resp.StatusCode >= 400 {
		outcome := "client_error"
		if resp.StatusCode >= 500 {
			outcome = "server_error"
		}
		metrics.GatewayRequestsTotal.WithLabelValues(method, resource, outcome).Inc()
		return &APIError{Status: resp.StatusCode, Message: errorMessage(raw, resp.Status)}
	}
	metrics.GatewayRequestsTotal.WithLabelValues(method, resource, "ok").Inc()

	return decode(raw, resp.StatusCode, collectionName(path), out)
}

// decode unwraps the {success, message, data} envelope when present and
// decodes the payload into out. A list wrapped in an object is looked up under
// the collection name, then "items" and "data", then the first array field in
// key order.
func decode(raw []byte, status int, collection string, out any) error {
	raw = bytes.TrimSpace(raw)
	payload := raw
	if len(raw) > 0 && raw[0] == '{' {
		var env envelope
		if err := json.Unmarshal(raw, &env); err == nil {
			if env.Success != nil && !*env.Success {
				return &APIError{Status: status, Message: firstNonEmpty(env.Message, env.Error, "request rejected")}
			}
			if env.Success != nil || len(env.Data) > 0 {
				payload = env.Data
			}
		}
	}
	if out == nil || len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return nil
	}

	err := json.Unmarshal(payload, out)
	if err == nil {
		return nil
	}
	// Lists sometimes arrive wrapped as {"users": [...], "pagination": {...}}.
	if payload[0] == '{' {
		var fields map[string]json.RawMessage
		if json.Unmarshal(payload, &fields) == nil {
			keys := []string{collection, "items", "data"}
			keys = append(keys, slices.Sorted(maps.Keys(fields))...)
			for _, k := range keys {
				v, ok := fields[k]
				if !ok {
					continue
				}
				if v = bytes.TrimSpace(v); len(v) > 0 && v[0] == '[' {
					if json.Unmarshal(v, out) == nil {
						return nil
					}
				}
			}
		}
	}
	return fmt.Errorf("gateway: decode response: %w", err)
}

func errorMessage(raw []byte, fallback string) string {
	var env envelope
	if json.Unmarshal(raw, &env) == nil {
		if msg := firstNonEmpty(env.Message, env.Error); msg != "" {
			return msg
		}
	}
	return fallback
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func resourceLabel(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) > 1 && parts[0] == "admin" {
		return parts[1]
	}
	return parts[0]
}

// collectionName is the last segment of an API path, e.g. "users".
func collectionName(path string) string {
	p := strings.Trim(path, "/")
	return p[strings.LastIndex(p, "/")+1:]
}

// checkPath rejects paths with empty, "." or ".." segments. url.PathEscape
// leaves dots alone, so an id of ".." would otherwise retarget the request
// once the URL is cleaned.
func checkPath(path string) error {
	for _, seg := range strings.Split(strings.Trim(path, "/"), "/") {
		if seg == "" || seg == "." || seg == ".." {
			return domain.Invalid("invalid id in request path")
		}
	}
	return nil
}

func itemPath(collection, id string, rest ...string) string {
	p := collection + "/" + url.PathEscape(id)
	for _, r := range rest {
		p += "/" + r
	}
	return p
}

// Ping checks that the API answers its health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
}

// IsAPIError reports whether err came back from the API with the given status.
func IsAPIError(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
