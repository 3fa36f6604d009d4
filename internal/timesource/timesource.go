// Package timesource provides the current time, preferring an external time API
// and falling back to the local clock when it is unreachable.
package timesource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// DefaultURL is the public endpoint queried when none is configured.
const DefaultURL = "https://worldtimeapi.org/api/ip"

// DefaultTimeout bounds the external lookup.
const DefaultTimeout = 3 * time.Second

// Clock returns the current time.
type Clock interface {
	Now(ctx context.Context) time.Time
}

// ClockFunc adapts a plain function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now(context.Context) time.Time { return f() }

// Local is the process clock.
var Local Clock = ClockFunc(time.Now)

// Error represents a failed external time lookup.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("time lookup error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("time lookup error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Remote queries a worldtimeapi-compatible endpoint.
type Remote struct {
	url      string
	client   *http.Client
	fallback Clock
	logger   *slog.Logger
}

// NewRemote returns a Remote clock. A zero timeout uses DefaultTimeout and an
// empty url uses DefaultURL. A nil logger uses slog.Default().
func NewRemote(urlStr string, timeout time.Duration, logger *slog.Logger) *Remote {
	if urlStr == "" {
		urlStr = DefaultURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Remote{
		url:      urlStr,
		client:   &http.Client{Timeout: timeout},
		fallback: Local,
		logger:   logger,
	}
}

// Now returns the remote time, or the local time when the lookup fails.
func (r *Remote) Now(ctx context.Context) time.Time {
	t, err := r.Fetch(ctx)
	if err != nil {
		r.logger.Debug("time API unavailable, using local clock", "error", err)
		return r.fallback.Now(ctx)
	}
	return t
}

type apiResponse struct {
	Datetime string `json:"datetime"`
}

// Fetch performs one lookup without fallback.
func (r *Remote) Fetch(ctx context.Context) (time.Time, error) {
	parsedURL, err := url.Parse(r.url)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return time.Time{}, &Error{URL: r.url, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return time.Time{}, &Error{URL: r.url, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return time.Time{}, &Error{URL: r.url, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return time.Time{}, &Error{URL: r.url, Message: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return time.Time{}, &Error{URL: r.url, Message: "failed to read response body", Cause: err}
	}

	var payload apiResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return time.Time{}, &Error{URL: r.url, Message: "invalid JSON response", Cause: err}
	}
	t, err := time.Parse(time.RFC3339Nano, payload.Datetime)
	if err != nil {
		return time.Time{}, &Error{URL: r.url, Message: "invalid datetime", Cause: err}
	}
	return t, nil
}
