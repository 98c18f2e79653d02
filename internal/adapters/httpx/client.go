// internal/adapters/httpx/client.go
package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"food_maps/internal/adapters/observability"
	"food_maps/internal/domain"
)

// Client is a rate-limited JSON client shared by the map data providers.
// One call is one attempt; retries belong to RetryPolicy.
type Client struct {
	service   string
	hc        *http.Client
	userAgent string
	rl        *rate.Limiter
}

func New(service, userAgent string, rps float64) *Client {
	if rps <= 0 {
		rps = 1
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return &Client{
		service:   service,
		hc:        &http.Client{Timeout: 60 * time.Second},
		userAgent: userAgent,
		rl:        rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// StatusError is a non-2xx reply. 429 and 5xx count as transient, 404 as not found.
type StatusError struct {
	Status     int
	RetryAfter time.Duration
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("bad status %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("bad status %d", e.Status)
}

func (e *StatusError) StatusCode() int { return e.Status }

func (e *StatusError) Is(target error) bool {
	switch target {
	case domain.ErrProviderTransient:
		return e.Status == http.StatusTooManyRequests || e.Status >= 500
	case domain.ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// GetJSON decodes the body of a GET into out. endpoint labels metrics.
func (c *Client) GetJSON(ctx context.Context, endpoint, url string, out any) error {
	return c.do(ctx, endpoint, http.MethodGet, url, nil, "", out)
}

// PostForm sends an urlencoded body and decodes the JSON reply into out.
func (c *Client) PostForm(ctx context.Context, endpoint, url, form string, out any) error {
	return c.do(ctx, endpoint, http.MethodPost, url, strings.NewReader(form), "application/x-www-form-urlencoded", out)
}

func (c *Client) do(ctx context.Context, endpoint, method, url string, body io.Reader, contentType string, out any) error {
	// client-side rate limiting
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal(c.service, endpoint, 0, time.Since(start))
		if ctx.Err() != nil {
			return ctx.Err()
		}
		// network errors are worth another attempt
		return fmt.Errorf("%w: %v", domain.ErrProviderTransient, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal(c.service, endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode %s: %v", domain.ErrMalformedResponse, endpoint, err)
		}
		return nil
	}

	// read a small error body for diagnostics
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &StatusError{
		Status:     resp.StatusCode,
		RetryAfter: retryAfter(resp),
		Body:       strings.TrimSpace(string(b)),
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}
