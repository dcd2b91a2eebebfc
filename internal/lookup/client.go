// Package lookup is the shared HTTP plumbing for the public lookup services
// (fueleconomy.gov vehicle menus and Nominatim location search): a pooled
// client, a per-service rate limiter and the User-Agent those services require.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// maxBodyBytes caps how much of an upstream response is read.
const maxBodyBytes = 4 << 20

// ErrUpstream marks a non-2xx response from a lookup service.
var ErrUpstream = errors.New("lookup service error")

// StatusError carries the upstream status code.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s returned %d", ErrUpstream, e.URL, e.StatusCode)
}

func (e *StatusError) Unwrap() error { return ErrUpstream }

// Options configures a Client.
type Options struct {
	// Service names the upstream in logs, e.g. "vehicle" or "geocode".
	Service           string
	UserAgent         string
	RequestsPerSecond float64
	Timeout           time.Duration

	// HTTPClient overrides the pooled client, mainly for tests.
	HTTPClient *http.Client
}

// Client performs rate-limited GET requests against a single service.
type Client struct {
	service   string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
}

// NewClient builds a Client. A non-positive rate disables limiting.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
			Timeout: timeout,
		}
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	return &Client{
		service:   opts.Service,
		userAgent: opts.UserAgent,
		http:      httpClient,
		limiter:   rate.NewLimiter(limit, 1),
	}
}

// Get fetches url and returns the body of a 2xx response. It waits on the
// rate limiter first, so a cancelled ctx returns before any request is sent.
func (c *Client) Get(ctx context.Context, url string, accept string) ([]byte, error) {
	log := zerolog.Ctx(ctx).With().Str("service", c.service).Str("url", url).Logger()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for %s rate limit: %w", c.service, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", c.service, err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("lookup request failed")
		return nil, fmt.Errorf("%s request: %w", c.service, err)
	}
	defer resp.Body.Close()

	log.Debug().Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("lookup response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn().Int("status", resp.StatusCode).Msg("lookup service returned an error")
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", c.service, err)
	}
	return body, nil
}
