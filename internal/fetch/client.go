// Package fetch retrieves draw results and jackpots from the public
// lottery sources: the CT Lottery RSS feeds, the Iowa Lottery results
// pages, the NY Open Data CSV export, and aggregator fallbacks.
package fetch

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/princessupload/audience-newsletter/internal/common"
	"github.com/princessupload/audience-newsletter/internal/service"
)

// browserUserAgent mirrors a desktop browser; several lottery sites
// reject requests that identify as a plain Go client.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Config tunes the fetch client.
type Config struct {
	UserAgent      string
	Retry          service.RetryOptions
	Timeout        time.Duration
	RequestsPerSec float64
	Burst          int
}

// DefaultConfig returns settings polite enough for the state lottery
// sites, which are slow and occasionally rate limit.
func DefaultConfig() Config {
	return Config{
		UserAgent:      browserUserAgent,
		Timeout:        30 * time.Second,
		RequestsPerSec: 2,
		Burst:          4,
	}
}

// Client is a shared HTTP client for all lottery sources. It rate
// limits, retries transient failures, and decompresses gzip responses.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	retry      service.RetryOptions
}

// NewClient creates a client with default settings.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a client with custom settings. Zero
// values fall back to the defaults.
func NewClientWithConfig(cfg Config) *Client {
	defaults := DefaultConfig()
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaults.UserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.RequestsPerSec <= 0 {
		cfg.RequestsPerSec = defaults.RequestsPerSec
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaults.Burst
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), cfg.Burst),
		userAgent:  cfg.UserAgent,
		retry:      cfg.Retry,
	}
}

// Get fetches a URL and returns the response body as text. Transient
// failures (network errors, 5xx, rate limits) are retried with backoff.
func (c *Client) Get(ctx context.Context, url string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for rate limit: %w", err)
	}

	var body string
	err := common.WithRetry(ctx, func() error {
		var fetchErr error
		body, fetchErr = c.fetch(ctx, url)
		return fetchErr
	}, c.retry)
	if err != nil {
		return "", err
	}
	return body, nil
}

func (c *Client) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Encoding", "gzip, deflate")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrSourceUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", fmt.Errorf("%w: %s", common.ErrRateLimit, url)
	case resp.StatusCode >= 500:
		return "", fmt.Errorf("%w: status %d from %s", common.ErrSourceUnavailable, resp.StatusCode, url)
	case resp.StatusCode != http.StatusOK:
		// 4xx responses will not improve on retry.
		return "", &common.RetryableError{
			Err:       fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url),
			Retryable: false,
		}
	}

	// Setting Accept-Encoding by hand disables the transport's
	// automatic gzip handling, so decompress here.
	reader := io.Reader(resp.Body)
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, gzErr := gzip.NewReader(resp.Body)
		if gzErr != nil {
			return "", fmt.Errorf("failed to open gzip body: %w", gzErr)
		}
		defer func() { _ = gz.Close() }()
		reader = gz
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return string(data), nil
}
