package partsapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultTimeout is the per-attempt HTTP timeout.
	DefaultTimeout = 10 * time.Second
	// DefaultMaxRetries is the total attempt budget per operation.
	DefaultMaxRetries = 5
	// DefaultRetryDelay is the base delay between attempts; the wait before
	// attempt n+1 is n times this value (linear backoff).
	DefaultRetryDelay = time.Second
)

// Config holds upstream gateway parameters.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// Client is a resilient HTTP client for the upstream supplier gateway. All
// configured providers share one base URL and one reusable http.Client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	maxRetries int
	retryDelay time.Duration
	debug      bool
}

// NewClient constructs a Client with sane defaults for any zero Config field.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		debug:      os.Getenv("ENV") == "development",
	}
}

// FetchCatalog retrieves a provider's catalog listing.
func (c *Client) FetchCatalog(ctx context.Context, prov Provider, page, limit int) Result {
	params := url.Values{}
	params.Set(prov.PageParam, strconv.Itoa(page))
	params.Set(prov.LimitParam, strconv.Itoa(limit))
	return c.call(ctx, prov.Name, prov.CatalogPath, params)
}

// LookupSKU retrieves a provider's record for a single identifier.
func (c *Client) LookupSKU(ctx context.Context, prov Provider, sku string) Result {
	params := url.Values{}
	params.Set(prov.IDParam, sku)
	return c.call(ctx, prov.Name, prov.LookupPath, params)
}

// call performs one provider operation with bounded retry. HTTP 400 and 404
// are terminal: retrying cannot change the outcome. Everything else (5xx,
// timeouts, connection errors) consumes one attempt, with a linear backoff
// wait of attempt x retryDelay before the next try. A 2xx response
// short-circuits the remaining budget.
func (c *Client) call(ctx context.Context, provider, path string, params url.Values) Result {
	endpoint := c.baseURL + path + "?" + params.Encode()

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		body, status, err := c.doRequest(ctx, endpoint)
		if err == nil && status >= 200 && status < 300 {
			if attempt > 1 {
				log.Info().
					Str("provider", provider).
					Int("attempt", attempt).
					Msg("provider call recovered")
			}
			return Result{Provider: provider, Success: true, Data: body, Attempts: attempt}
		}

		if err != nil {
			lastErr = err
		} else {
			lastErr = fmt.Errorf("unexpected status %d", status)
		}

		if err == nil && (status == http.StatusBadRequest || status == http.StatusNotFound) {
			log.Warn().
				Str("provider", provider).
				Int("status", status).
				Msg("provider call failed, not retrying")
			return Result{Provider: provider, Success: false, Err: lastErr.Error(), Attempts: attempt}
		}

		if ctx.Err() != nil {
			return Result{Provider: provider, Success: false, Err: lastErr.Error(), Attempts: attempt}
		}

		if attempt < c.maxRetries {
			log.Warn().
				Err(lastErr).
				Str("provider", provider).
				Int("attempt", attempt).
				Int("max_retries", c.maxRetries).
				Msg("provider call failed, retrying")
			if !sleep(ctx, time.Duration(attempt)*c.retryDelay) {
				return Result{Provider: provider, Success: false, Err: lastErr.Error(), Attempts: attempt}
			}
		}
	}

	log.Error().
		Err(lastErr).
		Str("provider", provider).
		Int("attempts", c.maxRetries).
		Msg("provider call failed after exhausting retries")
	return Result{Provider: provider, Success: false, Err: lastErr.Error(), Attempts: c.maxRetries}
}

// doRequest performs the HTTP GET and reads the full response body.
func (c *Client) doRequest(ctx context.Context, endpoint string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	if c.debug {
		log.Debug().
			Str("endpoint", endpoint).
			Int("status_code", resp.StatusCode).
			Msg("[UPSTREAM] Incoming response")
	}
	return body, resp.StatusCode, nil
}

// sleep waits for d or until ctx is done; reports whether the full wait elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
