// Package ingest loads raw review datasets from local files or remote
// URLs and decodes them into raw review records.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"reviewlens/internal/config"
)

// ErrUnexpectedStatusCode indicates an HTTP response with unexpected status.
var ErrUnexpectedStatusCode = errors.New("unexpected status code")

// Fetcher retrieves raw dataset content with config-driven retry logic.
type Fetcher struct {
	client      *http.Client
	retryPolicy *config.RetryPolicy
}

// NewFetcher creates a new fetcher with default retry policy.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		retryPolicy: &config.RetryPolicy{
			MaxAttempts:       3,
			InitialDelayMs:    500,
			MaxDelayMs:        30000,
			BackoffMultiplier: 2.0,
			TimeoutSec:        30,
		},
	}
}

// NewFetcherWithConfig creates a new fetcher with a custom retry policy.
func NewFetcherWithConfig(retryPolicy *config.RetryPolicy) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: retryPolicy.GetTimeout(),
		},
		retryPolicy: retryPolicy,
	}
}

// Fetch returns the raw dataset content for a source, which is either an
// http(s) URL or a local file path.
func (f *Fetcher) Fetch(source string) (string, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return f.fetchRemote(source)
	}

	content, err := os.ReadFile(source)
	if err != nil {
		return "", fmt.Errorf("failed to read local file %s: %w", source, err)
	}

	return string(content), nil
}

func (f *Fetcher) fetchRemote(url string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= f.retryPolicy.MaxAttempts; attempt++ {
		req, err := http.NewRequest(http.MethodGet, url, http.NoBody)
		if err != nil {
			return "", fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Accept", "text/csv, text/plain")

		resp, err := f.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed (attempt %d/%d): %w", attempt, f.retryPolicy.MaxAttempts, err)
			f.backoff(attempt)

			continue
		}

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode)

			_ = resp.Body.Close()

			if isRetryableStatus(resp.StatusCode) {
				f.backoff(attempt)

				continue
			}

			return "", lastErr
		}

		body, err := io.ReadAll(resp.Body)
		closeErr := resp.Body.Close()

		if err != nil {
			lastErr = fmt.Errorf("failed to read response body: %w", err)
			f.backoff(attempt)

			continue
		}

		if closeErr != nil {
			return "", fmt.Errorf("failed to close response body: %w", closeErr)
		}

		return string(body), nil
	}

	return "", lastErr
}

func (f *Fetcher) backoff(attempt int) {
	if attempt >= f.retryPolicy.MaxAttempts {
		return
	}

	if delay := f.retryPolicy.GetRetryDelay(attempt); delay > 0 {
		time.Sleep(delay)
	}
}

// isRetryableStatus determines if we should retry based on HTTP status code.
func isRetryableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusServiceUnavailable,
		http.StatusGatewayTimeout,
		http.StatusTooManyRequests,
		http.StatusRequestTimeout:
		return true
	}

	return false
}
