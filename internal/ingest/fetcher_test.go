package ingest

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"reviewlens/internal/config"
)

func fastRetryPolicy() *config.RetryPolicy {
	return &config.RetryPolicy{
		MaxAttempts:       3,
		InitialDelayMs:    1,
		MaxDelayMs:        5,
		BackoffMultiplier: 2.0,
		TimeoutSec:        5,
	}
}

func TestFetcher_LocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reviews.csv")

	if err := os.WriteFile(path, []byte("review_text,rating\nhi,5\n"), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	f := NewFetcher()

	content, err := f.Fetch(path)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if content != "review_text,rating\nhi,5\n" {
		t.Errorf("Unexpected content: %q", content)
	}
}

func TestFetcher_LocalFileMissing(t *testing.T) {
	f := NewFetcher()

	if _, err := f.Fetch("/nonexistent/reviews.csv"); err == nil {
		t.Fatal("Expected error for missing file, got nil")
	}
}

func TestFetcher_Remote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("review_text,rating\nremote,4\n"))
	}))
	defer srv.Close()

	f := NewFetcherWithConfig(fastRetryPolicy())

	content, err := f.Fetch(srv.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if content != "review_text,rating\nremote,4\n" {
		t.Errorf("Unexpected content: %q", content)
	}
}

func TestFetcher_RetryOnServerError(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)

			return
		}

		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f := NewFetcherWithConfig(fastRetryPolicy())

	content, err := f.Fetch(srv.URL)
	if err != nil {
		t.Fatalf("Fetch failed after retries: %v", err)
	}

	if content != "ok" || attempts != 3 {
		t.Errorf("Expected success on attempt 3, got content=%q attempts=%d", content, attempts)
	}
}

func TestFetcher_NoRetryOnClientError(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcherWithConfig(fastRetryPolicy())

	if _, err := f.Fetch(srv.URL); err == nil {
		t.Fatal("Expected error for 404, got nil")
	}

	if attempts != 1 {
		t.Errorf("Expected single attempt for 404, got %d", attempts)
	}
}
