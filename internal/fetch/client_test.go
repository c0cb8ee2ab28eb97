package fetch

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/princessupload/audience-newsletter/internal/common"
	"github.com/princessupload/audience-newsletter/internal/service"
)

// newTestClient returns a client tuned so tests never sit in backoff
// or rate-limit waits.
func newTestClient() *Client {
	return NewClientWithConfig(Config{
		RequestsPerSec: 1000,
		Burst:          1000,
		Timeout:        5 * time.Second,
		Retry: service.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: time.Millisecond,
			MaxDelay:     5 * time.Millisecond,
		},
	})
}

func TestClientGet(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("hello"))
	}))
	defer server.Close()

	body, err := newTestClient().Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if body != "hello" {
		t.Errorf("Get() = %q, want hello", body)
	}
	if !strings.Contains(gotUA, "Mozilla") {
		t.Errorf("User-Agent = %q, want a browser string", gotUA)
	}
}

func TestClientGetDecompressesGzip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		_, _ = gz.Write([]byte("compressed payload"))
		_ = gz.Close()

		w.Header().Set("Content-Encoding", "gzip")
		_, _ = w.Write(buf.Bytes())
	}))
	defer server.Close()

	body, err := newTestClient().Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if body != "compressed payload" {
		t.Errorf("Get() = %q, want decompressed payload", body)
	}
}

func TestClientGetRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("recovered"))
	}))
	defer server.Close()

	body, err := newTestClient().Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if body != "recovered" {
		t.Errorf("Get() = %q, want recovered", body)
	}
	if calls.Load() != 3 {
		t.Errorf("server saw %d requests, want 3", calls.Load())
	}
}

func TestClientGetDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestClient().Get(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Get() succeeded on a 404")
	}
	if errors.Is(err, common.ErrMaxRetries) {
		t.Errorf("Get() error = %v, 404 should not be retried", err)
	}
	if calls.Load() != 1 {
		t.Errorf("server saw %d requests, want 1", calls.Load())
	}
}

func TestClientGetExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestClient().Get(context.Background(), server.URL)
	if !errors.Is(err, common.ErrMaxRetries) {
		t.Fatalf("Get() error = %v, want ErrMaxRetries", err)
	}
	if calls.Load() != 3 {
		t.Errorf("server saw %d requests, want 3", calls.Load())
	}
}

func TestClientGetRateLimitMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClientWithConfig(Config{
		RequestsPerSec: 1000,
		Burst:          1000,
		Retry:          service.RetryOptions{MaxAttempts: 1},
	})

	_, err := client.Get(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Get() succeeded on a 429")
	}
	if !strings.Contains(err.Error(), "rate limit") {
		t.Errorf("Get() error = %v, want rate limit mention", err)
	}
}

func TestClientGetHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient().Get(ctx, "http://127.0.0.1:0/never")
	if err == nil {
		t.Fatal("Get() succeeded with cancelled context")
	}
}
