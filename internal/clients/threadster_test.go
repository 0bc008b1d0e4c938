package clients

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Sameer-09816/api/internal/config"
	"github.com/Sameer-09816/api/internal/domain"
	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func newTestFetcher(serverURL string) *threadsterFetcher {
	cfg := &config.Config{
		RetryCount:   3,
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: 5 * time.Millisecond,
	}
	fetcher := NewThreadsterFetcher(cfg).(*threadsterFetcher)
	fetcher.baseURL = serverURL + "/download/"
	return fetcher
}

func TestThreadsterFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/download/abc123" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(samplePage))
	}))
	defer server.Close()

	fetcher := newTestFetcher(server.URL)
	thread, err := fetcher.Fetch(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if thread.Username != "someuser" {
		t.Errorf("Username = %q, want someuser", thread.Username)
	}
	if len(thread.URLs) != 2 {
		t.Errorf("len(URLs) = %d, want 2", len(thread.URLs))
	}
}

func TestThreadsterFetcher_NotFoundNoRetry(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		http.NotFound(w, r)
	}))
	defer server.Close()

	fetcher := newTestFetcher(server.URL)
	_, err := fetcher.Fetch(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Fetch() error = %v, want ErrNotFound", err)
	}
	if requests != 1 {
		t.Errorf("requests = %d, want 1 (404 must not be retried)", requests)
	}
}

func TestThreadsterFetcher_RetriesServerErrors(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(samplePage))
	}))
	defer server.Close()

	fetcher := newTestFetcher(server.URL)
	thread, err := fetcher.Fetch(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if requests != 3 {
		t.Errorf("requests = %d, want 3", requests)
	}
	if thread == nil || len(thread.URLs) == 0 {
		t.Error("expected parsed thread after retries")
	}
}

func TestThreadsterFetcher_ExhaustedRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	hook := logtest.NewGlobal()
	defer hook.Reset()

	fetcher := newTestFetcher(server.URL)
	_, err := fetcher.Fetch(context.Background(), "abc123")
	if !errors.Is(err, domain.ErrUpstream) {
		t.Errorf("Fetch() error = %v, want ErrUpstream", err)
	}

	var retryLogs int
	for _, entry := range hook.AllEntries() {
		if entry.Level == log.WarnLevel && entry.Message == "threadster fetch failed, will retry" {
			retryLogs++
		}
	}
	if retryLogs != fetcher.retryCount-1 {
		t.Errorf("retry warnings = %d, want %d (no retry promised on the final attempt)", retryLogs, fetcher.retryCount-1)
	}
}

func TestThreadsterFetcher_ContextDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(samplePage))
	}))
	defer server.Close()

	fetcher := newTestFetcher(server.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := fetcher.Fetch(ctx, "abc123")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Fetch() error = %v, want DeadlineExceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 150*time.Millisecond {
		t.Errorf("Fetch() took %v, want prompt cancellation", elapsed)
	}
}
