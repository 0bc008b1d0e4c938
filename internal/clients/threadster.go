package clients

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Sameer-09816/api/internal/config"
	"github.com/Sameer-09816/api/internal/domain"
	log "github.com/sirupsen/logrus"
)

const (
	threadsterBaseURL = "https://threadster.app/download/"
	userAgent         = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

type threadsterFetcher struct {
	baseURL      string
	httpClient   *http.Client
	retryCount   int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
}

// NewThreadsterFetcher returns a ContentFetcher backed by threadster.app.
// The caller controls the overall deadline through the context; the
// fetcher only spaces its retries within it.
func NewThreadsterFetcher(cfg *config.Config) domain.ContentFetcher {
	return &threadsterFetcher{
		baseURL:      threadsterBaseURL,
		httpClient:   &http.Client{},
		retryCount:   cfg.RetryCount,
		retryWaitMin: cfg.RetryWaitMin,
		retryWaitMax: cfg.RetryWaitMax,
	}
}

func (f *threadsterFetcher) Fetch(ctx context.Context, threadID string) (*domain.Thread, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < f.retryCount; attempt++ {
		if attempt > 0 {
			if err := f.waitBeforeRetry(ctx, attempt); err != nil {
				return nil, err
			}
		}

		thread, err := f.fetchOnce(ctx, threadID)
		if err == nil {
			return thread, nil
		}
		if !isRetryable(err) {
			return nil, err
		}
		lastErr = err

		if attempt+1 < f.retryCount {
			log.WithFields(log.Fields{
				"threadID": threadID,
				"attempt":  attempt + 1,
				"error":    err,
			}).Warn("threadster fetch failed, will retry")
		}
	}

	return nil, fmt.Errorf("fetching thread %s after %d attempts: %w", threadID, f.retryCount, lastErr)
}

func (f *threadsterFetcher) fetchOnce(ctx context.Context, threadID string) (*domain.Thread, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+threadID, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting threadster: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("threadster returned status %d: %w", resp.StatusCode, domain.ErrUpstream)
	}

	thread, err := ParseDownloadPage(resp.Body)
	if err != nil {
		return nil, err
	}
	return thread, nil
}

// waitBeforeRetry sleeps for an exponentially growing interval, capped
// at retryWaitMax, unless the context expires first.
func (f *threadsterFetcher) waitBeforeRetry(ctx context.Context, attempt int) error {
	wait := f.retryWaitMin << (attempt - 1)
	if wait > f.retryWaitMax {
		wait = f.retryWaitMax
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func isRetryable(err error) bool {
	if errors.Is(err, domain.ErrNotFound) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}
