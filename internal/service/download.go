package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sameer-09816/api/internal/config"
	"github.com/Sameer-09816/api/internal/domain"
	log "github.com/sirupsen/logrus"
)

type DownloadService struct {
	cfg     *config.Config
	cache   domain.ThreadCache
	fetcher domain.ContentFetcher
}

func NewDownloadService(cfg *config.Config, cache domain.ThreadCache, fetcher domain.ContentFetcher) *DownloadService {
	return &DownloadService{
		cfg:     cfg,
		cache:   cache,
		fetcher: fetcher,
	}
}

// Download resolves a Threads URL or bare post ID into its media links
// and metadata. The upstream fetch runs under the configured timeout;
// results are cached so repeat requests skip the scrape.
func (s *DownloadService) Download(ctx context.Context, urlOrID string) (*domain.Thread, error) {
	threadID := ExtractThreadID(urlOrID)
	if threadID == "" {
		return nil, fmt.Errorf("extracting id from %q: %w", urlOrID, domain.ErrInvalidInput)
	}

	if thread := s.lookupCache(ctx, threadID); thread != nil {
		return thread, nil
	}

	thread, err := s.fetchWithTimeout(ctx, threadID)
	if err != nil {
		return nil, err
	}

	s.storeInCache(ctx, threadID, thread)
	return thread, nil
}

func (s *DownloadService) lookupCache(ctx context.Context, threadID string) *domain.Thread {
	thread, err := s.cache.Get(ctx, threadID)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			log.WithFields(log.Fields{
				"threadID": threadID,
				"error":    err,
			}).Warn("cache lookup failed")
		}
		return nil
	}

	log.WithField("threadID", threadID).Debug("serving thread from cache")
	return thread
}

func (s *DownloadService) fetchWithTimeout(ctx context.Context, threadID string) (*domain.Thread, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	thread, err := s.fetcher.Fetch(ctx, threadID)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("fetching thread %s: %w", threadID, domain.ErrTimeout)
		}
		return nil, err
	}
	return thread, nil
}

// storeInCache is best effort: a failed write only costs the next
// caller a re-fetch.
func (s *DownloadService) storeInCache(ctx context.Context, threadID string, thread *domain.Thread) {
	if err := s.cache.Put(ctx, threadID, thread); err != nil {
		log.WithFields(log.Fields{
			"threadID": threadID,
			"error":    err,
		}).Warn("caching thread failed")
	}
}
