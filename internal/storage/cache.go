package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sameer-09816/api/internal/domain"
	"github.com/timshannon/bolthold"
)

type threadCache struct {
	store *bolthold.Store
	ttl   time.Duration
}

func NewThreadCache(store *bolthold.Store, ttl time.Duration) domain.ThreadCache {
	return &threadCache{store: store, ttl: ttl}
}

func (c *threadCache) Get(ctx context.Context, threadID string) (*domain.Thread, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var cached domain.CachedThread
	err := c.store.Get(threadID, &cached)
	if errors.Is(err, bolthold.ErrNotFound) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("getting cached thread: %w", err)
	}

	if cached.Expired(c.ttl) {
		return nil, domain.ErrCacheMiss
	}
	return &cached.Thread, nil
}

func (c *threadCache) Put(ctx context.Context, threadID string, thread *domain.Thread) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cached := domain.CachedThread{
		ThreadID:  threadID,
		Thread:    *thread,
		FetchedAt: time.Now(),
	}
	if err := c.store.Upsert(threadID, &cached); err != nil {
		return fmt.Errorf("upserting cached thread: %w", err)
	}
	return nil
}

func (c *threadCache) DeleteExpired(ctx context.Context, ttl time.Duration) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-ttl)
	query := bolthold.Where("FetchedAt").Lt(cutoff)

	var expired []domain.CachedThread
	if err := c.store.Find(&expired, query); err != nil {
		return 0, fmt.Errorf("finding expired threads: %w", err)
	}
	if len(expired) == 0 {
		return 0, nil
	}

	if err := c.store.DeleteMatching(&domain.CachedThread{}, query); err != nil {
		return 0, fmt.Errorf("deleting expired threads: %w", err)
	}
	return len(expired), nil
}

func (c *threadCache) Close() error {
	return c.store.Close()
}
