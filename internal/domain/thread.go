package domain

import (
	"context"
	"time"
)

// Thread holds the media links and author metadata extracted for a
// single Threads post.
type Thread struct {
	Avatar   string
	Username string
	Caption  string
	URLs     []string
}

// CachedThread is a Thread persisted between requests, keyed by the
// post ID it was resolved from.
type CachedThread struct {
	ThreadID  string
	Thread    Thread
	FetchedAt time.Time `boltholdIndex:"FetchedAt"`
}

// Expired reports whether the cached entry is older than ttl.
func (c *CachedThread) Expired(ttl time.Duration) bool {
	return time.Since(c.FetchedAt) > ttl
}

type ThreadCache interface {
	Get(ctx context.Context, threadID string) (*Thread, error)
	Put(ctx context.Context, threadID string, thread *Thread) error
	DeleteExpired(ctx context.Context, ttl time.Duration) (int, error)
	Close() error
}
