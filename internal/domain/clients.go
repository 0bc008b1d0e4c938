package domain

import "context"

// ContentFetcher retrieves the media links and metadata for a Threads
// post. Implementations must honor context cancellation and return
// ErrNotFound, ErrUpstream or a wrapped context error on failure.
type ContentFetcher interface {
	Fetch(ctx context.Context, threadID string) (*Thread, error)
}
