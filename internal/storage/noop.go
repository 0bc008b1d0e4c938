package storage

import (
	"context"
	"time"

	"github.com/Sameer-09816/api/internal/domain"
)

// noopThreadCache always misses. It backs prefork workers, where bbolt's
// exclusive file lock rules out sharing one database across processes.
type noopThreadCache struct{}

func NewNoopThreadCache() domain.ThreadCache {
	return noopThreadCache{}
}

func (noopThreadCache) Get(ctx context.Context, _ string) (*domain.Thread, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, domain.ErrCacheMiss
}

func (noopThreadCache) Put(ctx context.Context, _ string, _ *domain.Thread) error {
	return ctx.Err()
}

func (noopThreadCache) DeleteExpired(ctx context.Context, _ time.Duration) (int, error) {
	return 0, ctx.Err()
}

func (noopThreadCache) Close() error {
	return nil
}
