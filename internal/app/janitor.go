package app

import (
	"context"
	"time"

	"github.com/Sameer-09816/api/internal/config"
	"github.com/Sameer-09816/api/internal/domain"
	log "github.com/sirupsen/logrus"
)

// janitor prunes expired cache entries on a fixed interval so the
// bolthold file does not grow without bound.
type janitor struct {
	cache    domain.ThreadCache
	ttl      time.Duration
	interval time.Duration
}

func newJanitor(cfg *config.Config, cache domain.ThreadCache) *janitor {
	return &janitor{
		cache:    cache,
		ttl:      cfg.CacheTTL,
		interval: cfg.CachePruneEvery,
	}
}

func (j *janitor) RunPeriodically(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.WithField("component", "janitor").Info("stopping cache janitor")
			return
		case <-ticker.C:
			j.prune(ctx)
		}
	}
}

func (j *janitor) prune(ctx context.Context) {
	deleted, err := j.cache.DeleteExpired(ctx, j.ttl)
	if err != nil {
		log.WithFields(log.Fields{
			"component": "janitor",
			"error":     err,
		}).Error("pruning expired cache entries failed")
		return
	}

	if deleted > 0 {
		log.WithFields(log.Fields{
			"component": "janitor",
			"deleted":   deleted,
		}).Info("pruned expired cache entries")
	}
}
