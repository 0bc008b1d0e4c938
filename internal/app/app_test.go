package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Sameer-09816/api/internal/config"
	"github.com/Sameer-09816/api/internal/domain"
)

func cacheConfig(t *testing.T, prefork bool) *config.Config {
	t.Helper()
	return &config.Config{
		DataDir:           t.TempDir(),
		Prefork:           prefork,
		CacheTTL:          time.Hour,
		DBFilePermissions: 0666,
	}
}

func TestOpenCache(t *testing.T) {
	cfg := cacheConfig(t, false)

	cache, err := openCache(cfg)
	if err != nil {
		t.Fatalf("openCache() error = %v", err)
	}
	defer cache.Close()

	if _, err := os.Stat(cfg.DBPath()); err != nil {
		t.Errorf("stat %s: %v, want database file", cfg.DBPath(), err)
	}

	ctx := context.Background()
	if err := cache.Put(ctx, "abc123", &domain.Thread{Username: "someuser"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	thread, err := cache.Get(ctx, "abc123")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if thread.Username != "someuser" {
		t.Errorf("Username = %q, want someuser", thread.Username)
	}
}

func TestOpenCache_PreforkSkipsDatabase(t *testing.T) {
	cfg := cacheConfig(t, true)

	cache, err := openCache(cfg)
	if err != nil {
		t.Fatalf("openCache() error = %v", err)
	}
	defer cache.Close()

	// No worker may take bbolt's exclusive lock: the re-execed
	// siblings would block forever on the same file.
	if _, err := os.Stat(cfg.DBPath()); !os.IsNotExist(err) {
		t.Errorf("stat %s: %v, want no database file under prefork", cfg.DBPath(), err)
	}

	entries, err := filepath.Glob(filepath.Join(cfg.DataDir, "*"))
	if err != nil {
		t.Fatalf("globbing data dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("data dir entries = %v, want none", entries)
	}

	ctx := context.Background()
	if err := cache.Put(ctx, "abc123", &domain.Thread{Username: "someuser"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if _, err := cache.Get(ctx, "abc123"); !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("Get() error = %v, want ErrCacheMiss", err)
	}
	if deleted, err := cache.DeleteExpired(ctx, time.Hour); err != nil || deleted != 0 {
		t.Errorf("DeleteExpired() = %d, %v, want 0, nil", deleted, err)
	}
}
