package domain

import "errors"

var (
	ErrInvalidInput = errors.New("invalid threads url or id")
	ErrNotFound     = errors.New("content not found")
	ErrTimeout      = errors.New("upstream fetch timed out")
	ErrUpstream     = errors.New("upstream fetch failed")
	ErrCacheMiss    = errors.New("thread not cached")
)
