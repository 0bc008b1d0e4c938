// Package storage provides the BoltDB-based thread cache.
//
// This package contains the concrete implementation of domain.ThreadCache
// using BoltHold for persistence. All operations support context
// cancellation and proper error wrapping.
package storage
