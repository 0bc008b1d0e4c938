// Package domain defines the core entities and interfaces for the
// Threads downloader.
//
// This package contains the Thread model returned by the API, the
// CachedThread record persisted between requests, and the interfaces
// that define the contract for content fetching and caching.
// All interfaces accept context for cancellation and timeout support.
package domain
