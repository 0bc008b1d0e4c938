// Package clients provides adapters for external services.
//
// This package contains the threadster.app adapter that implements
// domain.ContentFetcher by scraping the threadster download page.
// The adapter supports context for cancellation and timeout handling.
package clients
