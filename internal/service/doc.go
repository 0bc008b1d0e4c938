// Package service contains the business logic for resolving Threads posts.
//
// DownloadService extracts the post ID from the caller's input, consults
// the thread cache, and falls back to the content fetcher under the
// configured timeout. All operations accept context for cancellation.
package service
