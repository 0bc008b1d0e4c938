// Package handler implements the HTTP request handlers.
//
// This package provides the HTTP endpoints:
// - /download: resolve a Threads URL or post ID into media links
// - /health: health check endpoint
//
// The central error handler translates domain errors into HTTP status
// codes; debug mode adds diagnostic detail to error bodies without ever
// changing the status code.
package handler
