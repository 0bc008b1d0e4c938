// Package app provides application initialization and lifecycle management.
//
// The App type wires all dependencies together and manages:
// - Configuration loading
// - Cache database initialization
// - Service creation
// - HTTP server lifecycle with CORS
// - Graceful shutdown
//
// The janitor runs a periodic background task pruning expired cache entries.
package app
