// Package server runs the HTTP transport of the API.
//
// It owns the listener lifecycle: startup, waiting for a stop signal or
// context cancellation, and graceful shutdown bounded by the configured
// timeout.
package server
