// Package server runs the HTTP transport of the finance API.
//
// It owns the listener lifecycle: startup, and graceful shutdown when the
// caller's context is cancelled.
package server
