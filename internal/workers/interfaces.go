// Package workers runs the background jobs of the finance server.
//
// It defines the Worker interface and a Workers aggregate that runs every
// configured worker until the shared context is cancelled.
package workers

import "context"

// Worker is a background job.
//
// Run blocks until ctx is cancelled. A non-nil error means the worker gave
// up; a cancelled ctx is not an error.
//
// Example implementation:
//
//	type heartbeat struct{ every time.Duration }
//
//	func (h *heartbeat) Run(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}
