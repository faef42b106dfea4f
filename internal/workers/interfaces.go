// Package workers runs the background workers of a service next to its
// HTTP server. A worker lives as long as the context passed to Run.
package workers

import "context"

// Worker is a long-running background task, such as a queue consumer.
//
// Run blocks until ctx is cancelled and must return promptly afterwards.
// Failures inside the worker are its own business: it logs and retries
// rather than returning them.
type Worker interface {
	Run(ctx context.Context)
}

// WorkerFunc adapts an ordinary function to the Worker interface.
type WorkerFunc func(ctx context.Context)

// Run calls f(ctx).
func (f WorkerFunc) Run(ctx context.Context) {
	f(ctx)
}
