package server

import "context"

// Server defines the lifecycle contract of a service process.
type Server interface {
	// RunServer serves until a termination signal arrives, then shuts down
	// gracefully. It returns a non-nil error only when serving failed.
	RunServer() error

	// Run is RunServer driven by ctx instead of process signals.
	Run(ctx context.Context) error
}
