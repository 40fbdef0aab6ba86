// Package journal provides durable export of run log lines.
//
// A journal is an optional engine sink: every line emitted to a run's
// feed is also appended to the configured store. It exists for offline
// inspection of past runs; the engine never reads it back to
// reconstruct run state.
package journal

import "errors"

// Store persists run log lines.
// Implementations must be safe for concurrent use.
type Store interface {
	// Append stores one log line for a run, after all lines
	// previously appended for that run.
	Append(runID, line string) error

	// Lines returns all stored lines for a run, in append order.
	// Returns an empty slice (not an error) if the run has no lines.
	Lines(runID string) ([]string, error)

	// DeleteRun removes all lines for a run.
	// Returns nil if the run has no lines.
	DeleteRun(runID string) error

	// Close releases any resources (connections, files).
	Close() error
}

// ErrStoreClosed indicates the store has been closed.
var ErrStoreClosed = errors.New("journal store closed")
