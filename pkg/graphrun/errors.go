// Package graphrun provides a dynamic graph execution engine with
// per-run log streaming.
package graphrun

import (
	"errors"
	"fmt"
)

// Sentinel errors for engine-level lookups. These are the only errors
// propagated synchronously to callers; failures inside a run are
// contained in that run's log.
var (
	// ErrGraphNotFound indicates an unknown graph ID.
	ErrGraphNotFound = errors.New("graph not found")

	// ErrRunNotFound indicates an unknown run ID.
	ErrRunNotFound = errors.New("run not found")

	// ErrNoNodes indicates CreateGraph was called with an empty graph.
	ErrNoNodes = errors.New("graph has no nodes")
)

// NodeError wraps a failure returned by a node executable.
// It is recorded in the run's log and never escapes the scheduler.
type NodeError struct {
	// NodeID is the identifier of the node that failed.
	NodeID string
	// Err is the underlying error from the node.
	Err error
}

// Error implements the error interface.
func (e *NodeError) Error() string {
	return fmt.Sprintf("node %s: %v", e.NodeID, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *NodeError) Unwrap() error {
	return e.Err
}

// PanicError captures a panic raised by a node executable.
// The scheduler converts it into a node failure, so a panicking node
// terminates its own run without affecting other runs.
type PanicError struct {
	// NodeID is the identifier of the node that panicked.
	NodeID string
	// Value is the value passed to panic().
	Value any
	// Stack is the stack trace at the point of panic.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("node %s panicked: %v", e.NodeID, e.Value)
}
