package graphrun

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Helper nodes used across tests.

// visit records the node's name under state["visited"] and returns the
// given directive. Runs mutate state single-writer, so no locking.
func visit(name string, d Directive) NodeFunc {
	return func(ctx context.Context, s State) (Directive, error) {
		visited, _ := s["visited"].([]string)
		s["visited"] = append(visited, name)
		return d, nil
	}
}

// passthrough returns the empty directive and leaves state alone.
func passthrough(ctx context.Context, s State) (Directive, error) {
	return Directive{}, nil
}

// waitFinished polls the run until it reports finished.
func waitFinished(t *testing.T, e *Engine, runID string) RunSnapshot {
	t.Helper()

	var snap RunSnapshot
	require.Eventually(t, func() bool {
		var err error
		snap, err = e.GetRun(runID)
		if err != nil {
			return false
		}
		return snap.Finished
	}, 2*time.Second, 2*time.Millisecond)
	return snap
}

// visited extracts the visit order from a snapshot.
func visited(snap RunSnapshot) []string {
	v, _ := snap.State["visited"].([]string)
	return v
}
