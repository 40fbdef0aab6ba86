package graphrun

import "sync"

// run is one execution of a graph against a specific initial state.
// It is created by Engine.CreateRun, mutated only by the scheduler
// goroutine driving it, and retained for the process lifetime so that
// later status queries and log subscriptions succeed.
type run struct {
	id      string
	graphID string

	// mu guards state and finished. The scheduler holds it while a
	// node executes, so snapshots never observe a half-applied node.
	mu       sync.Mutex
	state    State
	finished bool

	// feed owns the run's log lines and live subscribers.
	feed *feed
}

func newRun(id, graphID string, initial State) *run {
	if initial == nil {
		initial = State{}
	}
	return &run{
		id:      id,
		graphID: graphID,
		state:   initial,
		feed:    newFeed(),
	}
}

// finish marks the run finished. Idempotent: the flag is set true
// exactly once and never reset, regardless of how many exit paths
// call it.
func (r *run) finish() {
	r.mu.Lock()
	r.finished = true
	r.mu.Unlock()
}

// snapshot returns a consistent copy of the run for external readers.
// The state map is copied at the top level; log lines are copied in
// append order.
func (r *run) snapshot() RunSnapshot {
	r.mu.Lock()
	state := make(State, len(r.state))
	for k, v := range r.state {
		state[k] = v
	}
	finished := r.finished
	r.mu.Unlock()

	return RunSnapshot{
		RunID:    r.id,
		GraphID:  r.graphID,
		State:    state,
		Logs:     r.feed.lines(),
		Finished: finished,
	}
}

// RunSnapshot is a point-in-time view of a run, safe to read while the
// scheduler keeps executing. State holds a top-level copy of the run's
// state map; values are shared with the run, so callers must treat
// nested structures as read-only until Finished is true.
type RunSnapshot struct {
	RunID    string   `json:"run_id"`
	GraphID  string   `json:"graph_id"`
	State    State    `json:"state"`
	Logs     []string `json:"logs"`
	Finished bool     `json:"finished"`
}
