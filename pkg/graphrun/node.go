package graphrun

import "context"

// End is the reserved next-node sentinel.
// A directive or edge targeting End terminates the run.
const End = "end"

// Start is the node name that, when present, is always used as the
// entry point of a run. Graphs without a node named Start begin at
// the first node added to the graph.
const Start = "start"

// State is the shared mutable state of a single run.
// It is seeded by the caller at run creation and mutated in place by
// every node the run visits. All nodes of a run observe the same map.
//
// Within one run only one node executes at a time, so nodes need no
// locking to mutate State. Snapshots returned by Engine.GetRun are
// copies and safe to read concurrently with the run.
type State map[string]any

// Directive is a node's instruction for what happens next.
//
// The zero value is the empty directive: no loop, no explicit next
// node, so the graph's fallback edge (if any) decides the successor.
type Directive struct {
	// Loop re-executes the current node. When set, Next and the
	// graph's fallback edge are not consulted.
	Loop bool

	// Next names the node to transition to, overriding the graph's
	// fallback edge. The reserved value End terminates the run.
	Next string
}

// NodeFunc is the signature for all node executables.
//
// A node receives the run's shared state, mutates it in place as its
// primary effect, and returns a Directive steering the scheduler.
// Returning the zero Directive means "follow the fallback edge".
// Returning an error (or panicking) terminates the run; the failure is
// recorded in the run's log and is not propagated to the caller that
// started the run.
//
// Example:
//
//	func score(ctx context.Context, s graphrun.State) (graphrun.Directive, error) {
//	    s["score"] = rate(s["input"])
//	    if s["score"].(int) < 50 {
//	        return graphrun.Directive{Next: "rework"}, nil
//	    }
//	    return graphrun.Directive{}, nil
//	}
type NodeFunc func(ctx context.Context, state State) (Directive, error)
