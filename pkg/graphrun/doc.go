/*
Package graphrun executes directed graphs of named processing steps
against shared mutable state, with per-run log streaming.

# Overview

graphrun is a small engine for workflows whose path is decided at run
time: each node receives the run's state, mutates it in place, and
returns a control directive telling the scheduler to loop on the same
node, branch to a named node, or follow the graph's fallback edge.
Runs are
dispatched fire-and-forget and execute concurrently with each other;
within a run, nodes execute strictly one at a time.

# Basic Usage

Build a graph, register it, start a run, poll for completion:

	func shout(ctx context.Context, s graphrun.State) (graphrun.Directive, error) {
	    s["out"] = strings.ToUpper(s["in"].(string))
	    return graphrun.Directive{}, nil
	}

	func main() {
	    engine := graphrun.New()

	    g := graphrun.NewGraph("shouter").
	        AddNode("shout", shout).
	        AddEdge("shout", graphrun.End)

	    graphID, err := engine.CreateGraph(g)
	    if err != nil {
	        log.Fatal(err)
	    }

	    runID, err := engine.CreateRun(graphID, graphrun.State{"in": "hello"})
	    if err != nil {
	        log.Fatal(err)
	    }

	    // CreateRun returns before the run executes; poll the snapshot.
	    for {
	        snap, _ := engine.GetRun(runID)
	        if snap.Finished {
	            fmt.Println(snap.State["out"]) // "HELLO"
	            return
	        }
	        time.Sleep(10 * time.Millisecond)
	    }
	}

# Branching and Looping

A node steers the run through its directive. Returning
Directive{Next: "x"} jumps straight to node "x", ignoring the fallback
edge. Returning Directive{Loop: true} re-executes the same node with
the state it just mutated:

	func improve(ctx context.Context, s graphrun.State) (graphrun.Directive, error) {
	    s["quality"] = s["quality"].(int) + 15
	    if s["quality"].(int) < 85 {
	        return graphrun.Directive{Loop: true}, nil
	    }
	    return graphrun.Directive{}, nil
	}

There is no cycle detector: a graph is allowed to loop until a node
stops asking for it. The WithMaxSteps engine option is an opt-in cap
for deployments that need one.

# Start and End

A run begins at the node literally named "start" if the graph has one,
otherwise at the first node added. The reserved edge target
graphrun.End ("end") terminates a run; it is a sentinel, never a node.

A node whose directive or fallback edge names a node the graph does not
contain terminates the run gracefully, with a log line naming the
missing node.

# Failure Containment

A node returning an error or panicking finishes its run with an
explanatory log line. Nothing is propagated to the caller that created
the run (that call already returned) and no other run is affected. The run
record keeps a single finished flag for every kind of termination;
only the log text distinguishes a clean "Reached end." from a failure.

# Log Streaming

Every lifecycle event appends one human-readable line to the run's
log. Subscribers may attach at any time:

	backlog, sub, err := engine.SubscribeLogs(runID)
	if err != nil {
	    log.Fatal(err)
	}
	defer sub.Unsubscribe()

	for _, line := range backlog {
	    fmt.Println(line)
	}
	for line := range sub.C() {
	    fmt.Println(line)
	}

The backlog snapshot and the live registration are atomic: the two
sequences together contain every line exactly once, in emission order.
Per-subscriber queues are unbounded; a slow consumer never stalls a
run, at the price of unbounded memory for a consumer that never reads.
*/
package graphrun
