package graphrun

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/jmalkin/graphrun/pkg/graphrun/observability"
)

// Run termination reasons, recorded in metrics and operator logs.
// The run record itself does not carry them: every termination sets
// the same finished flag, and only the log text tells the cases apart.
const (
	reasonEnd         = "end"
	reasonNoNext      = "no_next"
	reasonMissingNode = "missing_node"
	reasonNodeError   = "node_error"
	reasonStepLimit   = "step_limit"
)

// execute drives one run from its entry node to termination. It runs
// on its own goroutine, detached from the caller that created the run.
//
// Each iteration visits one node: look it up, announce it, execute it,
// then interpret its directive. A loop directive re-runs the same node;
// an explicit next overrides the graph's fallback edge; the End
// sentinel and the absence of any successor both terminate the run.
// Node failures (error or panic) terminate the run and are contained
// here: they reach callers only through the run's log.
func (e *Engine) execute(g *Graph, r *run) {
	ctx := context.Background()
	current := g.entryPoint()

	observability.LogRunStart(e.logger, r.id, r.graphID, current)

	execCtx := ctx
	var runSpan trace.Span
	if e.tracing {
		execCtx, runSpan = e.spans.StartRunSpan(ctx, g.Name(), r.id)
	}

	start := time.Now()
	steps := 0
	reason := reasonNoNext
	var failure error

	for {
		if e.maxSteps > 0 && steps >= e.maxSteps {
			e.emit(execCtx, r, fmt.Sprintf("Step limit (%d) reached at '%s'. Stopping.", e.maxSteps, current))
			reason = reasonStepLimit
			break
		}

		fn, ok := g.node(current)
		if !ok {
			// A dangling edge or directive target is a graceful
			// stop, not an error.
			e.emit(execCtx, r, fmt.Sprintf("Node '%s' does not exist. Stopping.", current))
			reason = reasonMissingNode
			break
		}

		e.emit(execCtx, r, "Running: "+current)
		steps++

		directive, err := e.step(execCtx, r, current, fn)
		if err != nil {
			e.emit(execCtx, r, fmt.Sprintf("Error in '%s': %v", current, err))
			failure = &NodeError{NodeID: current, Err: err}
			observability.LogNodeError(e.logger, r.id, current, failure)
			reason = reasonNodeError
			break
		}

		if directive.Loop {
			e.emit(execCtx, r, "Looping on: "+current)
			continue
		}

		next := directive.Next
		if next == "" {
			next = g.fallback(current)
		}

		if next == "" {
			e.emit(execCtx, r, fmt.Sprintf("No next node after %s. Finishing.", current))
			reason = reasonNoNext
			break
		}

		if next == End {
			e.emit(execCtx, r, "Reached end.")
			reason = reasonEnd
			break
		}

		current = next
	}

	r.finish()

	duration := time.Since(start)
	e.metrics.RecordRun(execCtx, reason, duration)
	if e.tracing {
		e.spans.EndSpanWithError(runSpan, failure)
	}
	observability.LogRunFinished(e.logger, r.id, reason, float64(duration.Milliseconds()), steps)
}

// step executes one node with observability around it.
// Returns the node's directive, or the raw node error (a *PanicError
// if the node panicked).
func (e *Engine) step(ctx context.Context, r *run, nodeID string, fn NodeFunc) (Directive, error) {
	observability.LogNodeStart(e.logger, r.id, nodeID)

	nodeCtx := ctx
	var span trace.Span
	if e.tracing {
		nodeCtx, span = e.spans.StartNodeSpan(ctx, nodeID)
	}

	start := time.Now()
	directive, err := e.invoke(nodeCtx, r, nodeID, fn)
	e.metrics.RecordNodeExecution(nodeCtx, nodeID, time.Since(start), err)

	if e.tracing {
		e.spans.EndSpanWithError(span, err)
	}
	return directive, err
}

// invoke calls the node function with the run's shared state, holding
// the run mutex so snapshots never race with in-place state mutation.
// Panics are converted into node failures so a broken node takes down
// its own run, never the engine.
func (e *Engine) invoke(ctx context.Context, r *run, nodeID string, fn NodeFunc) (directive Directive, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	defer func() {
		if rec := recover(); rec != nil {
			directive = Directive{}
			err = &PanicError{
				NodeID: nodeID,
				Value:  rec,
				Stack:  string(debug.Stack()),
			}
		}
	}()

	return fn(ctx, r.state)
}
