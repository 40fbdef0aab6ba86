package graphrun

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/jmalkin/graphrun/pkg/graphrun/journal"
	"github.com/jmalkin/graphrun/pkg/graphrun/observability"
)

// Engine owns the process-wide set of graphs and runs.
//
// Construct one Engine at process start and pass it by reference to
// every request handler; it is safe for concurrent use. Graphs and
// runs live for the process lifetime, there is no teardown.
//
// Runs execute concurrently with each other, one goroutine per run.
// Within a run, execution is strictly sequential.
type Engine struct {
	logger   *slog.Logger
	metrics  observability.MetricsRecorder
	spans    observability.SpanManager
	tracing  bool
	journal  journal.Store
	maxSteps int

	gmu    sync.RWMutex
	graphs map[string]*Graph

	rmu  sync.RWMutex
	runs map[string]*run
}

// New creates an Engine. By default it logs through slog.Default()
// and records no metrics or traces; use options to opt in.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:  slog.Default(),
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
		graphs:  make(map[string]*Graph),
		runs:    make(map[string]*run),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CreateGraph registers a graph and returns its engine-generated ID.
// Returns ErrNoNodes for a graph without nodes. The graph must not be
// modified after registration.
//
// Edge and directive targets are deliberately not validated here:
// a target absent from the graph terminates a run gracefully when it
// is reached.
func (e *Engine) CreateGraph(g *Graph) (string, error) {
	if g.isEmpty() {
		return "", ErrNoNodes
	}

	id := uuid.New().String()

	e.gmu.Lock()
	e.graphs[id] = g
	e.gmu.Unlock()

	e.logger.Debug("graph created",
		slog.String("graph_id", id),
		slog.String("name", g.Name()),
		slog.Int("nodes", len(g.order)),
	)
	return id, nil
}

// GetGraph returns a registered graph.
// Returns ErrGraphNotFound for an unknown ID.
func (e *Engine) GetGraph(id string) (*Graph, error) {
	e.gmu.RLock()
	g, ok := e.graphs[id]
	e.gmu.RUnlock()

	if !ok {
		return nil, ErrGraphNotFound
	}
	return g, nil
}

// CreateRun starts a new run of the given graph against the given
// initial state and returns the run ID. Returns ErrGraphNotFound for
// an unknown graph ID.
//
// Dispatch is fire-and-forget: the run executes on its own goroutine
// and this call returns before any node runs. There is no cancellation
// and no timeout; observe progress via GetRun or SubscribeLogs.
//
// The initial state is adopted by reference. The caller must not
// mutate it after this call.
func (e *Engine) CreateRun(graphID string, initial State) (string, error) {
	g, err := e.GetGraph(graphID)
	if err != nil {
		return "", err
	}

	r := newRun(uuid.New().String(), graphID, initial)

	e.rmu.Lock()
	e.runs[r.id] = r
	e.rmu.Unlock()

	go e.execute(g, r)
	return r.id, nil
}

// GetRun returns a point-in-time snapshot of a run, safe to read while
// the run keeps executing. Returns ErrRunNotFound for an unknown ID.
func (e *Engine) GetRun(runID string) (RunSnapshot, error) {
	r, err := e.lookupRun(runID)
	if err != nil {
		return RunSnapshot{}, err
	}
	return r.snapshot(), nil
}

// SubscribeLogs attaches a live log subscriber to a run. It returns
// the backlog (every line emitted so far, in order) and a subscription
// delivering every later line. Drain the backlog first, then read from
// the subscription: together they yield each line exactly once.
//
// Returns ErrRunNotFound for an unknown run ID. Call Unsubscribe on
// the returned subscription when done; it is idempotent.
func (e *Engine) SubscribeLogs(runID string) ([]string, *Subscription, error) {
	r, err := e.lookupRun(runID)
	if err != nil {
		return nil, nil, err
	}

	backlog, sub := r.feed.subscribe()
	e.metrics.RecordSubscribers(context.Background(), 1)
	sub.onStop = func() {
		e.metrics.RecordSubscribers(context.Background(), -1)
		observability.LogUnsubscribe(e.logger, runID)
	}

	observability.LogSubscribe(e.logger, runID, len(backlog))
	return backlog, sub, nil
}

func (e *Engine) lookupRun(runID string) (*run, error) {
	e.rmu.RLock()
	r, ok := e.runs[runID]
	e.rmu.RUnlock()

	if !ok {
		return nil, ErrRunNotFound
	}
	return r, nil
}

// emit appends a lifecycle line to the run's log, fans it out to live
// subscribers, and exports it to the journal when one is configured.
// Journal failures are logged and otherwise ignored; the run proceeds.
func (e *Engine) emit(ctx context.Context, r *run, line string) {
	r.feed.publish(line)
	e.metrics.RecordLogLine(ctx)

	if e.journal != nil {
		if err := e.journal.Append(r.id, line); err != nil {
			observability.LogJournalError(e.logger, r.id, err)
		}
	}
}
