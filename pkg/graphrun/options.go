package graphrun

import (
	"log/slog"

	"github.com/jmalkin/graphrun/pkg/graphrun/journal"
	"github.com/jmalkin/graphrun/pkg/graphrun/observability"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's structured logger.
// Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder.
// Default: no-op.
//
// Example:
//
//	engine := graphrun.New(graphrun.WithMetrics(observability.NewMetricsRecorder()))
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(e *Engine) {
		if m != nil {
			e.metrics = m
		}
	}
}

// WithTracing enables span creation around runs and node executions.
// Default: disabled.
//
// Example:
//
//	engine := graphrun.New(graphrun.WithTracing(observability.NewSpanManager()))
func WithTracing(sm observability.SpanManager) Option {
	return func(e *Engine) {
		if sm != nil {
			e.spans = sm
			e.tracing = true
		}
	}
}

// WithJournal sets a store that receives every emitted log line.
// Default: none. Journal failures never fail a run; they are logged
// and the run proceeds.
func WithJournal(store journal.Store) Option {
	return func(e *Engine) {
		e.journal = store
	}
}

// WithMaxSteps caps the number of node executions per run.
// Default: 0 (unbounded).
//
// Unbounded looping is the designed behavior: graphs are allowed to
// cycle until a node stops requesting it. A graph whose directives or
// edges form an unconditional cycle therefore runs forever. WithMaxSteps
// is an opt-in safety valve for deployments that cannot afford that;
// a run hitting the cap stops gracefully with a log line, exactly like
// reaching a missing node.
func WithMaxSteps(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxSteps = n
		}
	}
}
