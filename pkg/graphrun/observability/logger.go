// Package observability provides structured logging, metrics, and
// distributed tracing for graphrun.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds run context to a logger.
// Returns a new logger with run_id and node_id fields.
func EnrichLogger(logger *slog.Logger, runID, nodeID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("run_id", runID),
		slog.String("node_id", nodeID),
	)
}

// LogRunStart logs the start of a graph run.
func LogRunStart(logger *slog.Logger, runID, graphID, entry string) {
	if logger == nil {
		return
	}
	logger.Info("run starting",
		slog.String("run_id", runID),
		slog.String("graph_id", graphID),
		slog.String("entry_node", entry),
	)
}

// LogRunFinished logs run termination, whatever the reason.
// The run record itself does not distinguish outcomes; the reason
// label here is for operators only.
func LogRunFinished(logger *slog.Logger, runID, reason string, durationMs float64, steps int) {
	if logger == nil {
		return
	}
	logger.Info("run finished",
		slog.String("run_id", runID),
		slog.String("reason", reason),
		slog.Float64("duration_ms", durationMs),
		slog.Int("steps", steps),
	)
}

// LogNodeStart logs node execution start.
func LogNodeStart(logger *slog.Logger, runID, nodeID string) {
	if logger == nil {
		return
	}
	logger.Debug("node starting",
		slog.String("run_id", runID),
		slog.String("node_id", nodeID),
	)
}

// LogNodeError logs node execution failure.
func LogNodeError(logger *slog.Logger, runID, nodeID string, err error) {
	if logger == nil {
		return
	}
	logger.Error("node failed",
		slog.String("run_id", runID),
		slog.String("node_id", nodeID),
		slog.String("error", err.Error()),
	)
}

// LogSubscribe logs a log-stream subscriber attaching to a run.
func LogSubscribe(logger *slog.Logger, runID string, backlog int) {
	if logger == nil {
		return
	}
	logger.Debug("subscriber attached",
		slog.String("run_id", runID),
		slog.Int("backlog_lines", backlog),
	)
}

// LogUnsubscribe logs a log-stream subscriber detaching from a run.
func LogUnsubscribe(logger *slog.Logger, runID string) {
	if logger == nil {
		return
	}
	logger.Debug("subscriber detached",
		slog.String("run_id", runID),
	)
}

// LogJournalError logs a journal append failure (non-fatal).
func LogJournalError(logger *slog.Logger, runID string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("journal append failed",
		slog.String("run_id", runID),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
