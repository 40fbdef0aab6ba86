package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestMetricsRecorderEmitsInstruments(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	rec := NewMetricsRecorder()
	ctx := context.Background()

	rec.RecordNodeExecution(ctx, "extract", 5*time.Millisecond, nil)
	rec.RecordNodeExecution(ctx, "score", 7*time.Millisecond, errors.New("boom"))
	rec.RecordRun(ctx, "end", 20*time.Millisecond)
	rec.RecordLogLine(ctx)
	rec.RecordSubscribers(ctx, 1)
	rec.RecordSubscribers(ctx, -1)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	names := make(map[string]bool)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			names[m.Name] = true
		}
	}

	for _, want := range []string{
		"graphrun.node.executions",
		"graphrun.node.latency_ms",
		"graphrun.node.errors",
		"graphrun.runs",
		"graphrun.run.latency_ms",
		"graphrun.log.lines",
		"graphrun.log.subscribers",
	} {
		assert.True(t, names[want], "missing metric %s", want)
	}
}

func TestSpanManagerRecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(provider)

	sm := NewSpanManager()
	ctx, runSpan := sm.StartRunSpan(context.Background(), "review", "run-1")
	_, nodeSpan := sm.StartNodeSpan(ctx, "extract")

	sm.EndSpanWithError(nodeSpan, errors.New("boom"))
	sm.EndSpanWithError(runSpan, nil)

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	node := spans[0]
	assert.Equal(t, "graphrun.node.extract", node.Name())
	assert.Equal(t, codes.Error, node.Status().Code)
	assert.Equal(t, "boom", node.Status().Description)

	run := spans[1]
	assert.Equal(t, "graphrun.run", run.Name())
	assert.Equal(t, codes.Ok, run.Status().Code)

	// The node span nests under the run span.
	assert.Equal(t, run.SpanContext().SpanID(), node.Parent().SpanID())
}

func TestEndSpanWithErrorNilSpan(t *testing.T) {
	sm := NewSpanManager()
	assert.NotPanics(t, func() { sm.EndSpanWithError(nil, errors.New("boom")) })
}

func TestNoopImplementations(t *testing.T) {
	ctx := context.Background()

	var m MetricsRecorder = NoopMetrics{}
	assert.NotPanics(t, func() {
		m.RecordNodeExecution(ctx, "a", time.Millisecond, nil)
		m.RecordRun(ctx, "end", time.Millisecond)
		m.RecordLogLine(ctx)
		m.RecordSubscribers(ctx, 1)
	})

	var sm SpanManager = NoopSpanManager{}
	spanCtx, span := sm.StartRunSpan(ctx, "g", "r")
	assert.Equal(t, ctx, spanCtx)
	assert.NotPanics(t, func() {
		sm.EndSpanWithError(span, nil)
		sm.AddSpanEvent(ctx, "event")
	})
}
