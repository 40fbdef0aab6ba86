package graphrun

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmalkin/graphrun/pkg/graphrun/journal"
)

func TestCreateGraphEmpty(t *testing.T) {
	e := New()

	_, err := e.CreateGraph(NewGraph("empty"))
	require.ErrorIs(t, err, ErrNoNodes)
}

func TestCreateAndGetGraph(t *testing.T) {
	e := New()
	g := NewGraph("g").AddNode("a", passthrough)

	id, err := e.CreateGraph(g)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := e.GetGraph(id)
	require.NoError(t, err)
	assert.Same(t, g, got)
}

func TestGetGraphNotFound(t *testing.T) {
	e := New()

	_, err := e.GetGraph("nope")
	require.ErrorIs(t, err, ErrGraphNotFound)
}

func TestCreateRunUnknownGraph(t *testing.T) {
	e := New()

	_, err := e.CreateRun("nope", nil)
	require.ErrorIs(t, err, ErrGraphNotFound)
}

func TestGetRunNotFound(t *testing.T) {
	e := New()

	_, err := e.GetRun("nope")
	require.ErrorIs(t, err, ErrRunNotFound)
}

func TestSubscribeLogsUnknownRun(t *testing.T) {
	e := New()

	_, _, err := e.SubscribeLogs("nope")
	require.ErrorIs(t, err, ErrRunNotFound)
}

func TestCreateRunNilInitialState(t *testing.T) {
	e := New()
	id := mustCreateGraph(t, e, NewGraph("g").AddNode("a", visit("a", Directive{})))

	runID, err := e.CreateRun(id, nil)
	require.NoError(t, err)

	snap := waitFinished(t, e, runID)
	assert.Equal(t, []string{"a"}, visited(snap))
}

func TestCreateRunReturnsBeforeExecution(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})

	e := New()
	id := mustCreateGraph(t, e, NewGraph("g").AddNode("block", func(ctx context.Context, s State) (Directive, error) {
		close(entered)
		<-release
		return Directive{}, nil
	}))

	runID, err := e.CreateRun(id, nil)
	require.NoError(t, err)

	// The run record exists and is queryable while the node blocks.
	<-entered
	snap, err := e.GetRun(runID)
	require.NoError(t, err)
	assert.False(t, snap.Finished)

	close(release)
	waitFinished(t, e, runID)
}

func TestConcurrentRunsAreIsolated(t *testing.T) {
	release := make(chan struct{})

	e := New()
	blocked := mustCreateGraph(t, e, NewGraph("blocked").AddNode("wait", func(ctx context.Context, s State) (Directive, error) {
		<-release
		return Directive{}, nil
	}))
	quick := mustCreateGraph(t, e, NewGraph("quick").AddNode("a", visit("a", Directive{})))

	blockedRun, err := e.CreateRun(blocked, nil)
	require.NoError(t, err)

	// A stuck run must not delay other runs.
	quickRun, err := e.CreateRun(quick, nil)
	require.NoError(t, err)
	waitFinished(t, e, quickRun)

	snap, err := e.GetRun(blockedRun)
	require.NoError(t, err)
	assert.False(t, snap.Finished)

	close(release)
	waitFinished(t, e, blockedRun)
}

func TestManyConcurrentRuns(t *testing.T) {
	e := New()
	id := mustCreateGraph(t, e, NewGraph("g").
		AddNode("a", visit("a", Directive{Next: "b"})).
		AddNode("b", visit("b", Directive{})))

	const n = 50
	runIDs := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			runID, err := e.CreateRun(id, State{"i": i})
			assert.NoError(t, err)
			runIDs[i] = runID
		}(i)
	}
	wg.Wait()

	for i, runID := range runIDs {
		snap := waitFinished(t, e, runID)
		assert.Equal(t, i, snap.State["i"])
		assert.Equal(t, []string{"a", "b"}, visited(snap))
	}
}

func TestRunRetainedAfterFinish(t *testing.T) {
	e := New()
	id := mustCreateGraph(t, e, NewGraph("g").AddNode("a", passthrough))

	runID, err := e.CreateRun(id, nil)
	require.NoError(t, err)
	waitFinished(t, e, runID)

	// Finished runs stay queryable and subscribable.
	snap, err := e.GetRun(runID)
	require.NoError(t, err)
	assert.True(t, snap.Finished)

	backlog, sub, err := e.SubscribeLogs(runID)
	require.NoError(t, err)
	defer sub.Unsubscribe()
	assert.Equal(t, snap.Logs, backlog)
}

func TestSnapshotStateIsCopy(t *testing.T) {
	e := New()
	id := mustCreateGraph(t, e, NewGraph("g").AddNode("a", visit("a", Directive{})))

	runID, err := e.CreateRun(id, State{"k": "v"})
	require.NoError(t, err)
	snap := waitFinished(t, e, runID)

	snap.State["k"] = "mutated"

	again, err := e.GetRun(runID)
	require.NoError(t, err)
	assert.Equal(t, "v", again.State["k"])
}

func TestJournalReceivesEveryLine(t *testing.T) {
	store := journal.NewMemoryStore()
	e := New(WithJournal(store))
	id := mustCreateGraph(t, e, NewGraph("g").
		AddNode("a", visit("a", Directive{Next: "b"})).
		AddNode("b", visit("b", Directive{})))

	runID, err := e.CreateRun(id, nil)
	require.NoError(t, err)
	snap := waitFinished(t, e, runID)

	lines, err := store.Lines(runID)
	require.NoError(t, err)
	assert.Equal(t, snap.Logs, lines)
}

// failingStore rejects every append.
type failingStore struct{}

func (failingStore) Append(runID, line string) error      { return errors.New("disk full") }
func (failingStore) Lines(runID string) ([]string, error) { return nil, errors.New("disk full") }
func (failingStore) DeleteRun(runID string) error         { return nil }
func (failingStore) Close() error                         { return nil }

func TestJournalFailureDoesNotFailRun(t *testing.T) {
	e := New(WithJournal(failingStore{}))
	id := mustCreateGraph(t, e, NewGraph("g").AddNode("a", visit("a", Directive{})))

	runID, err := e.CreateRun(id, nil)
	require.NoError(t, err)

	snap := waitFinished(t, e, runID)
	assert.Equal(t, []string{"a"}, visited(snap))
	assert.NotEmpty(t, snap.Logs)
}

func TestWithMaxStepsStopsRunaway(t *testing.T) {
	e := New(WithMaxSteps(10))
	id := mustCreateGraph(t, e, NewGraph("forever").AddNode("spin", func(ctx context.Context, s State) (Directive, error) {
		return Directive{Loop: true}, nil
	}))

	runID, err := e.CreateRun(id, nil)
	require.NoError(t, err)

	snap := waitFinished(t, e, runID)
	assert.Contains(t, snap.Logs, "Step limit (10) reached at 'spin'. Stopping.")
}

func TestWithMaxStepsIgnoresNonPositive(t *testing.T) {
	e := New(WithMaxSteps(0), WithMaxSteps(-5))
	assert.Equal(t, 0, e.maxSteps)
}

func TestWithLoggerNilKeepsDefault(t *testing.T) {
	e := New(WithLogger(nil))
	require.NotNil(t, e.logger)
}

func mustCreateGraph(t *testing.T, e *Engine, g *Graph) string {
	t.Helper()
	id, err := e.CreateGraph(g)
	require.NoError(t, err)
	return id
}

func BenchmarkLinearRun(b *testing.B) {
	e := New()
	g := NewGraph("bench")
	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("n%d", i)
		if i < 9 {
			g.AddNode(id, visit(id, Directive{Next: fmt.Sprintf("n%d", i+1)}))
		} else {
			g.AddNode(id, visit(id, Directive{}))
		}
	}
	graphID, err := e.CreateGraph(g)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		runID, err := e.CreateRun(graphID, nil)
		if err != nil {
			b.Fatal(err)
		}
		for {
			snap, err := e.GetRun(runID)
			if err != nil {
				b.Fatal(err)
			}
			if snap.Finished {
				break
			}
			time.Sleep(time.Microsecond)
		}
	}
}
