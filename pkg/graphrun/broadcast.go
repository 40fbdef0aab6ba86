package graphrun

import "sync"

// feed is the per-run log broadcaster: an ordered, append-only line
// buffer plus the set of live subscribers.
//
// A single mutex covers both the buffer and the subscriber list, which
// makes subscribe's "snapshot backlog + register channel" atomic with
// respect to publish. Without that atomicity a line emitted between the
// snapshot and the registration would be lost to the new subscriber.
type feed struct {
	mu    sync.Mutex
	buf   []string
	subs  []*Subscription
	subID uint64
}

func newFeed() *feed {
	return &feed{}
}

// publish appends the line to the buffer and pushes it to every live
// subscriber in registration order. It never blocks: each subscriber
// owns an unbounded queue drained by its delivery goroutine, so a slow
// or absent consumer cannot stall the run.
func (f *feed) publish(line string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.buf = append(f.buf, line)
	for _, s := range f.subs {
		s.push(line)
	}
}

// lines returns a copy of the buffered log lines in append order.
func (f *feed) lines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, len(f.buf))
	copy(out, f.buf)
	return out
}

// subscribe snapshots the backlog and registers a new live
// subscription in one critical section. The caller must drain the
// backlog first, then read from the subscription: together they see
// every line exactly once, in append order.
func (f *feed) subscribe() ([]string, *Subscription) {
	f.mu.Lock()
	defer f.mu.Unlock()

	backlog := make([]string, len(f.buf))
	copy(backlog, f.buf)

	f.subID++
	s := newSubscription(f, f.subID)
	f.subs = append(f.subs, s)
	return backlog, s
}

// unsubscribe removes the subscription from the live set.
// Removing a subscription that is already gone is a no-op.
func (f *feed) unsubscribe(sub *Subscription) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, s := range f.subs {
		if s.id == sub.id {
			f.subs = append(f.subs[:i], f.subs[i+1:]...)
			return
		}
	}
}

// Subscription is a live, ordered stream of log lines for one run.
// Lines queue without bound between the run and the consumer; the run
// never waits for the consumer.
//
// Read lines from C. Call Unsubscribe when done; it is idempotent and
// closes C once all queued deliveries have stopped.
type Subscription struct {
	id   uint64
	feed *feed

	mu    sync.Mutex
	queue []string

	wake chan struct{}
	out  chan string
	done chan struct{}
	once sync.Once

	// onStop, when set, runs once on Unsubscribe. The engine uses it
	// for subscriber accounting.
	onStop func()
}

func newSubscription(f *feed, id uint64) *Subscription {
	s := &Subscription{
		id:   id,
		feed: f,
		wake: make(chan struct{}, 1),
		out:  make(chan string),
		done: make(chan struct{}),
	}
	go s.deliver()
	return s
}

// C returns the channel on which live log lines arrive, in the order
// they were emitted. The channel is closed after Unsubscribe.
func (s *Subscription) C() <-chan string {
	return s.out
}

// Unsubscribe detaches the subscription from its run. Safe to call
// multiple times; the second and later calls are no-ops.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		close(s.done)
		s.feed.unsubscribe(s)
		if s.onStop != nil {
			s.onStop()
		}
	})
}

// push enqueues a line for delivery. Called by the feed with its lock
// held; must not block.
func (s *Subscription) push(line string) {
	s.mu.Lock()
	s.queue = append(s.queue, line)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// deliver drains the queue into the output channel, preserving order.
// The buffered wake channel guarantees a push between drain and wait
// is never missed.
func (s *Subscription) deliver() {
	defer close(s.out)
	for {
		s.mu.Lock()
		batch := s.queue
		s.queue = nil
		s.mu.Unlock()

		for _, line := range batch {
			select {
			case s.out <- line:
			case <-s.done:
				return
			}
		}

		select {
		case <-s.wake:
		case <-s.done:
			return
		}
	}
}
