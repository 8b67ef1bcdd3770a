package fsm

import (
	"context"
)

// Strand is a single-threaded cooperative serializer: a goroutine draining
// a buffered function channel, modeled on the teacher's mainEventLoop
// (consensus/tendermint/core/handler.go: one goroutine per event source,
// select on ctx.Done(), fan-in a stopped signal on exit).
//
// Every func posted to a Strand runs strictly after every func posted
// before it returned, and never concurrently with another posted func —
// the property spec.md §5 requires of "the FSM strand".
type Strand struct {
	queue    chan func()
	stopping chan struct{}
	stopped  chan struct{}
}

// NewStrand builds an unstarted Strand with a generous queue depth; the
// FSM never blocks producers on a full queue in steady state, since the
// strand itself is the only consumer and drains continuously.
func NewStrand() *Strand {
	return &Strand{
		queue:    make(chan func(), 256),
		stopping: make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Start launches the strand's goroutine. Safe to call once.
func (s *Strand) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Strand) run(ctx context.Context) {
	defer close(s.stopped)
	for {
		select {
		case fn := <-s.queue:
			fn()
		case <-s.stopping:
			// Drain whatever is already queued before exiting, so a Stop
			// racing with a just-accepted Post still runs it.
			for {
				select {
				case fn := <-s.queue:
					fn()
				default:
					return
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

// Post enqueues fn to run on the strand goroutine, preserving submission
// order. A Post after Stop is silently dropped (matching the teacher's
// "pending async_wait callbacks check a stopped flag" pattern from
// spec.md §5, translated into a non-blocking channel send) rather than
// closing the queue channel itself, which would race a concurrent send.
func (s *Strand) Post(fn func()) {
	select {
	case s.queue <- fn:
	case <-s.stopping:
	case <-s.stopped:
	}
}

// Stop signals the strand to exit after draining its current queue and
// blocks until the goroutine has returned (spec.md §5 shutdown sequence:
// "post Stop to the strand, drop strong references to pools").
func (s *Strand) Stop() {
	close(s.stopping)
	<-s.stopped
}
