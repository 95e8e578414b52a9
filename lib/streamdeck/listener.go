package streamdeck

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/snowmerak/streamdeck.go/lib/streamdeck/event"
)

// Listener is a pluggable event source whose raw messages are merged into the
// plugin's dispatch pipeline alongside the host's own events.
type Listener interface {
	// Produce blocks, calling emit for every raw event message, until the
	// context is cancelled or Stop is called. A non-nil return marks the
	// listener as failed; other listeners keep running either way.
	Produce(ctx context.Context, emit func(raw []byte)) error

	// Stop requests termination of Produce. It must be idempotent and safe
	// to call from a different goroutine than the one running Produce.
	Stop()
}

// ModelProvider is implemented by listeners that emit custom event types. The
// manager registers the returned models with its event adapter so those
// messages decode like any host event.
type ModelProvider interface {
	EventModels() []event.Model
}

// listenerExit reports that a listener's produce loop returned.
type listenerExit struct {
	entry *listenerEntry
	err   error
}

// listenerEntry is the supervisor's descriptor for one running listener.
type listenerEntry struct {
	id       string
	listener Listener
	done     chan struct{}
	stopOnce sync.Once
}

// stop forwards to the listener's Stop exactly once.
func (e *listenerEntry) stop() {
	e.stopOnce.Do(e.listener.Stop)
}

// supervisor runs every registered listener on its own goroutine and funnels
// their emissions into the shared queue consumed by the manager's receive
// loop. Ordering within one listener is preserved; no order is guaranteed
// across listeners.
type supervisor struct {
	queue chan []byte
	exits chan listenerExit

	entries     []*listenerEntry
	stopTimeout time.Duration
	wg          sync.WaitGroup
	log         zerolog.Logger
}

func newSupervisor(queueSize int, stopTimeout time.Duration, log zerolog.Logger) *supervisor {
	return &supervisor{
		queue:       make(chan []byte, queueSize),
		stopTimeout: stopTimeout,
		log:         log,
	}
}

// add registers a listener. Must be called before start.
func (s *supervisor) add(l Listener) *listenerEntry {
	e := &listenerEntry{
		id:       uuid.NewString(),
		listener: l,
		done:     make(chan struct{}),
	}
	s.entries = append(s.entries, e)
	return e
}

// start launches every registered listener on its own goroutine.
func (s *supervisor) start(ctx context.Context) {
	s.exits = make(chan listenerExit, len(s.entries))
	for _, e := range s.entries {
		s.wg.Add(1)
		go s.runListener(ctx, e)
	}
	s.log.Debug().Int("listeners", len(s.entries)).Msg("listeners started")
}

func (s *supervisor) runListener(ctx context.Context, e *listenerEntry) {
	defer s.wg.Done()
	defer close(e.done)

	emit := func(raw []byte) {
		select {
		case s.queue <- raw:
		case <-ctx.Done():
		}
	}

	err := e.listener.Produce(ctx, emit)
	if err != nil {
		s.log.Error().Err(err).Str("listener", e.id).Msg("listener terminated abnormally")
	}

	// exits is buffered to the listener count, so this never blocks.
	s.exits <- listenerExit{entry: e, err: err}
}

// shutdown stops every still-running listener and waits, per listener, up to
// the bounded timeout. A listener that does not return in time is abandoned
// and shutdown proceeds.
func (s *supervisor) shutdown() {
	for _, e := range s.entries {
		select {
		case <-e.done:
			continue
		default:
		}

		e.stop()

		select {
		case <-e.done:
		case <-time.After(s.stopTimeout):
			s.log.Warn().Str("listener", e.id).Msg("listener ignored stop within timeout, abandoning")
		}
	}
}
