package streamdeck

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// scriptedListener emits a fixed message sequence and then blocks until
// stopped.
type scriptedListener struct {
	messages [][]byte
	stopOnce sync.Once
	stopped  chan struct{}
	stops    atomic.Int32
}

func newScriptedListener(messages ...string) *scriptedListener {
	l := &scriptedListener{stopped: make(chan struct{})}
	for _, m := range messages {
		l.messages = append(l.messages, []byte(m))
	}
	return l
}

func (l *scriptedListener) Produce(ctx context.Context, emit func(raw []byte)) error {
	for _, m := range l.messages {
		emit(m)
	}
	select {
	case <-ctx.Done():
	case <-l.stopped:
	}
	return nil
}

func (l *scriptedListener) Stop() {
	l.stops.Add(1)
	l.stopOnce.Do(func() { close(l.stopped) })
}

// failingListener emits one message and terminates abnormally.
type failingListener struct {
	err error
}

func (l *failingListener) Produce(ctx context.Context, emit func(raw []byte)) error {
	emit([]byte(`{"event":"doomed"}`))
	return l.err
}

func (l *failingListener) Stop() {}

// stubbornListener never honors Stop; it only returns once release is closed.
type stubbornListener struct {
	release chan struct{}
}

func (l *stubbornListener) Produce(ctx context.Context, emit func(raw []byte)) error {
	<-l.release
	return nil
}

func (l *stubbornListener) Stop() {}

func collect(t *testing.T, queue <-chan []byte, n int) []string {
	t.Helper()

	var got []string
	for len(got) < n {
		select {
		case raw := <-queue:
			got = append(got, string(raw))
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out after %d of %d messages", len(got), n)
		}
	}
	return got
}

func TestSupervisor_MergesSourcesPreservingPerSourceOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := newSupervisor(16, time.Second, zerolog.Nop())
	a := newScriptedListener(`a1`, `a2`, `a3`)
	b := newScriptedListener(`b1`, `b2`, `b3`)
	s.add(a)
	s.add(b)
	s.start(ctx)

	got := collect(t, s.queue, 6)

	// No total order across sources, but each source's own order holds.
	var fromA, fromB []string
	for _, m := range got {
		if m[0] == 'a' {
			fromA = append(fromA, m)
		} else {
			fromB = append(fromB, m)
		}
	}
	assert.Equal(t, []string{"a1", "a2", "a3"}, fromA)
	assert.Equal(t, []string{"b1", "b2", "b3"}, fromB)

	cancel()
	s.shutdown()
}

func TestSupervisor_ListenerFailureIsIsolated(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := newSupervisor(16, time.Second, zerolog.Nop())
	failed := &failingListener{err: errors.New("listener exploded")}
	survivor := newScriptedListener(`s1`)
	failedEntry := s.add(failed)
	s.add(survivor)
	s.start(ctx)

	// Both messages arrive; the failure is reported without affecting the
	// surviving listener.
	got := collect(t, s.queue, 2)
	assert.ElementsMatch(t, []string{`{"event":"doomed"}`, "s1"}, got)

	select {
	case exit := <-s.exits:
		assert.Same(t, failedEntry, exit.entry)
		assert.Error(t, exit.err)
	case <-time.After(2 * time.Second):
		t.Fatal("listener exit not reported")
	}

	cancel()
	s.shutdown()
}

func TestSupervisor_StopCalledExactlyOncePerListener(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := newSupervisor(16, time.Second, zerolog.Nop())
	listeners := []*scriptedListener{
		newScriptedListener(),
		newScriptedListener(),
		newScriptedListener(),
	}
	for _, l := range listeners {
		s.add(l)
	}
	s.start(ctx)

	s.shutdown()
	s.shutdown() // second shutdown must not re-stop anything

	for i, l := range listeners {
		assert.Equal(t, int32(1), l.stops.Load(), "listener %d", i)
	}
}

func TestSupervisor_AbandonsStubbornListener(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := newSupervisor(16, 50*time.Millisecond, zerolog.Nop())
	stubborn := &stubbornListener{release: make(chan struct{})}
	polite := newScriptedListener()
	s.add(stubborn)
	s.add(polite)
	s.start(ctx)

	start := time.Now()
	s.shutdown()
	elapsed := time.Since(start)

	// Shutdown proceeded despite the stubborn listener, bounded by the
	// per-listener timeout.
	require.Less(t, elapsed, time.Second)
	assert.Equal(t, int32(1), polite.stops.Load())

	// Let the stubborn goroutine drain before the next test.
	close(stubborn.release)
	s.wg.Wait()
}

func TestSupervisor_EmitHonorsCancellation(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())

	// Queue of size 1 and a listener producing more than fits: once the
	// consumer goes away, cancellation must unblock the producer.
	s := newSupervisor(1, time.Second, zerolog.Nop())
	var flood [][]byte
	for i := 0; i < 100; i++ {
		flood = append(flood, []byte(fmt.Sprintf("m%d", i)))
	}
	l := newScriptedListener()
	l.messages = flood
	s.add(l)
	s.start(ctx)

	// Consume one message, then abandon the queue.
	collect(t, s.queue, 1)

	cancel()
	s.shutdown()
}
