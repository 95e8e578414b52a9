package streamdeck

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/snowmerak/streamdeck.go/lib/streamdeck/event"
)

const (
	defaultQueueSize   = 64
	defaultStopTimeout = time.Second
)

// Config carries the session parameters the Stream Deck software passes to
// the plugin's entry point, plus runtime knobs.
type Config struct {
	// Port is the local WebSocket port the host listens on.
	Port int

	// PluginUUID is the registration id passed by the host, sent back in the
	// registration handshake and used as the context of plugin-global
	// commands.
	PluginUUID string

	// RegisterEvent is the registration event name passed by the host,
	// almost always "registerPlugin".
	RegisterEvent string

	// Info is the environment info blob passed by the host. The manager
	// retains it for handlers but does not interpret it.
	Info map[string]any

	// Logger is the diagnostic sink. When nil, a stderr logger is used.
	Logger *zerolog.Logger

	// StopTimeout bounds the per-listener wait during shutdown.
	// Defaults to one second.
	StopTimeout time.Duration

	// QueueSize is the capacity of the merged event queue.
	// Defaults to 64.
	QueueSize int
}

// Manager owns the plugin lifecycle: it connects to the host, performs the
// registration handshake, supervises the event listeners, and runs the
// receive/dispatch loop.
type Manager struct {
	cfg Config
	log zerolog.Logger

	session   *session
	registry  *Registry
	adapter   *event.Adapter
	listeners []Listener

	stopOnce sync.Once
	stopChan chan struct{}
}

// New creates a Manager for the given session parameters.
func New(cfg Config) *Manager {
	if cfg.StopTimeout <= 0 {
		cfg.StopTimeout = defaultStopTimeout
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}

	var log zerolog.Logger
	if cfg.Logger != nil {
		log = *cfg.Logger
	} else {
		log = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	return &Manager{
		cfg:      cfg,
		log:      log.With().Str("component", "manager").Logger(),
		session:  &session{},
		registry: NewRegistry(),
		adapter:  event.NewAdapter(),
		stopChan: make(chan struct{}),
	}
}

// State returns the current lifecycle state.
func (m *Manager) State() State { return m.session.current() }

// Info returns the environment info blob supplied by the host.
func (m *Manager) Info() map[string]any { return m.cfg.Info }

// RegisterAction wires an action's handler bindings into the registry. Every
// event name the action binds must have a registered event model. Actions can
// only be registered before the manager reaches Running.
func (m *Manager) RegisterAction(a Registrable) error {
	if m.running() {
		return ErrAlreadyRunning
	}

	for _, name := range a.registeredEventNames() {
		if !m.adapter.Known(name) {
			return fmt.Errorf("action binds unknown event %q", name)
		}
	}

	m.registry.Register(a)
	return nil
}

// RegisterListener adds an auxiliary event source whose messages are merged
// into the dispatch pipeline. Listeners implementing ModelProvider get their
// event models registered with the adapter. Listeners can only be registered
// before the manager reaches Running.
func (m *Manager) RegisterListener(l Listener) error {
	if m.running() {
		return ErrAlreadyRunning
	}

	if mp, ok := l.(ModelProvider); ok {
		m.adapter.Register(mp.EventModels()...)
	}

	m.listeners = append(m.listeners, l)
	return nil
}

// RegisterEventModels adds custom event models to the manager's adapter.
// Only callable before the manager reaches Running.
func (m *Manager) RegisterEventModels(models ...event.Model) error {
	if m.running() {
		return ErrAlreadyRunning
	}
	m.adapter.Register(models...)
	return nil
}

func (m *Manager) running() bool {
	switch m.session.current() {
	case StateIdle, StateConnecting, StateRegistering:
		return false
	default:
		return true
	}
}

// Stop requests a graceful shutdown of the run loop. Safe to call from any
// goroutine, any number of times.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopChan)
	})
}

// Run connects to the host, registers the plugin, starts the listener
// supervisor, and processes events until the connection closes, Stop is
// called, or ctx is cancelled.
//
// It returns nil on a clean close or stop. An abrupt connection loss returns
// the *ConnectionError that caused it. All other failure classes are
// contained and surfaced through the logger only.
func (m *Manager) Run(ctx context.Context) error {
	if err := m.session.transition(StateConnecting); err != nil {
		return err
	}

	transport, err := Dial(ctx, m.cfg.Port, m.log.With().Str("component", "transport").Logger())
	if err != nil {
		m.close()
		return err
	}

	if err := m.session.transition(StateRegistering); err != nil {
		transport.Stop()
		m.close()
		return err
	}

	sender := NewCommandSender(transport, m.cfg.PluginUUID)
	if err := sender.SendRegistration(m.cfg.RegisterEvent); err != nil {
		transport.Stop()
		m.close()
		return err
	}
	m.log.Info().Str("registerEvent", m.cfg.RegisterEvent).Msg("plugin registered")

	// The registration protocol is fire-and-forget: the host acknowledges by
	// keeping the connection open and sending events.
	if err := m.session.transition(StateRunning); err != nil {
		transport.Stop()
		m.close()
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sup := newSupervisor(m.cfg.QueueSize, m.cfg.StopTimeout, m.log.With().Str("component", "supervisor").Logger())
	transportEntry := sup.add(transport)
	for _, l := range m.listeners {
		sup.add(l)
	}
	sup.start(runCtx)

	disp := &dispatcher{
		registry: m.registry,
		sender:   sender,
		log:      m.log.With().Str("component", "dispatcher").Logger(),
	}

	var runErr error

loop:
	for {
		select {
		case raw := <-sup.queue:
			m.handleRaw(runCtx, disp, raw)

		case exit := <-sup.exits:
			if exit.entry == transportEntry {
				// Transport closure is session-fatal; listener failures
				// are contained by the supervisor.
				runErr = exit.err
				break loop
			}

		case <-m.stopChan:
			m.log.Info().Msg("stop requested")
			break loop

		case <-runCtx.Done():
			break loop
		}
	}

	if err := m.session.transition(StateDraining); err == nil {
		m.log.Info().Msg("draining")
	}
	cancel()
	sup.shutdown()
	_ = m.session.transition(StateClosed)
	m.log.Info().Msg("plugin manager stopped")

	return runErr
}

// close tears the session down from a pre-running failure.
func (m *Manager) close() {
	_ = m.session.transition(StateDraining)
	_ = m.session.transition(StateClosed)
}

// handleRaw decodes one raw message and dispatches the typed event. Malformed
// traffic never terminates the loop: unknown event types are dropped,
// decode and validation failures are dropped with diagnostics.
func (m *Manager) handleRaw(ctx context.Context, disp *dispatcher, raw []byte) {
	ev, err := m.adapter.Decode(raw)
	if err != nil {
		var verr *event.ValidationError
		switch {
		case errors.Is(err, event.ErrUnknownEvent):
			m.log.Warn().Err(err).Msg("unmodeled event type, message ignored")
		case errors.As(err, &verr):
			m.log.Error().Err(err).RawJSON("payload", verr.Raw).Msg("event failed validation, message dropped")
		default:
			m.log.Error().Err(err).Msg("undecodable message dropped")
		}
		return
	}

	m.log.Debug().Str("event", ev.EventName()).Msg("event received")
	disp.dispatch(ctx, ev)
}
