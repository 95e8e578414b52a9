package streamdeck

import (
	"fmt"
	"sync"
)

// State identifies a phase of the connection session lifecycle.
type State uint8

const (
	StateIdle State = iota
	StateConnecting
	StateRegistering
	StateRunning
	StateDraining
	StateClosed
)

// String returns the string representation of State.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateConnecting:
		return "Connecting"
	case StateRegistering:
		return "Registering"
	case StateRunning:
		return "Running"
	case StateDraining:
		return "Draining"
	case StateClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// transitions lists the legal lifecycle edges. Any state past Idle may drain:
// a connect or handshake failure tears the session down through the same
// Draining→Closed path as a running session.
var transitions = map[State][]State{
	StateIdle:        {StateConnecting},
	StateConnecting:  {StateRegistering, StateDraining},
	StateRegistering: {StateRunning, StateDraining},
	StateRunning:     {StateDraining},
	StateDraining:    {StateClosed},
}

// session owns the lifecycle state. Only the manager's run goroutine mutates
// it, but registration calls read it from arbitrary goroutines, so access is
// mutex guarded.
type session struct {
	mu    sync.Mutex
	state State
}

func (s *session) current() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// transition moves the session to the given state, rejecting illegal edges.
func (s *session) transition(to State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, next := range transitions[s.state] {
		if next == to {
			s.state = to
			return nil
		}
	}
	return fmt.Errorf("illegal session transition %s -> %s", s.state, to)
}
