// Package streamdeck implements the runtime core of a Stream Deck plugin:
// the WebSocket transport to the Stream Deck host, the scoped action
// registry and dispatcher, the outbound command sender, the supervision of
// auxiliary event listeners, and the plugin lifecycle state machine.
//
// This file contains the error taxonomy shared across the package.
package streamdeck

import (
	"errors"
	"fmt"
)

// ConnectionError reports a transport-level failure. It is the only
// session-fatal error class: the manager drains and closes when one occurs.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// ErrAlreadyRunning is returned when actions or listeners are registered
// after the manager has left its pre-running states.
var ErrAlreadyRunning = errors.New("plugin manager is already running")

// ErrNotConnected is returned when a send is attempted on a transport whose
// connection has not been established or has been released.
var ErrNotConnected = errors.New("websocket connection not established")
