package event

import (
	"errors"
	"fmt"
)

// ErrUnknownEvent reports a well-formed message whose event type has no
// registered model. Callers are expected to drop the message and continue;
// the library stays forward compatible with event types it does not model.
var ErrUnknownEvent = errors.New("unknown event type")

// DecodeError reports a message that could not be parsed at all: invalid
// JSON, or a missing or non-string "event" field.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode event message: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ValidationError reports a message whose event type is known but whose
// shape violates the model. Raw retains the offending payload for
// diagnostics.
type ValidationError struct {
	Event string
	Raw   []byte
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validate %q event: %v", e.Event, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
