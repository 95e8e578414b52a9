// Package event provides the typed models for Stream Deck event messages and
// the adapter that decodes and validates raw messages into them.
//
// This file contains the core interfaces shared by every event model.
package event

// Event is implemented by every typed Stream Deck event model.
type Event interface {
	// EventName returns the value of the "event" discriminator field.
	EventName() string
}

// Contextual is implemented by events tied to a specific action instance.
// An empty context means the event was not addressed to any instance.
type Contextual interface {
	Event
	EventContext() string
}

// DeviceBound is implemented by events associated with a specific device.
type DeviceBound interface {
	Event
	EventDevice() string
}

// DecodeFunc turns one raw message into a validated typed event.
type DecodeFunc func(raw []byte) (Event, error)

// Model associates an event name with its decoder. Listeners that emit
// custom events provide Models for them so the adapter can decode the
// messages they feed into the pipeline.
type Model struct {
	Name   string
	Decode DecodeFunc
}

// contextualEvent carries the identifiers shared by action-instance events.
type contextualEvent struct {
	Action  string `json:"action,omitempty"`
	Context string `json:"context,omitempty"`
}

func (c contextualEvent) EventContext() string { return c.Context }

// deviceEvent carries the device identifier shared by device-bound events.
type deviceEvent struct {
	Device string `json:"device,omitempty"`
}

func (d deviceEvent) EventDevice() string { return d.Device }

// Coordinates locate a key or dial within the device's slot grid.
type Coordinates struct {
	Column int `json:"column"`
	Row    int `json:"row"`
}
