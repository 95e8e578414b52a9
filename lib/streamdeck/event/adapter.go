package event

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Adapter decodes raw event messages into typed events. The "event" field of
// the message selects which registered model to validate against.
//
// Register is not safe to call concurrently with Decode; models are expected
// to be registered before the plugin starts receiving messages.
type Adapter struct {
	decoders map[string]DecodeFunc
}

// NewAdapter creates an Adapter with every default Stream Deck event model
// registered.
func NewAdapter() *Adapter {
	a := &Adapter{decoders: make(map[string]DecodeFunc)}
	a.Register(DefaultModels()...)
	return a
}

// Register adds event models to the adapter. A model registered for an
// already-known event name replaces the previous decoder.
func (a *Adapter) Register(models ...Model) {
	for _, m := range models {
		a.decoders[m.Name] = m.Decode
	}
}

// Known reports whether an event name has a registered model.
func (a *Adapter) Known(name string) bool {
	_, ok := a.decoders[name]
	return ok
}

// Decode parses and validates one raw message.
//
// Invalid JSON or a missing "event" field yields a *DecodeError. A type the
// adapter has no model for yields an error matching ErrUnknownEvent. A known
// type whose shape violates its model yields a *ValidationError retaining the
// raw payload. On success exactly one typed event is returned.
func (a *Adapter) Decode(raw []byte) (Event, error) {
	if !gjson.ValidBytes(raw) {
		return nil, &DecodeError{Err: errors.New("invalid json")}
	}

	name := gjson.GetBytes(raw, "event")
	if name.Type != gjson.String || name.Str == "" {
		return nil, &DecodeError{Err: errors.New(`missing or non-string "event" field`)}
	}

	decode, ok := a.decoders[name.Str]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name.Str, ErrUnknownEvent)
	}

	ev, err := decode(raw)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return nil, err
		}
		return nil, &ValidationError{Event: name.Str, Raw: raw, Err: err}
	}

	return ev, nil
}

// validatable is satisfied by every event model in this package.
type validatable interface {
	Event
	validate() error
}

// model builds a Model for a JSON-decodable event type.
func model[E any, PE interface {
	*E
	validatable
}](name string) Model {
	return Model{
		Name: name,
		Decode: func(raw []byte) (Event, error) {
			ev := PE(new(E))
			if err := json.Unmarshal(raw, ev); err != nil {
				return nil, err
			}
			if err := ev.validate(); err != nil {
				return nil, err
			}
			return ev, nil
		},
	}
}

// requireField reports a missing required field for an event model.
func requireField(name string) error {
	return fmt.Errorf("missing required field %q", name)
}

// DefaultModels returns the models for every event the Stream Deck software
// itself emits. Custom events from auxiliary listeners are registered on top
// of these.
func DefaultModels() []Model {
	return []Model{
		model[ApplicationDidLaunch]("applicationDidLaunch"),
		model[ApplicationDidTerminate]("applicationDidTerminate"),
		model[DeviceDidConnect]("deviceDidConnect"),
		model[DeviceDidDisconnect]("deviceDidDisconnect"),
		model[DialDown]("dialDown"),
		model[DialRotate]("dialRotate"),
		model[DialUp]("dialUp"),
		model[DidReceiveDeepLink]("didReceiveDeepLink"),
		model[DidReceiveGlobalSettings]("didReceiveGlobalSettings"),
		model[DidReceivePropertyInspectorMessage]("sendToPlugin"),
		model[DidReceiveSettings]("didReceiveSettings"),
		model[KeyDown]("keyDown"),
		model[KeyUp]("keyUp"),
		model[PropertyInspectorDidAppear]("propertyInspectorDidAppear"),
		model[PropertyInspectorDidDisappear]("propertyInspectorDidDisappear"),
		model[SystemDidWakeUp]("systemDidWakeUp"),
		model[TitleParametersDidChange]("titleParametersDidChange"),
		model[TouchTap]("touchTap"),
		model[WillAppear]("willAppear"),
		model[WillDisappear]("willDisappear"),
	}
}
