package streamdeck

import (
	"context"
	"strings"

	"github.com/snowmerak/streamdeck.go/lib/streamdeck/event"
)

// HandlerFunc handles one dispatched event.
type HandlerFunc func(ctx context.Context, ev event.Event) error

// SenderHandlerFunc handles one dispatched event and additionally receives a
// command sender pre-bound to the event's context.
type SenderHandlerFunc func(ctx context.Context, ev event.Event, sender *BoundSender) error

// binding is one registered handler for one event name. Exactly one of the
// two function fields is set; a non-nil senderHandler is the registration
// metadata telling the dispatcher to supply a bound command sender.
type binding struct {
	handler       HandlerFunc
	senderHandler SenderHandlerFunc
}

// actionBase stores ordered handler bindings keyed by event name. Bindings
// are append-only; duplicates for the same event name are all retained and
// all invoked in registration order.
type actionBase struct {
	events map[string][]binding
}

func newActionBase() actionBase {
	return actionBase{events: make(map[string][]binding)}
}

// On registers a handler for the named event.
func (a *actionBase) On(eventName string, h HandlerFunc) {
	a.events[eventName] = append(a.events[eventName], binding{handler: h})
}

// OnWithSender registers a handler that receives a command sender pre-bound
// to the context of the event being dispatched.
func (a *actionBase) OnWithSender(eventName string, h SenderHandlerFunc) {
	a.events[eventName] = append(a.events[eventName], binding{senderHandler: h})
}

func (a *actionBase) bindings(eventName string) []binding {
	return a.events[eventName]
}

func (a *actionBase) registeredEventNames() []string {
	names := make([]string, 0, len(a.events))
	for name := range a.events {
		names = append(names, name)
	}
	return names
}

// Registrable is the subset of action behavior the registry depends on. It is
// implemented by Action and GlobalAction.
type Registrable interface {
	bindings(eventName string) []binding
	registeredEventNames() []string

	// scopeID returns the action id the registration is scoped to, and
	// whether the scope is specific at all.
	scopeID() (string, bool)
}

// Action holds handler bindings scoped to one specific action id: its
// handlers only fire for events whose context matches.
type Action struct {
	actionBase
	uuid string
}

// NewAction creates an Action scoped to the given action id.
func NewAction(uuid string) *Action {
	return &Action{actionBase: newActionBase(), uuid: uuid}
}

// UUID returns the action id the registration is scoped to.
func (a *Action) UUID() string { return a.uuid }

// Name returns the last dot-separated segment of the action id.
func (a *Action) Name() string {
	parts := strings.Split(a.uuid, ".")
	return parts[len(parts)-1]
}

func (a *Action) scopeID() (string, bool) { return a.uuid, true }

// GlobalAction holds handler bindings that fire for their event types
// regardless of which action instance an event targets, including events
// carrying no context at all.
type GlobalAction struct {
	actionBase
}

// NewGlobalAction creates a GlobalAction.
func NewGlobalAction() *GlobalAction {
	return &GlobalAction{actionBase: newActionBase()}
}

func (a *GlobalAction) scopeID() (string, bool) { return "", false }
