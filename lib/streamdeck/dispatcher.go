package streamdeck

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/snowmerak/streamdeck.go/lib/streamdeck/event"
)

// dispatcher resolves the handlers matching an event and invokes them
// sequentially on the goroutine that received the event. A failing handler
// never aborts the event or the receive loop: error returns and panics are
// logged per handler and dispatch continues with the next match.
type dispatcher struct {
	registry *Registry
	sender   *CommandSender
	log      zerolog.Logger
}

func (d *dispatcher) dispatch(ctx context.Context, ev event.Event) {
	var contextID string
	if c, ok := ev.(event.Contextual); ok {
		contextID = c.EventContext()
	}

	for _, b := range d.registry.HandlersFor(ev.EventName(), contextID) {
		d.invoke(ctx, b, ev, contextID)
	}
}

func (d *dispatcher) invoke(ctx context.Context, b binding, ev event.Event, contextID string) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().
				Str("event", ev.EventName()).
				Interface("panic", r).
				Msg("handler panicked")
		}
	}()

	var err error
	if b.senderHandler != nil {
		err = b.senderHandler(ctx, ev, d.sender.Bind(contextID))
	} else {
		err = b.handler(ctx, ev)
	}
	if err != nil {
		d.log.Error().
			Err(err).
			Str("event", ev.EventName()).
			Msg("handler failed")
	}
}
