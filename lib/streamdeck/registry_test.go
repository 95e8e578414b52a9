package streamdeck

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowmerak/streamdeck.go/lib/streamdeck/event"
)

func noopHandler(context.Context, event.Event) error { return nil }

func TestRegistry_SpecificScopeFiltering(t *testing.T) {
	r := NewRegistry()

	specific := NewAction("A1")
	specific.On("keyDown", noopHandler)
	global := NewGlobalAction()
	global.On("keyDown", noopHandler)
	r.Register(specific)
	r.Register(global)

	// Matching context: both tiers.
	assert.Len(t, r.HandlersFor("keyDown", "A1"), 2)

	// Non-matching context: global only.
	assert.Len(t, r.HandlersFor("keyDown", "A2"), 1)

	// No context: global only.
	assert.Len(t, r.HandlersFor("keyDown", ""), 1)

	// Different event type: nothing.
	assert.Empty(t, r.HandlersFor("keyUp", "A1"))
}

func TestRegistry_SpecificTierBeforeGlobalTier(t *testing.T) {
	r := NewRegistry()
	var order []string

	mark := func(name string) HandlerFunc {
		return func(context.Context, event.Event) error {
			order = append(order, name)
			return nil
		}
	}

	// Register the global action first to prove tier ordering is not
	// registration ordering across tiers.
	global := NewGlobalAction()
	global.On("keyDown", mark("g1"))
	global.On("keyDown", mark("g2"))
	r.Register(global)

	specific := NewAction("A1")
	specific.On("keyDown", mark("s1"))
	specific.On("keyDown", mark("s2"))
	r.Register(specific)

	for _, b := range r.HandlersFor("keyDown", "A1") {
		require.NoError(t, b.handler(context.Background(), &event.KeyDown{}))
	}

	assert.Equal(t, []string{"s1", "s2", "g1", "g2"}, order)
}

func TestRegistry_RegistrationOrderWithinTier(t *testing.T) {
	r := NewRegistry()
	var order []string

	for _, name := range []string{"a", "b", "c"} {
		name := name
		act := NewAction("A1")
		act.On("keyDown", func(context.Context, event.Event) error {
			order = append(order, name)
			return nil
		})
		r.Register(act)
	}

	for _, b := range r.HandlersFor("keyDown", "A1") {
		require.NoError(t, b.handler(context.Background(), &event.KeyDown{}))
	}

	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestRegistry_DuplicateHandlersAllRetained(t *testing.T) {
	r := NewRegistry()

	act := NewAction("A1")
	act.On("keyDown", noopHandler)
	act.On("keyDown", noopHandler)
	act.On("keyDown", noopHandler)
	r.Register(act)

	assert.Len(t, r.HandlersFor("keyDown", "A1"), 3)
}

func TestAction_Name(t *testing.T) {
	assert.Equal(t, "increment", NewAction("com.example.counter.increment").Name())
	assert.Equal(t, "plain", NewAction("plain").Name())
}
