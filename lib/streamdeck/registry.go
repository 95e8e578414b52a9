package streamdeck

// Registry holds the registered actions and resolves the handlers matching an
// event. Registrations are append-only and happen before the manager enters
// Running; lookups during dispatch therefore run without locking.
type Registry struct {
	actions []Registrable
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends an action to the registry.
func (r *Registry) Register(a Registrable) {
	r.actions = append(r.actions, a)
}

// HandlersFor returns the handlers matching the named event, in dispatch
// order: first the handlers of specifically-scoped actions whose id equals
// the event's context (in registration order), then the handlers of global
// actions (in registration order). An event with no context matches only
// global actions.
func (r *Registry) HandlersFor(eventName, contextID string) []binding {
	var matched []binding

	if contextID != "" {
		for _, a := range r.actions {
			if id, specific := a.scopeID(); specific && id == contextID {
				matched = append(matched, a.bindings(eventName)...)
			}
		}
	}
	for _, a := range r.actions {
		if _, specific := a.scopeID(); !specific {
			matched = append(matched, a.bindings(eventName)...)
		}
	}

	return matched
}
