package event

// DidReceivePropertyInspectorMessage occurs when the property inspector sends
// a payload to the plugin via the sendToPlugin command.
type DidReceivePropertyInspectorMessage struct {
	contextualEvent
	Payload map[string]any `json:"payload"`
}

func (*DidReceivePropertyInspectorMessage) EventName() string { return "sendToPlugin" }
func (*DidReceivePropertyInspectorMessage) validate() error   { return nil }

// PropertyInspectorDidAppear occurs when the user selects an action in the
// Stream Deck application, opening its property inspector.
type PropertyInspectorDidAppear struct {
	contextualEvent
	deviceEvent
}

func (*PropertyInspectorDidAppear) EventName() string { return "propertyInspectorDidAppear" }
func (*PropertyInspectorDidAppear) validate() error   { return nil }

// PropertyInspectorDidDisappear occurs when the user deselects the action.
type PropertyInspectorDidDisappear struct {
	contextualEvent
	deviceEvent
}

func (*PropertyInspectorDidDisappear) EventName() string { return "propertyInspectorDidDisappear" }
func (*PropertyInspectorDidDisappear) validate() error   { return nil }
