package event

// VisibilityPayload carries the contextualized information for willAppear and
// willDisappear events.
type VisibilityPayload struct {
	Controller      string         `json:"controller,omitempty"`
	Settings        map[string]any `json:"settings,omitempty"`
	Coordinates     *Coordinates   `json:"coordinates,omitempty"`
	State           *int           `json:"state,omitempty"`
	IsInMultiAction bool           `json:"isInMultiAction,omitempty"`
}

// WillAppear occurs when an action instance becomes visible, including during
// startup for instances on the front page.
type WillAppear struct {
	contextualEvent
	deviceEvent
	Payload *VisibilityPayload `json:"payload,omitempty"`
}

func (*WillAppear) EventName() string { return "willAppear" }
func (*WillAppear) validate() error   { return nil }

// WillDisappear occurs when an action instance stops being visible.
type WillDisappear struct {
	contextualEvent
	deviceEvent
	Payload *VisibilityPayload `json:"payload,omitempty"`
}

func (*WillDisappear) EventName() string { return "willDisappear" }
func (*WillDisappear) validate() error   { return nil }
