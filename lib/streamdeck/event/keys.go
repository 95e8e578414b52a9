package event

// KeyPayload carries the contextualized information for key gestures. Every
// field is optional on the wire; multi-action presses additionally carry the
// user's desired state.
type KeyPayload struct {
	Settings         map[string]any `json:"settings,omitempty"`
	Coordinates      *Coordinates   `json:"coordinates,omitempty"`
	State            *int           `json:"state,omitempty"`
	UserDesiredState *int           `json:"userDesiredState,omitempty"`
	IsInMultiAction  bool           `json:"isInMultiAction,omitempty"`
}

// KeyDown occurs when the user presses a key down.
type KeyDown struct {
	contextualEvent
	deviceEvent
	Payload *KeyPayload `json:"payload,omitempty"`
}

func (*KeyDown) EventName() string { return "keyDown" }
func (*KeyDown) validate() error   { return nil }

// KeyUp occurs when the user releases a pressed key.
type KeyUp struct {
	contextualEvent
	deviceEvent
	Payload *KeyPayload `json:"payload,omitempty"`
}

func (*KeyUp) EventName() string { return "keyUp" }
func (*KeyUp) validate() error   { return nil }
