package event

// TouchTapPayload carries the position and duration of a touchscreen tap.
type TouchTapPayload struct {
	EncoderPayload
	Hold        bool   `json:"hold"`
	TapPosition [2]int `json:"tapPos"`
}

// TouchTap occurs when the user taps the touchscreen of an encoder action.
type TouchTap struct {
	contextualEvent
	deviceEvent
	Payload *TouchTapPayload `json:"payload"`
}

func (*TouchTap) EventName() string { return "touchTap" }

func (e *TouchTap) validate() error {
	if e.Payload == nil {
		return requireField("payload")
	}
	return nil
}
