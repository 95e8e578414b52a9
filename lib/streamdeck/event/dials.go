package event

// EncoderPayload carries the contextualized information for dial gestures.
type EncoderPayload struct {
	Controller  string         `json:"controller,omitempty"`
	Settings    map[string]any `json:"settings,omitempty"`
	Coordinates *Coordinates   `json:"coordinates,omitempty"`
}

// DialRotatePayload extends the encoder payload with rotation details.
type DialRotatePayload struct {
	EncoderPayload
	Ticks   int  `json:"ticks"`
	Pressed bool `json:"pressed"`
}

// DialDown occurs when the user presses a dial down.
type DialDown struct {
	contextualEvent
	deviceEvent
	Payload *EncoderPayload `json:"payload,omitempty"`
}

func (*DialDown) EventName() string { return "dialDown" }
func (*DialDown) validate() error   { return nil }

// DialUp occurs when the user releases a pressed dial.
type DialUp struct {
	contextualEvent
	deviceEvent
	Payload *EncoderPayload `json:"payload,omitempty"`
}

func (*DialUp) EventName() string { return "dialUp" }
func (*DialUp) validate() error   { return nil }

// DialRotate occurs when the user rotates a dial.
type DialRotate struct {
	contextualEvent
	deviceEvent
	Payload *DialRotatePayload `json:"payload"`
}

func (*DialRotate) EventName() string { return "dialRotate" }

func (e *DialRotate) validate() error {
	if e.Payload == nil {
		return requireField("payload")
	}
	return nil
}
