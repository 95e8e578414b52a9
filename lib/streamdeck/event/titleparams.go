package event

// TitleParameters describe how an instance's title is rendered.
type TitleParameters struct {
	FontFamily     string `json:"fontFamily"`
	FontSize       int    `json:"fontSize"`
	FontStyle      string `json:"fontStyle"`
	FontUnderline  bool   `json:"fontUnderline"`
	ShowTitle      bool   `json:"showTitle"`
	TitleAlignment string `json:"titleAlignment"`
	TitleColor     string `json:"titleColor"`
}

// TitleParametersDidChangePayload carries the new title and its parameters.
type TitleParametersDidChangePayload struct {
	Title           string           `json:"title"`
	TitleParameters *TitleParameters `json:"titleParameters,omitempty"`
	Settings        map[string]any   `json:"settings,omitempty"`
	Coordinates     *Coordinates     `json:"coordinates,omitempty"`
	State           *int             `json:"state,omitempty"`
}

// TitleParametersDidChange occurs when the user updates an instance's title
// or title parameters.
type TitleParametersDidChange struct {
	deviceEvent
	Context string                           `json:"context,omitempty"`
	Payload *TitleParametersDidChangePayload `json:"payload,omitempty"`
}

func (*TitleParametersDidChange) EventName() string { return "titleParametersDidChange" }
func (*TitleParametersDidChange) validate() error   { return nil }

func (e *TitleParametersDidChange) EventContext() string { return e.Context }
