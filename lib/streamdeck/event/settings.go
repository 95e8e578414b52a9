package event

// SettingsPayload carries the persisted settings of an action instance.
type SettingsPayload struct {
	Controller      string         `json:"controller,omitempty"`
	Settings        map[string]any `json:"settings"`
	Coordinates     *Coordinates   `json:"coordinates,omitempty"`
	State           *int           `json:"state,omitempty"`
	IsInMultiAction bool           `json:"isInMultiAction,omitempty"`
}

// DidReceiveSettings occurs in response to a getSettings command, or when the
// property inspector updates an instance's settings.
type DidReceiveSettings struct {
	contextualEvent
	deviceEvent
	Payload *SettingsPayload `json:"payload"`
}

func (*DidReceiveSettings) EventName() string { return "didReceiveSettings" }

func (e *DidReceiveSettings) validate() error {
	if e.Payload == nil {
		return requireField("payload")
	}
	return nil
}

// GlobalSettingsPayload carries the plugin-wide persisted settings.
type GlobalSettingsPayload struct {
	Settings map[string]any `json:"settings"`
}

// DidReceiveGlobalSettings occurs in response to a getGlobalSettings command,
// or when the global settings are updated.
type DidReceiveGlobalSettings struct {
	Payload *GlobalSettingsPayload `json:"payload"`
}

func (*DidReceiveGlobalSettings) EventName() string { return "didReceiveGlobalSettings" }

func (e *DidReceiveGlobalSettings) validate() error {
	if e.Payload == nil {
		return requireField("payload")
	}
	return nil
}
