package event

// ApplicationPayload names the monitored application that triggered the event.
type ApplicationPayload struct {
	Application string `json:"application"`
}

// ApplicationDidLaunch occurs when a monitored application is launched.
type ApplicationDidLaunch struct {
	Payload ApplicationPayload `json:"payload"`
}

func (*ApplicationDidLaunch) EventName() string { return "applicationDidLaunch" }

func (e *ApplicationDidLaunch) validate() error {
	if e.Payload.Application == "" {
		return requireField("payload.application")
	}
	return nil
}

// ApplicationDidTerminate occurs when a monitored application terminates.
type ApplicationDidTerminate struct {
	Payload ApplicationPayload `json:"payload"`
}

func (*ApplicationDidTerminate) EventName() string { return "applicationDidTerminate" }

func (e *ApplicationDidTerminate) validate() error {
	if e.Payload.Application == "" {
		return requireField("payload.application")
	}
	return nil
}
