package event

// SystemDidWakeUp occurs when the computer wakes from sleep.
type SystemDidWakeUp struct{}

func (*SystemDidWakeUp) EventName() string { return "systemDidWakeUp" }
func (*SystemDidWakeUp) validate() error   { return nil }

// DeepLinkPayload carries the routed deep-link URL.
type DeepLinkPayload struct {
	URL string `json:"url"`
}

// DidReceiveDeepLink occurs when a deep-link message of the form
// streamdeck://plugins/message/<PLUGIN_UUID>/{MESSAGE} is routed to the
// plugin.
type DidReceiveDeepLink struct {
	Payload DeepLinkPayload `json:"payload"`
}

func (*DidReceiveDeepLink) EventName() string { return "didReceiveDeepLink" }

func (e *DidReceiveDeepLink) validate() error {
	if e.Payload.URL == "" {
		return requireField("payload.url")
	}
	return nil
}
