package streamdeck

import (
	"encoding/json"
	"fmt"
)

// commandWriter is the outbound half of the transport. Implementations must
// serialize concurrent writes themselves; the command sender performs no
// locking of its own.
type commandWriter interface {
	Send(payload []byte) error
}

// commandMessage is the wire shape of an outbound command.
type commandMessage struct {
	Event   string         `json:"event"`
	Context string         `json:"context,omitempty"`
	Device  string         `json:"device,omitempty"`
	Action  string         `json:"action,omitempty"`
	UUID    string         `json:"uuid,omitempty"`
	Payload map[string]any `json:"payload,omitempty"`
}

// CommandSender formats command event messages and writes them to the
// Stream Deck host. Commands built per call are serialized and transmitted
// immediately, never retained. Serialization failures are returned to the
// caller.
type CommandSender struct {
	writer           commandWriter
	registrationUUID string
}

// NewCommandSender creates a CommandSender writing through the given
// transport. registrationUUID is the plugin id the Stream Deck software
// passed to the entry point; it doubles as the context for plugin-global
// commands.
func NewCommandSender(w commandWriter, registrationUUID string) *CommandSender {
	return &CommandSender{writer: w, registrationUUID: registrationUUID}
}

func (s *CommandSender) send(msg commandMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal %q command: %w", msg.Event, err)
	}
	return s.writer.Send(data)
}

// SendRegistration sends the registration handshake the Stream Deck software
// expects immediately after the plugin connects.
func (s *CommandSender) SendRegistration(registerEvent string) error {
	return s.send(commandMessage{Event: registerEvent, UUID: s.registrationUUID})
}

// SetSettings persists settings for an action instance.
func (s *CommandSender) SetSettings(context string, settings map[string]any) error {
	return s.send(commandMessage{Event: "setSettings", Context: context, Payload: settings})
}

// GetSettings requests the persisted settings of an action instance; the host
// answers with a didReceiveSettings event.
func (s *CommandSender) GetSettings(context string) error {
	return s.send(commandMessage{Event: "getSettings", Context: context})
}

// SetGlobalSettings persists plugin-wide settings.
func (s *CommandSender) SetGlobalSettings(settings map[string]any) error {
	return s.send(commandMessage{Event: "setGlobalSettings", Context: s.registrationUUID, Payload: settings})
}

// GetGlobalSettings requests the plugin-wide settings; the host answers with
// a didReceiveGlobalSettings event.
func (s *CommandSender) GetGlobalSettings() error {
	return s.send(commandMessage{Event: "getGlobalSettings", Context: s.registrationUUID})
}

// OpenURL opens the URL in the default browser.
func (s *CommandSender) OpenURL(context, url string) error {
	return s.send(commandMessage{Event: "openUrl", Context: context, Payload: map[string]any{"url": url}})
}

// LogMessage writes a message to the Stream Deck log file.
func (s *CommandSender) LogMessage(context, message string) error {
	return s.send(commandMessage{Event: "logMessage", Context: context, Payload: map[string]any{"message": message}})
}

// TitleOptions narrows what SetTitle updates. Zero-valued fields are omitted
// from the command.
type TitleOptions struct {
	Title  string
	Target string // "hardware", "software" or "both"
	State  *int
}

// SetTitle updates the title displayed by an action instance.
func (s *CommandSender) SetTitle(context string, opts TitleOptions) error {
	payload := map[string]any{}
	if opts.Title != "" {
		payload["title"] = opts.Title
	}
	if opts.Target != "" {
		payload["target"] = opts.Target
	}
	if opts.State != nil {
		payload["state"] = *opts.State
	}
	return s.send(commandMessage{Event: "setTitle", Context: context, Payload: payload})
}

// imageTargetCodes maps the SetImage target names to their wire codes.
var imageTargetCodes = map[string]int{
	"both":     0,
	"hardware": 1,
	"software": 2,
}

// SetImage updates the image displayed by an action instance. image is a
// base64-encoded data URI.
func (s *CommandSender) SetImage(context, image, target string, state int) error {
	code, ok := imageTargetCodes[target]
	if !ok {
		return fmt.Errorf("setImage: invalid target %q", target)
	}
	return s.send(commandMessage{
		Event:   "setImage",
		Context: context,
		Payload: map[string]any{"image": image, "target": code, "state": state},
	})
}

// SetFeedback updates the layout values of a touchscreen action instance.
func (s *CommandSender) SetFeedback(context string, payload map[string]any) error {
	return s.send(commandMessage{Event: "setFeedback", Context: context, Payload: payload})
}

// SetFeedbackLayout switches the layout of a touchscreen action instance.
// layout names a pre-defined layout or a relative path to a custom one.
func (s *CommandSender) SetFeedbackLayout(context, layout string) error {
	return s.send(commandMessage{Event: "setFeedbackLayout", Context: context, Payload: map[string]any{"layout": layout}})
}

// TriggerDescription describes the interactions of an encoder action
// instance. Empty fields hide that interaction's description.
type TriggerDescription struct {
	Rotate    string
	Push      string
	Touch     string
	LongTouch string
}

// SetTriggerDescription updates the trigger descriptions of an encoder
// action instance. All descriptions are replaced on every call.
func (s *CommandSender) SetTriggerDescription(context string, desc TriggerDescription) error {
	orUndefined := func(v string) string {
		if v == "" {
			return "undefined"
		}
		return v
	}
	return s.send(commandMessage{
		Event:   "setTriggerDescription",
		Context: context,
		Payload: map[string]any{
			"rotate":    orUndefined(desc.Rotate),
			"push":      orUndefined(desc.Push),
			"touch":     orUndefined(desc.Touch),
			"longTouch": orUndefined(desc.LongTouch),
		},
	})
}

// ShowAlert temporarily shows an alert icon on an action instance.
func (s *CommandSender) ShowAlert(context string) error {
	return s.send(commandMessage{Event: "showAlert", Context: context})
}

// ShowOK temporarily shows an OK checkmark icon on an action instance.
func (s *CommandSender) ShowOK(context string) error {
	return s.send(commandMessage{Event: "showOk", Context: context})
}

// SetState switches a multi-state action instance to the given state.
func (s *CommandSender) SetState(context string, state int) error {
	return s.send(commandMessage{Event: "setState", Context: context, Payload: map[string]any{"state": state}})
}

// SwitchToProfile switches a device to one of the plugin's declared read-only
// profiles. An empty profile switches back to the previously selected one.
func (s *CommandSender) SwitchToProfile(context, device, profile string, page int) error {
	var payload map[string]any
	if profile != "" {
		payload = map[string]any{"profile": profile, "page": page}
	}
	return s.send(commandMessage{Event: "switchToProfile", Context: context, Device: device, Payload: payload})
}

// SendToPropertyInspector sends a payload to the property inspector of an
// action instance.
func (s *CommandSender) SendToPropertyInspector(context string, payload map[string]any) error {
	return s.send(commandMessage{Event: "sendToPropertyInspector", Context: context, Payload: payload})
}

// SendToPlugin sends a payload to another plugin's action.
func (s *CommandSender) SendToPlugin(context, action string, payload map[string]any) error {
	return s.send(commandMessage{Event: "sendToPlugin", Context: context, Action: action, Payload: payload})
}

// Bind returns a sender whose commands implicitly address the given context.
func (s *CommandSender) Bind(context string) *BoundSender {
	return &BoundSender{sender: s, context: context}
}

// BoundSender wraps a CommandSender with the context of the event being
// dispatched, so handlers address the triggering action instance without
// threading the context id through themselves.
type BoundSender struct {
	sender  *CommandSender
	context string
}

// Context returns the bound action instance context. It is empty when the
// dispatched event carried no context.
func (b *BoundSender) Context() string { return b.context }

// Unbound returns the underlying CommandSender for commands addressed to a
// different context.
func (b *BoundSender) Unbound() *CommandSender { return b.sender }

func (b *BoundSender) SetSettings(settings map[string]any) error {
	return b.sender.SetSettings(b.context, settings)
}

func (b *BoundSender) GetSettings() error { return b.sender.GetSettings(b.context) }

func (b *BoundSender) OpenURL(url string) error { return b.sender.OpenURL(b.context, url) }

func (b *BoundSender) LogMessage(message string) error {
	return b.sender.LogMessage(b.context, message)
}

func (b *BoundSender) SetTitle(opts TitleOptions) error { return b.sender.SetTitle(b.context, opts) }

func (b *BoundSender) SetImage(image, target string, state int) error {
	return b.sender.SetImage(b.context, image, target, state)
}

func (b *BoundSender) SetFeedback(payload map[string]any) error {
	return b.sender.SetFeedback(b.context, payload)
}

func (b *BoundSender) SetFeedbackLayout(layout string) error {
	return b.sender.SetFeedbackLayout(b.context, layout)
}

func (b *BoundSender) ShowAlert() error { return b.sender.ShowAlert(b.context) }

func (b *BoundSender) ShowOK() error { return b.sender.ShowOK(b.context) }

func (b *BoundSender) SetState(state int) error { return b.sender.SetState(b.context, state) }

func (b *BoundSender) SendToPropertyInspector(payload map[string]any) error {
	return b.sender.SendToPropertyInspector(b.context, payload)
}
