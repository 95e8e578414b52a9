package event

// DeviceSize describes the key grid of a device, excluding dials and
// touchscreens.
type DeviceSize struct {
	Columns int `json:"columns"`
	Rows    int `json:"rows"`
}

// DeviceInfo describes a newly connected device.
type DeviceInfo struct {
	Name string     `json:"name"`
	Size DeviceSize `json:"size"`
	Type int        `json:"type"`
}

// deviceTypeNames maps the numeric device type id to its product name.
var deviceTypeNames = map[int]string{
	0: "Stream Deck",
	1: "Stream Deck Mini",
	2: "Stream Deck XL",
	3: "Stream Deck Mobile",
	4: "Corsair GKeys",
	5: "Stream Deck Pedal",
	6: "Corsair Voyager",
	7: "Stream Deck +",
	8: "SCUF Controller",
	9: "Stream Deck Neo",
}

// TypeName returns the product name for the device type id, or "Unknown".
func (i DeviceInfo) TypeName() string {
	if name, ok := deviceTypeNames[i.Type]; ok {
		return name
	}
	return "Unknown"
}

// DeviceDidConnect occurs when a Stream Deck device is connected.
type DeviceDidConnect struct {
	deviceEvent
	DeviceInfo *DeviceInfo `json:"deviceInfo,omitempty"`
}

func (*DeviceDidConnect) EventName() string { return "deviceDidConnect" }

func (e *DeviceDidConnect) validate() error {
	if e.Device == "" {
		return requireField("device")
	}
	return nil
}

// DeviceDidDisconnect occurs when a Stream Deck device is disconnected.
type DeviceDidDisconnect struct {
	deviceEvent
}

func (*DeviceDidDisconnect) EventName() string { return "deviceDidDisconnect" }

func (e *DeviceDidDisconnect) validate() error {
	if e.Device == "" {
		return requireField("device")
	}
	return nil
}
