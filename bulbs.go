package vesync

import (
	"context"
	"encoding/json"
	"strconv"
)

// RGB is a bulb color in 8-bit channels.
type RGB struct {
	Red   int `json:"red"`
	Green int `json:"green"`
	Blue  int `json:"blue"`
}

// Bulb is a smart light bulb. Depending on the model it supports dimming,
// tunable white and full RGB color.
type Bulb struct {
	baseDevice

	brightness int
	colorTemp  int
	color      RGB
}

func newBulbDevice(c *Client, rec DeviceRecord, cfg *DeviceConfig) Device {
	return &Bulb{baseDevice: newBaseDevice(c, rec, cfg)}
}

// Brightness returns the brightness from the last update, 1 to 100.
func (b *Bulb) Brightness() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.brightness
}

// ColorTemp returns the white color temperature as a percentage, 0 being
// warmest. Only meaningful for tunable white models.
func (b *Bulb) ColorTemp() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.colorTemp
}

// Color returns the RGB color from the last update. Only meaningful for
// multicolor models.
func (b *Bulb) Color() RGB {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.color
}

// tunableV1 reports whether this is the legacy tunable white model, which
// speaks a json command dialect over the V1 bypass endpoint.
func (b *Bulb) tunableV1() bool {
	return b.config.Protocol == protocolBypassV1 && b.SupportsFeature(FeatureColorTemp)
}

// Update refreshes the bulb state.
func (b *Bulb) Update(ctx context.Context) (bool, error) {
	if b.config.Protocol == protocolBypassV2 {
		return b.updateV2(ctx)
	}
	if b.tunableV1() {
		return b.updateTunableV1(ctx)
	}

	result, ok, err := b.client.callBypassV1(ctx, &b.baseDevice, "deviceDetail", "deviceDetail", nil)
	if err != nil || !ok {
		return false, err
	}
	var detail struct {
		DeviceStatus     string `json:"deviceStatus"`
		ConnectionStatus string `json:"connectionStatus"`
		Brightness       string `json:"brightNess"`
	}
	if err := json.Unmarshal(result, &detail); err != nil {
		b.setLastResponse(ResponseInfo{Name: "BAD_RESPONSE", Kind: KindBadResponse, Message: "Undecodable bulb detail"})
		return false, nil
	}

	b.mu.Lock()
	if detail.DeviceStatus != "" {
		b.deviceStatus = DeviceStatus(detail.DeviceStatus)
	}
	if detail.ConnectionStatus == string(ConnectionOnline) {
		b.connectionStatus = ConnectionOnline
	}
	if v, err := strconv.Atoi(detail.Brightness); err == nil {
		b.brightness = v
	}
	b.mu.Unlock()
	b.touch()
	return true, nil
}

func (b *Bulb) updateTunableV1(ctx context.Context) (bool, error) {
	result, ok, err := b.client.callBypassV1(ctx, &b.baseDevice, "bypass", "bypass",
		map[string]any{"jsonCmd": map[string]any{"getLightStatus": "get"}})
	if err != nil || !ok {
		return false, err
	}
	var status struct {
		Light struct {
			Action     string `json:"action"`
			Brightness int    `json:"brightness"`
			ColorTempe int    `json:"colorTempe"`
		} `json:"light"`
	}
	if err := json.Unmarshal(result, &status); err != nil {
		b.setLastResponse(ResponseInfo{Name: "BAD_RESPONSE", Kind: KindBadResponse, Message: "Undecodable bulb status"})
		return false, nil
	}

	b.mu.Lock()
	if status.Light.Action != "" {
		b.deviceStatus = DeviceStatus(status.Light.Action)
	}
	b.brightness = status.Light.Brightness
	b.colorTemp = status.Light.ColorTempe
	b.mu.Unlock()
	b.touch()
	return true, nil
}

func (b *Bulb) updateV2(ctx context.Context) (bool, error) {
	result, ok, err := b.client.callBypassV2(ctx, &b.baseDevice, "getLightStatus", map[string]any{})
	if err != nil || !ok {
		return false, err
	}

	state, ok := decodeV2Result[struct {
		Action     string `json:"action"`
		Brightness *int   `json:"brightness"`
		ColorTempe *int   `json:"colorTempe"`
		Red        *int   `json:"red"`
		Green      *int   `json:"green"`
		Blue       *int   `json:"blue"`
	}](&b.baseDevice, "getLightStatus", result)
	if !ok {
		return false, nil
	}

	b.mu.Lock()
	if state.Action != "" {
		b.deviceStatus = DeviceStatus(state.Action)
	}
	if state.Brightness != nil {
		b.brightness = *state.Brightness
	}
	if state.ColorTempe != nil {
		b.colorTemp = *state.ColorTempe
	}
	if state.Red != nil && state.Green != nil && state.Blue != nil {
		b.color = RGB{Red: *state.Red, Green: *state.Green, Blue: *state.Blue}
	}
	b.mu.Unlock()
	b.touch()
	return true, nil
}

// TurnOn switches the bulb on.
func (b *Bulb) TurnOn(ctx context.Context) (bool, error) {
	return b.ToggleSwitch(ctx, true)
}

// TurnOff switches the bulb off.
func (b *Bulb) TurnOff(ctx context.Context) (bool, error) {
	return b.ToggleSwitch(ctx, false)
}

// ToggleSwitch sets the bulb power state.
func (b *Bulb) ToggleSwitch(ctx context.Context, on bool) (bool, error) {
	status := string(StatusOff)
	if on {
		status = string(StatusOn)
	}

	var ok bool
	var err error
	switch {
	case b.config.Protocol == protocolBypassV2:
		_, ok, err = b.client.callBypassV2(ctx, &b.baseDevice, "setSwitch",
			map[string]any{"id": 0, "enabled": on})
	case b.tunableV1():
		_, ok, err = b.client.callBypassV1(ctx, &b.baseDevice, "bypass", "bypass",
			map[string]any{"jsonCmd": map[string]any{"light": map[string]any{"action": status}}})
	default:
		_, ok, err = b.client.callBypassV1(ctx, &b.baseDevice, "smartBulbPower", "smartBulbPower",
			map[string]any{"status": status})
	}
	if err != nil || !ok {
		return false, err
	}

	b.setStatus(DeviceStatus(status))
	return true, nil
}

// SetBrightness sets the brightness, 1 to 100.
func (b *Bulb) SetBrightness(ctx context.Context, brightness int) (bool, error) {
	if !b.SupportsFeature(FeatureDimmable) {
		return false, ErrUnsupportedType
	}
	if brightness < 1 {
		brightness = 1
	} else if brightness > 100 {
		brightness = 100
	}

	var ok bool
	var err error
	switch {
	case b.config.Protocol == protocolBypassV2:
		_, ok, err = b.client.callBypassV2(ctx, &b.baseDevice, "setLightStatus",
			map[string]any{"action": "on", "brightness": brightness})
	case b.tunableV1():
		_, ok, err = b.client.callBypassV1(ctx, &b.baseDevice, "bypass", "bypass",
			map[string]any{"jsonCmd": map[string]any{
				"light": map[string]any{"action": "on", "brightness": brightness},
			}})
	default:
		_, ok, err = b.client.callBypassV1(ctx, &b.baseDevice, "smartBulbBrightnessCtl", "smartBulbBrightnessCtl",
			map[string]any{"brightNess": strconv.Itoa(brightness)})
	}
	if err != nil || !ok {
		return false, err
	}

	b.mu.Lock()
	b.brightness = brightness
	b.mu.Unlock()
	b.setStatus(StatusOn)
	return true, nil
}

// SetColorTemp sets the white color temperature as a percentage, 0 being
// warmest. Only tunable white models support this.
func (b *Bulb) SetColorTemp(ctx context.Context, pct int) (bool, error) {
	if !b.SupportsFeature(FeatureColorTemp) {
		return false, ErrUnsupportedType
	}
	if pct < 0 {
		pct = 0
	} else if pct > 100 {
		pct = 100
	}

	var ok bool
	var err error
	if b.config.Protocol == protocolBypassV2 {
		_, ok, err = b.client.callBypassV2(ctx, &b.baseDevice, "setLightStatus",
			map[string]any{"action": "on", "colorTempe": pct})
	} else {
		_, ok, err = b.client.callBypassV1(ctx, &b.baseDevice, "bypass", "bypass",
			map[string]any{"jsonCmd": map[string]any{
				"light": map[string]any{"colorTempe": pct},
			}})
	}
	if err != nil || !ok {
		return false, err
	}

	b.mu.Lock()
	b.colorTemp = pct
	b.mu.Unlock()
	b.setStatus(StatusOn)
	return true, nil
}

// SetColor sets an RGB color on multicolor models.
func (b *Bulb) SetColor(ctx context.Context, color RGB) (bool, error) {
	if !b.SupportsFeature(FeatureRGB) {
		return false, ErrUnsupportedType
	}
	_, ok, err := b.client.callBypassV2(ctx, &b.baseDevice, "setLightStatus", map[string]any{
		"action": "on",
		"red":    clampChannel(color.Red),
		"green":  clampChannel(color.Green),
		"blue":   clampChannel(color.Blue),
	})
	if err != nil || !ok {
		return false, err
	}

	b.mu.Lock()
	b.color = color
	b.mu.Unlock()
	b.setStatus(StatusOn)
	return true, nil
}

func clampChannel(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
