package vesync

import (
	"context"
	"encoding/json"
)

// WallSwitch is an in-wall light switch. The ESWD16 model is a dimmer with
// an RGB indicator light.
type WallSwitch struct {
	baseDevice

	brightness     int
	indicatorLight DeviceStatus
}

func newSwitchDevice(c *Client, rec DeviceRecord, cfg *DeviceConfig) Device {
	return &WallSwitch{baseDevice: newBaseDevice(c, rec, cfg), indicatorLight: StatusUnknown}
}

// Brightness returns the dimmer level from the last update, 1 to 100.
// Always 0 for non-dimming models.
func (s *WallSwitch) Brightness() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.brightness
}

// IndicatorLight returns the indicator light state from the last update.
func (s *WallSwitch) IndicatorLight() DeviceStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indicatorLight
}

// Update refreshes the switch state.
func (s *WallSwitch) Update(ctx context.Context) (bool, error) {
	result, ok, err := s.client.callBypassV1(ctx, &s.baseDevice, "deviceDetail", "deviceDetail", nil)
	if err != nil || !ok {
		return false, err
	}

	var detail struct {
		DeviceStatus     string `json:"deviceStatus"`
		ConnectionStatus string `json:"connectionStatus"`
		Brightness       *int   `json:"brightness"`
		IndicatorStatus  string `json:"indicatorlightStatus"`
	}
	if err := json.Unmarshal(result, &detail); err != nil {
		s.setLastResponse(ResponseInfo{Name: "BAD_RESPONSE", Kind: KindBadResponse, Message: "Undecodable switch detail"})
		return false, nil
	}

	s.mu.Lock()
	if detail.DeviceStatus != "" {
		s.deviceStatus = DeviceStatus(detail.DeviceStatus)
	}
	if detail.ConnectionStatus == string(ConnectionOnline) {
		s.connectionStatus = ConnectionOnline
	}
	if detail.Brightness != nil {
		s.brightness = *detail.Brightness
	}
	if detail.IndicatorStatus != "" {
		s.indicatorLight = DeviceStatus(detail.IndicatorStatus)
	}
	s.mu.Unlock()
	s.touch()
	return true, nil
}

// TurnOn switches the load on.
func (s *WallSwitch) TurnOn(ctx context.Context) (bool, error) {
	return s.ToggleSwitch(ctx, true)
}

// TurnOff switches the load off.
func (s *WallSwitch) TurnOff(ctx context.Context) (bool, error) {
	return s.ToggleSwitch(ctx, false)
}

// ToggleSwitch sets the switch state.
func (s *WallSwitch) ToggleSwitch(ctx context.Context, on bool) (bool, error) {
	status := string(StatusOff)
	if on {
		status = string(StatusOn)
	}

	endpoint := "deviceStatus"
	if s.SupportsFeature(FeatureDimmable) {
		endpoint = "dimmerPowerSwitchCtl"
	}
	_, ok, err := s.client.callBypassV1(ctx, &s.baseDevice, endpoint, endpoint,
		map[string]any{"status": status})
	if err != nil || !ok {
		return false, err
	}

	if on {
		s.setStatus(StatusOn)
	} else {
		s.setStatus(StatusOff)
	}
	return true, nil
}

// SetBrightness sets the dimmer level, 1 to 100. Only dimming models
// support this.
func (s *WallSwitch) SetBrightness(ctx context.Context, brightness int) (bool, error) {
	if !s.SupportsFeature(FeatureDimmable) {
		return false, ErrUnsupportedType
	}
	if brightness < 1 {
		brightness = 1
	} else if brightness > 100 {
		brightness = 100
	}

	_, ok, err := s.client.callBypassV1(ctx, &s.baseDevice, "dimmerBrightnessCtl", "dimmerBrightnessCtl",
		map[string]any{"brightness": brightness})
	if err != nil || !ok {
		return false, err
	}

	s.mu.Lock()
	s.brightness = brightness
	s.mu.Unlock()
	s.setStatus(StatusOn)
	return true, nil
}

// SetIndicatorLight turns the faceplate indicator light on or off.
func (s *WallSwitch) SetIndicatorLight(ctx context.Context, on bool) (bool, error) {
	if !s.SupportsFeature(FeatureNightLight) {
		return false, ErrUnsupportedType
	}
	status := string(StatusOff)
	if on {
		status = string(StatusOn)
	}
	_, ok, err := s.client.callBypassV1(ctx, &s.baseDevice, "dimmerIndicatorLightCtl", "dimmerIndicatorLightCtl",
		map[string]any{"status": status})
	if err != nil || !ok {
		return false, err
	}

	s.mu.Lock()
	s.indicatorLight = DeviceStatus(status)
	s.mu.Unlock()
	s.touch()
	return true, nil
}
