package vesync

import "context"

// TowerFan is a bladeless tower fan driven over the V2 device endpoint.
type TowerFan struct {
	baseDevice

	fanLevel    int
	mode        string
	temperature int
	oscillating bool
	muted       bool
	display     bool
}

func newTowerFanDevice(c *Client, rec DeviceRecord, cfg *DeviceConfig) Device {
	return &TowerFan{baseDevice: newBaseDevice(c, rec, cfg)}
}

// FanLevel returns the fan speed from the last update.
func (f *TowerFan) FanLevel() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.fanLevel
}

// Mode returns the operating mode from the last update.
func (f *TowerFan) Mode() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.mode
}

// Temperature returns the ambient reading in tenths of a degree
// Fahrenheit, as the device reports it.
func (f *TowerFan) Temperature() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.temperature
}

// Oscillating reports whether oscillation was on at the last update.
func (f *TowerFan) Oscillating() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.oscillating
}

// Muted reports whether the beeper was muted at the last update.
func (f *TowerFan) Muted() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.muted
}

// DisplayOn reports whether the display was lit at the last update.
func (f *TowerFan) DisplayOn() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.display
}

// Modes returns the operating modes the model supports.
func (f *TowerFan) Modes() []string { return f.config.Modes }

// Levels returns the fan speeds the model supports.
func (f *TowerFan) Levels() []int { return f.config.Levels }

// Update refreshes the fan state.
func (f *TowerFan) Update(ctx context.Context) (bool, error) {
	result, ok, err := f.client.callBypassV2(ctx, &f.baseDevice, "getTowerFanStatus", map[string]any{})
	if err != nil || !ok {
		return false, err
	}

	state, ok := decodeV2Result[struct {
		PowerSwitch      int    `json:"powerSwitch"`
		WorkMode         string `json:"workMode"`
		FanSpeedLevel    int    `json:"fanSpeedLevel"`
		ScreenState      int    `json:"screenState"`
		MuteState        int    `json:"muteState"`
		OscillationState int    `json:"oscillationState"`
		Temperature      int    `json:"temperature"`
	}](&f.baseDevice, "getTowerFanStatus", result)
	if !ok {
		return false, nil
	}

	f.mu.Lock()
	if state.PowerSwitch == 1 {
		f.deviceStatus = StatusOn
	} else {
		f.deviceStatus = StatusOff
	}
	f.mode = state.WorkMode
	f.fanLevel = state.FanSpeedLevel
	f.display = state.ScreenState == 1
	f.muted = state.MuteState == 1
	f.oscillating = state.OscillationState == 1
	f.temperature = state.Temperature
	f.mu.Unlock()
	f.touch()
	return true, nil
}

// TurnOn starts the fan.
func (f *TowerFan) TurnOn(ctx context.Context) (bool, error) {
	return f.ToggleSwitch(ctx, true)
}

// TurnOff stops the fan.
func (f *TowerFan) TurnOff(ctx context.Context) (bool, error) {
	return f.ToggleSwitch(ctx, false)
}

// ToggleSwitch sets the fan power state.
func (f *TowerFan) ToggleSwitch(ctx context.Context, on bool) (bool, error) {
	power := 0
	if on {
		power = 1
	}
	_, ok, err := f.client.callBypassV2(ctx, &f.baseDevice, "setSwitch",
		map[string]any{"powerSwitch": power, "switchIdx": 0})
	if err != nil || !ok {
		return false, err
	}

	if on {
		f.setStatus(StatusOn)
	} else {
		f.setStatus(StatusOff)
	}
	return true, nil
}

// SetMode sets the operating mode. Valid modes come from Modes.
func (f *TowerFan) SetMode(ctx context.Context, mode string) (bool, error) {
	if !f.config.supportsMode(mode) {
		return false, ErrUnsupportedType
	}
	_, ok, err := f.client.callBypassV2(ctx, &f.baseDevice, "setTowerFanMode",
		map[string]any{"workMode": mode})
	if err != nil || !ok {
		return false, err
	}

	f.mu.Lock()
	f.mode = mode
	f.mu.Unlock()
	f.touch()
	return true, nil
}

// SetLevel sets the fan speed and switches to normal mode. Valid levels
// come from Levels.
func (f *TowerFan) SetLevel(ctx context.Context, level int) (bool, error) {
	if !f.config.supportsLevel(level) {
		return false, ErrUnsupportedType
	}
	_, ok, err := f.client.callBypassV2(ctx, &f.baseDevice, "setLevels",
		map[string]any{"levelIdx": 0, "levelType": "wind", "manualSpeedLevel": level})
	if err != nil || !ok {
		return false, err
	}

	f.mu.Lock()
	f.fanLevel = level
	f.mode = ModeNormal
	f.mu.Unlock()
	f.setStatus(StatusOn)
	return true, nil
}

// SetOscillation turns oscillation on or off.
func (f *TowerFan) SetOscillation(ctx context.Context, on bool) (bool, error) {
	state := 0
	if on {
		state = 1
	}
	_, ok, err := f.client.callBypassV2(ctx, &f.baseDevice, "setOscillationSwitch",
		map[string]any{"oscillationSwitch": state})
	if err != nil || !ok {
		return false, err
	}

	f.mu.Lock()
	f.oscillating = on
	f.mu.Unlock()
	f.touch()
	return true, nil
}

// SetMute silences or restores the beeper.
func (f *TowerFan) SetMute(ctx context.Context, on bool) (bool, error) {
	state := 0
	if on {
		state = 1
	}
	_, ok, err := f.client.callBypassV2(ctx, &f.baseDevice, "setMuteSwitch",
		map[string]any{"muteSwitch": state})
	if err != nil || !ok {
		return false, err
	}

	f.mu.Lock()
	f.muted = on
	f.mu.Unlock()
	f.touch()
	return true, nil
}

// SetDisplay turns the display on or off.
func (f *TowerFan) SetDisplay(ctx context.Context, on bool) (bool, error) {
	state := 0
	if on {
		state = 1
	}
	_, ok, err := f.client.callBypassV2(ctx, &f.baseDevice, "setDisplay",
		map[string]any{"screenSwitch": state})
	if err != nil || !ok {
		return false, err
	}

	f.mu.Lock()
	f.display = on
	f.mu.Unlock()
	f.touch()
	return true, nil
}
