package vesync

import "context"

// Humidifier is a cool or warm mist humidifier driven over the V2 device
// endpoint.
type Humidifier struct {
	baseDevice

	humidity       int
	targetHumidity int
	mistLevel      int
	warmLevel      int
	mode           string
	display        bool
	waterLacks     bool
	waterTankOpen  bool
	autoStopReach  bool
	nightLight     int
	timer          *Timer
}

func newHumidifierDevice(c *Client, rec DeviceRecord, cfg *DeviceConfig) Device {
	return &Humidifier{baseDevice: newBaseDevice(c, rec, cfg)}
}

// Humidity returns the measured relative humidity from the last update.
func (h *Humidifier) Humidity() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.humidity
}

// TargetHumidity returns the configured auto mode target.
func (h *Humidifier) TargetHumidity() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.targetHumidity
}

// MistLevel returns the mist output level from the last update.
func (h *Humidifier) MistLevel() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.mistLevel
}

// WarmLevel returns the warm mist level. Only warm mist models report it.
func (h *Humidifier) WarmLevel() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.warmLevel
}

// Mode returns the operating mode from the last update.
func (h *Humidifier) Mode() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.mode
}

// WaterLacks reports whether the tank ran dry at the last update.
func (h *Humidifier) WaterLacks() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.waterLacks
}

// WaterTankLifted reports whether the tank was removed at the last update.
func (h *Humidifier) WaterTankLifted() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.waterTankOpen
}

// DisplayOn reports whether the display was lit at the last update.
func (h *Humidifier) DisplayOn() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.display
}

// Timer returns the countdown fetched by GetTimer, or nil.
func (h *Humidifier) Timer() *Timer {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.timer
}

// Modes returns the operating modes the model supports.
func (h *Humidifier) Modes() []string { return h.config.Modes }

// Levels returns the mist levels the model supports.
func (h *Humidifier) Levels() []int { return h.config.Levels }

// Update refreshes the humidifier state.
func (h *Humidifier) Update(ctx context.Context) (bool, error) {
	result, ok, err := h.client.callBypassV2(ctx, &h.baseDevice, "getHumidifierStatus", map[string]any{})
	if err != nil || !ok {
		return false, err
	}

	state, ok := decodeV2Result[struct {
		Enabled              bool   `json:"enabled"`
		Humidity             int    `json:"humidity"`
		MistVirtualLevel     int    `json:"mist_virtual_level"`
		MistLevel            int    `json:"mist_level"`
		Mode                 string `json:"mode"`
		WarmLevel            *int   `json:"warm_level"`
		WaterLacks           bool   `json:"water_lacks"`
		WaterTankLifted      bool   `json:"water_tank_lifted"`
		Display              bool   `json:"display"`
		AutomaticStopReach   bool   `json:"automatic_stop_reach_target"`
		NightLightBrightness int    `json:"night_light_brightness"`
		Configuration        struct {
			AutoTargetHumidity int `json:"auto_target_humidity"`
		} `json:"configuration"`
	}](&h.baseDevice, "getHumidifierStatus", result)
	if !ok {
		return false, nil
	}

	h.mu.Lock()
	if state.Enabled {
		h.deviceStatus = StatusOn
	} else {
		h.deviceStatus = StatusOff
	}
	h.humidity = state.Humidity
	h.mistLevel = state.MistVirtualLevel
	if h.mistLevel == 0 {
		h.mistLevel = state.MistLevel
	}
	h.mode = state.Mode
	if state.WarmLevel != nil {
		h.warmLevel = *state.WarmLevel
	}
	h.waterLacks = state.WaterLacks
	h.waterTankOpen = state.WaterTankLifted
	h.display = state.Display
	h.autoStopReach = state.AutomaticStopReach
	h.nightLight = state.NightLightBrightness
	h.targetHumidity = state.Configuration.AutoTargetHumidity
	h.mu.Unlock()
	h.touch()
	return true, nil
}

// TurnOn starts the humidifier.
func (h *Humidifier) TurnOn(ctx context.Context) (bool, error) {
	return h.ToggleSwitch(ctx, true)
}

// TurnOff stops the humidifier.
func (h *Humidifier) TurnOff(ctx context.Context) (bool, error) {
	return h.ToggleSwitch(ctx, false)
}

// ToggleSwitch sets the humidifier power state.
func (h *Humidifier) ToggleSwitch(ctx context.Context, on bool) (bool, error) {
	_, ok, err := h.client.callBypassV2(ctx, &h.baseDevice, "setSwitch",
		map[string]any{"enabled": on, "id": 0})
	if err != nil || !ok {
		return false, err
	}

	if on {
		h.setStatus(StatusOn)
	} else {
		h.setStatus(StatusOff)
	}
	return true, nil
}

// SetMode sets the operating mode. Valid modes come from Modes.
func (h *Humidifier) SetMode(ctx context.Context, mode string) (bool, error) {
	if !h.config.supportsMode(mode) {
		return false, ErrUnsupportedType
	}
	_, ok, err := h.client.callBypassV2(ctx, &h.baseDevice, "setHumidityMode",
		map[string]any{"mode": mode})
	if err != nil || !ok {
		return false, err
	}

	h.mu.Lock()
	h.mode = mode
	h.mu.Unlock()
	h.touch()
	return true, nil
}

// SetLevel sets the mist output level. Valid levels come from Levels.
func (h *Humidifier) SetLevel(ctx context.Context, level int) (bool, error) {
	if !h.config.supportsLevel(level) {
		return false, ErrUnsupportedType
	}
	_, ok, err := h.client.callBypassV2(ctx, &h.baseDevice, "setVirtualLevel",
		map[string]any{"id": 0, "level": level, "type": "mist"})
	if err != nil || !ok {
		return false, err
	}

	h.mu.Lock()
	h.mistLevel = level
	h.mu.Unlock()
	h.setStatus(StatusOn)
	return true, nil
}

// SetWarmLevel sets the warm mist level on warm mist models.
func (h *Humidifier) SetWarmLevel(ctx context.Context, level int) (bool, error) {
	if !h.SupportsFeature(FeatureWarmMist) {
		return false, ErrUnsupportedType
	}
	_, ok, err := h.client.callBypassV2(ctx, &h.baseDevice, "setLevel",
		map[string]any{"id": 0, "level": level, "type": "warm"})
	if err != nil || !ok {
		return false, err
	}

	h.mu.Lock()
	h.warmLevel = level
	h.mu.Unlock()
	h.touch()
	return true, nil
}

// SetTargetHumidity sets the auto mode target, 30 to 80 percent.
func (h *Humidifier) SetTargetHumidity(ctx context.Context, target int) (bool, error) {
	if target < 30 || target > 80 {
		return false, ErrUnsupportedType
	}
	_, ok, err := h.client.callBypassV2(ctx, &h.baseDevice, "setTargetHumidity",
		map[string]any{"target_humidity": target})
	if err != nil || !ok {
		return false, err
	}

	h.mu.Lock()
	h.targetHumidity = target
	h.mu.Unlock()
	h.touch()
	return true, nil
}

// SetDisplay turns the display on or off.
func (h *Humidifier) SetDisplay(ctx context.Context, on bool) (bool, error) {
	_, ok, err := h.client.callBypassV2(ctx, &h.baseDevice, "setDisplay",
		map[string]any{"state": on})
	if err != nil || !ok {
		return false, err
	}

	h.mu.Lock()
	h.display = on
	h.mu.Unlock()
	h.touch()
	return true, nil
}

// SetNightLightBrightness sets the night light, 0 to 100, on models that
// have one.
func (h *Humidifier) SetNightLightBrightness(ctx context.Context, brightness int) (bool, error) {
	if !h.SupportsFeature(FeatureNightLight) {
		return false, ErrUnsupportedType
	}
	if brightness < 0 {
		brightness = 0
	} else if brightness > 100 {
		brightness = 100
	}
	_, ok, err := h.client.callBypassV2(ctx, &h.baseDevice, "setNightLightBrightness",
		map[string]any{"night_light_brightness": brightness})
	if err != nil || !ok {
		return false, err
	}

	h.mu.Lock()
	h.nightLight = brightness
	h.mu.Unlock()
	h.touch()
	return true, nil
}

// GetTimer fetches the running countdown timer, if any. The result is also
// available from Timer.
func (h *Humidifier) GetTimer(ctx context.Context) (*Timer, bool, error) {
	result, ok, err := h.client.callBypassV2(ctx, &h.baseDevice, "getTimer", map[string]any{})
	if err != nil || !ok {
		return nil, false, err
	}

	state, ok := decodeV2Result[struct {
		Timers []struct {
			ID     int    `json:"id"`
			Remain int    `json:"remain"`
			Action string `json:"action"`
		} `json:"timers"`
	}](&h.baseDevice, "getTimer", result)
	if !ok {
		return nil, false, nil
	}

	var timer *Timer
	if len(state.Timers) > 0 {
		t := state.Timers[0]
		timer = newTimer(t.ID, t.Remain, t.Action)
	}
	h.mu.Lock()
	h.timer = timer
	h.mu.Unlock()
	h.touch()
	return timer, true, nil
}

// SetTimer starts a countdown that turns the humidifier off after the
// given number of seconds.
func (h *Humidifier) SetTimer(ctx context.Context, seconds int) (bool, error) {
	result, ok, err := h.client.callBypassV2(ctx, &h.baseDevice, "addTimer",
		map[string]any{"action": "off", "total": seconds})
	if err != nil || !ok {
		return false, err
	}

	state, ok := decodeV2Result[struct {
		ID int `json:"id"`
	}](&h.baseDevice, "addTimer", result)
	if !ok {
		return false, nil
	}

	h.mu.Lock()
	h.timer = newTimer(state.ID, seconds, "off")
	h.mu.Unlock()
	h.touch()
	return true, nil
}

// ClearTimer cancels the running countdown.
func (h *Humidifier) ClearTimer(ctx context.Context) (bool, error) {
	h.mu.RLock()
	timer := h.timer
	h.mu.RUnlock()
	if timer == nil {
		return true, nil
	}

	_, ok, err := h.client.callBypassV2(ctx, &h.baseDevice, "delTimer",
		map[string]any{"id": timer.ID})
	if err != nil || !ok {
		return false, err
	}

	timer.End()
	h.mu.Lock()
	h.timer = nil
	h.mu.Unlock()
	h.touch()
	return true, nil
}
