package vesync

import "context"

// Purifier is an air purifier driven over the V2 device endpoint.
type Purifier struct {
	baseDevice

	fanLevel        int
	mode            string
	filterLife      int
	airQuality      int
	airQualityValue int
	display         bool
	childLock       bool
	nightLight      string
	timer           *Timer
}

func newPurifierDevice(c *Client, rec DeviceRecord, cfg *DeviceConfig) Device {
	return &Purifier{baseDevice: newBaseDevice(c, rec, cfg)}
}

// FanLevel returns the fan speed from the last update.
func (p *Purifier) FanLevel() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.fanLevel
}

// Mode returns the operating mode from the last update.
func (p *Purifier) Mode() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.mode
}

// FilterLife returns the remaining filter life percentage.
func (p *Purifier) FilterLife() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.filterLife
}

// AirQuality returns the air quality index level, 1 best to 4 worst.
// Only models with an air quality sensor report it.
func (p *Purifier) AirQuality() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.airQuality
}

// AirQualityValue returns the PM2.5 reading in micrograms per cubic meter.
func (p *Purifier) AirQualityValue() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.airQualityValue
}

// ChildLockOn reports whether the child lock was engaged at the last
// update.
func (p *Purifier) ChildLockOn() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.childLock
}

// DisplayOn reports whether the display was lit at the last update.
func (p *Purifier) DisplayOn() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.display
}

// Modes returns the operating modes the model supports.
func (p *Purifier) Modes() []string { return p.config.Modes }

// Levels returns the fan speeds the model supports.
func (p *Purifier) Levels() []int { return p.config.Levels }

// Update refreshes the purifier state.
func (p *Purifier) Update(ctx context.Context) (bool, error) {
	result, ok, err := p.client.callBypassV2(ctx, &p.baseDevice, "getPurifierStatus", map[string]any{})
	if err != nil || !ok {
		return false, err
	}

	state, ok := decodeV2Result[struct {
		Enabled         bool   `json:"enabled"`
		FilterLife      int    `json:"filter_life"`
		Mode            string `json:"mode"`
		Level           int    `json:"level"`
		AirQuality      int    `json:"air_quality"`
		AirQualityValue int    `json:"air_quality_value"`
		Display         bool   `json:"display"`
		ChildLock       bool   `json:"child_lock"`
		NightLight      string `json:"night_light"`
	}](&p.baseDevice, "getPurifierStatus", result)
	if !ok {
		return false, nil
	}

	p.mu.Lock()
	if state.Enabled {
		p.deviceStatus = StatusOn
	} else {
		p.deviceStatus = StatusOff
	}
	p.filterLife = state.FilterLife
	p.mode = state.Mode
	p.fanLevel = state.Level
	p.airQuality = state.AirQuality
	p.airQualityValue = state.AirQualityValue
	p.display = state.Display
	p.childLock = state.ChildLock
	p.nightLight = state.NightLight
	p.mu.Unlock()
	p.touch()
	return true, nil
}

// TurnOn starts the purifier.
func (p *Purifier) TurnOn(ctx context.Context) (bool, error) {
	return p.ToggleSwitch(ctx, true)
}

// TurnOff stops the purifier.
func (p *Purifier) TurnOff(ctx context.Context) (bool, error) {
	return p.ToggleSwitch(ctx, false)
}

// ToggleSwitch sets the purifier power state.
func (p *Purifier) ToggleSwitch(ctx context.Context, on bool) (bool, error) {
	_, ok, err := p.client.callBypassV2(ctx, &p.baseDevice, "setSwitch",
		map[string]any{"enabled": on, "id": 0})
	if err != nil || !ok {
		return false, err
	}

	if on {
		p.setStatus(StatusOn)
	} else {
		p.setStatus(StatusOff)
	}
	return true, nil
}

// SetMode sets the operating mode. Valid modes come from Modes. Setting
// manual mode keeps the current fan speed.
func (p *Purifier) SetMode(ctx context.Context, mode string) (bool, error) {
	if !p.config.supportsMode(mode) {
		return false, ErrUnsupportedType
	}
	_, ok, err := p.client.callBypassV2(ctx, &p.baseDevice, "setPurifierMode",
		map[string]any{"mode": mode})
	if err != nil || !ok {
		return false, err
	}

	p.mu.Lock()
	p.mode = mode
	p.mu.Unlock()
	p.touch()
	return true, nil
}

// SetLevel sets the fan speed and switches the purifier to manual mode.
// Valid levels come from Levels.
func (p *Purifier) SetLevel(ctx context.Context, level int) (bool, error) {
	if !p.config.supportsLevel(level) {
		return false, ErrUnsupportedType
	}
	_, ok, err := p.client.callBypassV2(ctx, &p.baseDevice, "setLevel",
		map[string]any{"id": 0, "level": level, "type": "wind", "mode": ModeManual})
	if err != nil || !ok {
		return false, err
	}

	p.mu.Lock()
	p.fanLevel = level
	p.mode = ModeManual
	p.mu.Unlock()
	p.setStatus(StatusOn)
	return true, nil
}

// SetChildLock engages or releases the child lock.
func (p *Purifier) SetChildLock(ctx context.Context, on bool) (bool, error) {
	if !p.SupportsFeature(FeatureChildLock) {
		return false, ErrUnsupportedType
	}
	_, ok, err := p.client.callBypassV2(ctx, &p.baseDevice, "setChildLock",
		map[string]any{"child_lock": on})
	if err != nil || !ok {
		return false, err
	}

	p.mu.Lock()
	p.childLock = on
	p.mu.Unlock()
	p.touch()
	return true, nil
}

// SetDisplay turns the display on or off.
func (p *Purifier) SetDisplay(ctx context.Context, on bool) (bool, error) {
	_, ok, err := p.client.callBypassV2(ctx, &p.baseDevice, "setDisplay",
		map[string]any{"state": on})
	if err != nil || !ok {
		return false, err
	}

	p.mu.Lock()
	p.display = on
	p.mu.Unlock()
	p.touch()
	return true, nil
}

// SetNightLight sets the night light on models that have one. Valid states
// are "on", "dim" and "off".
func (p *Purifier) SetNightLight(ctx context.Context, state string) (bool, error) {
	if !p.SupportsFeature(FeatureNightLight) {
		return false, ErrUnsupportedType
	}
	_, ok, err := p.client.callBypassV2(ctx, &p.baseDevice, "setNightLight",
		map[string]any{"night_light": state})
	if err != nil || !ok {
		return false, err
	}

	p.mu.Lock()
	p.nightLight = state
	p.mu.Unlock()
	p.touch()
	return true, nil
}

// GetTimer fetches the running countdown timer, if any.
func (p *Purifier) GetTimer(ctx context.Context) (*Timer, bool, error) {
	result, ok, err := p.client.callBypassV2(ctx, &p.baseDevice, "getTimer", map[string]any{})
	if err != nil || !ok {
		return nil, false, err
	}

	state, ok := decodeV2Result[struct {
		Timers []struct {
			ID     int    `json:"id"`
			Remain int    `json:"remain"`
			Action string `json:"action"`
		} `json:"timers"`
	}](&p.baseDevice, "getTimer", result)
	if !ok {
		return nil, false, nil
	}

	var timer *Timer
	if len(state.Timers) > 0 {
		t := state.Timers[0]
		timer = newTimer(t.ID, t.Remain, t.Action)
	}
	p.mu.Lock()
	p.timer = timer
	p.mu.Unlock()
	p.touch()
	return timer, true, nil
}

// SetTimer starts a countdown that turns the purifier off after the given
// number of seconds.
func (p *Purifier) SetTimer(ctx context.Context, seconds int) (bool, error) {
	result, ok, err := p.client.callBypassV2(ctx, &p.baseDevice, "addTimer",
		map[string]any{"action": "off", "total": seconds})
	if err != nil || !ok {
		return false, err
	}

	state, ok := decodeV2Result[struct {
		ID int `json:"id"`
	}](&p.baseDevice, "addTimer", result)
	if !ok {
		return false, nil
	}

	p.mu.Lock()
	p.timer = newTimer(state.ID, seconds, "off")
	p.mu.Unlock()
	p.touch()
	return true, nil
}

// ClearTimer cancels the running countdown.
func (p *Purifier) ClearTimer(ctx context.Context) (bool, error) {
	p.mu.RLock()
	timer := p.timer
	p.mu.RUnlock()
	if timer == nil {
		return true, nil
	}

	_, ok, err := p.client.callBypassV2(ctx, &p.baseDevice, "delTimer",
		map[string]any{"id": timer.ID})
	if err != nil || !ok {
		return false, err
	}

	timer.End()
	p.mu.Lock()
	p.timer = nil
	p.mu.Unlock()
	p.touch()
	return true, nil
}
