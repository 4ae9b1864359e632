package vesync

import (
	"context"
	"encoding/json"
)

// EnergyHistory is an energy usage summary over a week, month or year.
type EnergyHistory struct {
	TotalEnergy float64   `json:"totalEnergy"`
	MaxEnergy   float64   `json:"maxEnergy"`
	CostPerKWH  float64   `json:"costPerKWH"`
	Data        []float64 `json:"data"`
}

// Outlet is a smart plug. Models with the energy monitor feature report
// power draw and keep usage history.
type Outlet struct {
	baseDevice

	power   float64
	voltage float64
	energy  float64

	weekly  EnergyHistory
	monthly EnergyHistory
	yearly  EnergyHistory
}

func newOutletDevice(c *Client, rec DeviceRecord, cfg *DeviceConfig) Device {
	return &Outlet{baseDevice: newBaseDevice(c, rec, cfg)}
}

// Power returns the instantaneous power draw in watts from the last update.
func (o *Outlet) Power() float64 {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.power
}

// Voltage returns the line voltage from the last update.
func (o *Outlet) Voltage() float64 {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.voltage
}

// Energy returns today's energy usage in kWh from the last update.
func (o *Outlet) Energy() float64 {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.energy
}

// WeeklyEnergy returns the energy summary fetched by UpdateEnergy.
func (o *Outlet) WeeklyEnergy() EnergyHistory {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.weekly
}

// MonthlyEnergy returns the energy summary fetched by UpdateEnergy.
func (o *Outlet) MonthlyEnergy() EnergyHistory {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.monthly
}

// YearlyEnergy returns the energy summary fetched by UpdateEnergy.
func (o *Outlet) YearlyEnergy() EnergyHistory {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.yearly
}

// Update refreshes the outlet's state. A false return with a nil error
// means the device reported a failure; see LastResponse for the reason.
func (o *Outlet) Update(ctx context.Context) (bool, error) {
	if o.config.Protocol == protocolBypassV2 {
		return o.updateV2(ctx)
	}
	return o.updateV1(ctx)
}

func (o *Outlet) updateV1(ctx context.Context) (bool, error) {
	result, ok, err := o.client.callBypassV1(ctx, &o.baseDevice, "deviceDetail", "deviceDetail", nil)
	if err != nil || !ok {
		return false, err
	}

	var detail struct {
		DeviceStatus     string  `json:"deviceStatus"`
		ConnectionStatus string  `json:"connectionStatus"`
		Power            float64 `json:"power"`
		Voltage          float64 `json:"voltage"`
		Energy           float64 `json:"energy"`
	}
	if err := json.Unmarshal(result, &detail); err != nil {
		o.setLastResponse(ResponseInfo{Name: "BAD_RESPONSE", Kind: KindBadResponse, Message: "Undecodable outlet detail"})
		return false, nil
	}

	o.mu.Lock()
	if detail.DeviceStatus != "" {
		o.deviceStatus = DeviceStatus(detail.DeviceStatus)
	}
	if detail.ConnectionStatus == string(ConnectionOnline) {
		o.connectionStatus = ConnectionOnline
	}
	o.power = detail.Power
	o.voltage = detail.Voltage
	o.energy = detail.Energy
	o.mu.Unlock()
	o.touch()
	return true, nil
}

func (o *Outlet) updateV2(ctx context.Context) (bool, error) {
	result, ok, err := o.client.callBypassV2(ctx, &o.baseDevice, "getOutletStatus", map[string]any{})
	if err != nil || !ok {
		return false, err
	}

	state, ok := decodeV2Result[struct {
		PowerSwitch *int     `json:"powerSwitch_1"`
		Voltage     *float64 `json:"voltage"`
		Power       *float64 `json:"power"`
		Energy      *float64 `json:"energy"`
	}](&o.baseDevice, "getOutletStatus", result)
	if !ok {
		return false, nil
	}

	o.mu.Lock()
	if state.PowerSwitch != nil {
		if *state.PowerSwitch == 1 {
			o.deviceStatus = StatusOn
		} else {
			o.deviceStatus = StatusOff
		}
	}
	if state.Voltage != nil {
		o.voltage = *state.Voltage
	}
	if state.Power != nil {
		o.power = *state.Power
	}
	if state.Energy != nil {
		o.energy = *state.Energy
	}
	o.mu.Unlock()
	o.touch()
	return true, nil
}

// TurnOn switches the outlet on.
func (o *Outlet) TurnOn(ctx context.Context) (bool, error) {
	return o.ToggleSwitch(ctx, true)
}

// TurnOff switches the outlet off.
func (o *Outlet) TurnOff(ctx context.Context) (bool, error) {
	return o.ToggleSwitch(ctx, false)
}

// ToggleSwitch sets the outlet power state.
func (o *Outlet) ToggleSwitch(ctx context.Context, on bool) (bool, error) {
	var ok bool
	var err error
	if o.config.Protocol == protocolBypassV2 {
		level := 0
		if on {
			level = 1
		}
		_, ok, err = o.client.callBypassV2(ctx, &o.baseDevice, "setProperty",
			map[string]any{"powerSwitch_1": level})
	} else {
		status := string(StatusOff)
		if on {
			status = string(StatusOn)
		}
		_, ok, err = o.client.callBypassV1(ctx, &o.baseDevice, "deviceStatus", "deviceStatus",
			map[string]any{"status": status})
	}
	if err != nil || !ok {
		return false, err
	}

	if on {
		o.setStatus(StatusOn)
	} else {
		o.setStatus(StatusOff)
	}
	return true, nil
}

// SetNightLight sets the night light mode on models that have one. Valid
// modes are "on", "off" and "auto".
func (o *Outlet) SetNightLight(ctx context.Context, mode string) (bool, error) {
	if !o.SupportsFeature(FeatureNightLight) {
		return false, ErrUnsupportedType
	}
	_, ok, err := o.client.callBypassV1(ctx, &o.baseDevice, "outletNightLightCtl", "outletNightLightCtl",
		map[string]any{"mode": mode})
	if err != nil || !ok {
		return false, err
	}
	o.touch()
	return true, nil
}

// UpdateEnergy fetches the weekly, monthly and yearly energy summaries.
// Only models with the energy monitor feature keep usage history.
func (o *Outlet) UpdateEnergy(ctx context.Context) (bool, error) {
	if !o.SupportsFeature(FeatureEnergyMonitor) {
		return false, ErrUnsupportedType
	}
	periods := []struct {
		endpoint string
		dest     *EnergyHistory
	}{
		{"energyweek", &o.weekly},
		{"energymonth", &o.monthly},
		{"energyyear", &o.yearly},
	}
	for _, p := range periods {
		result, ok, err := o.client.callBypassV1(ctx, &o.baseDevice, p.endpoint, p.endpoint, nil)
		if err != nil || !ok {
			return false, err
		}
		var history EnergyHistory
		if err := json.Unmarshal(result, &history); err != nil {
			o.setLastResponse(ResponseInfo{Name: "BAD_RESPONSE", Kind: KindBadResponse, Message: "Undecodable energy history"})
			return false, nil
		}
		o.mu.Lock()
		*p.dest = history
		o.mu.Unlock()
	}
	return true, nil
}
