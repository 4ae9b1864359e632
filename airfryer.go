package vesync

import (
	"context"
	"encoding/json"
)

// CookStatus is the cooking state machine of an air fryer.
type CookStatus string

// Air fryer cooking states.
const (
	CookStandby    CookStatus = "standby"
	Cooking        CookStatus = "cooking"
	CookStopped    CookStatus = "cookStop"
	CookEnded      CookStatus = "cookEnd"
	Preheating     CookStatus = "heating"
	PreheatStopped CookStatus = "preheatStop"
	PreheatEnded   CookStatus = "preheatEnd"
)

// AirFryer is a Cosori smart air fryer. It speaks a json command dialect
// over the V1 bypass endpoint.
type AirFryer struct {
	baseDevice

	cookStatus  CookStatus
	cookSetTime int
	cookLeft    int
	cookTemp    int
	currentTemp int
	tempUnit    string
}

func newAirFryerDevice(c *Client, rec DeviceRecord, cfg *DeviceConfig) Device {
	return &AirFryer{baseDevice: newBaseDevice(c, rec, cfg), cookStatus: CookStandby, tempUnit: "fahrenheit"}
}

// CookStatus returns the cooking state from the last update.
func (a *AirFryer) CookStatus() CookStatus {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cookStatus
}

// CookSetTime returns the programmed cook time in seconds.
func (a *AirFryer) CookSetTime() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cookSetTime
}

// CookTimeLeft returns the remaining cook time in seconds from the last
// update.
func (a *AirFryer) CookTimeLeft() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cookLeft
}

// CookTemp returns the programmed cook temperature.
func (a *AirFryer) CookTemp() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cookTemp
}

// CurrentTemp returns the chamber temperature from the last update.
func (a *AirFryer) CurrentTemp() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.currentTemp
}

// TempUnit returns "fahrenheit" or "celsius" as reported by the device.
func (a *AirFryer) TempUnit() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.tempUnit
}

// isCooking reports whether the fryer is in a cook phase, running or
// paused. Callers must hold a.mu.
func (a *AirFryer) isCooking() bool {
	return a.cookStatus == Cooking || a.cookStatus == CookStopped
}

// isPreheating reports whether the fryer is in a preheat phase, running or
// paused. Callers must hold a.mu.
func (a *AirFryer) isPreheating() bool {
	return a.cookStatus == Preheating || a.cookStatus == PreheatStopped
}

// Update refreshes the fryer state.
func (a *AirFryer) Update(ctx context.Context) (bool, error) {
	result, ok, err := a.client.callBypassV1(ctx, &a.baseDevice, "bypass", "bypass",
		map[string]any{"jsonCmd": map[string]any{"getStatus": "status"}})
	if err != nil || !ok {
		return false, err
	}

	var status struct {
		ReturnStatus *struct {
			CookStatus      string `json:"cookStatus"`
			CookSetTime     int    `json:"cookSetTime"`
			CookLastTime    int    `json:"cookLastTime"`
			CookSetTemp     int    `json:"cookSetTemp"`
			CurrentTemp     int    `json:"currentTemp"`
			TempUnit        string `json:"tempUnit"`
			PreheatLastTime int    `json:"preheatLastTime"`
		} `json:"returnStatus"`
	}
	if err := json.Unmarshal(result, &status); err != nil {
		a.setLastResponse(ResponseInfo{Name: "BAD_RESPONSE", Kind: KindBadResponse, Message: "Undecodable fryer status"})
		return false, nil
	}

	a.mu.Lock()
	if status.ReturnStatus == nil {
		// No status payload means the fryer is idle.
		a.cookStatus = CookStandby
		a.cookSetTime = 0
		a.cookLeft = 0
	} else {
		rs := status.ReturnStatus
		a.cookStatus = CookStatus(rs.CookStatus)
		a.cookSetTime = rs.CookSetTime
		a.cookLeft = rs.CookLastTime
		if a.cookLeft == 0 && rs.PreheatLastTime > 0 {
			a.cookLeft = rs.PreheatLastTime
		}
		a.cookTemp = rs.CookSetTemp
		a.currentTemp = rs.CurrentTemp
		if rs.TempUnit != "" {
			a.tempUnit = rs.TempUnit
		}
	}
	a.mu.Unlock()
	a.touch()
	return true, nil
}

// cookBase builds the shared fields of cook and preheat commands.
func (a *AirFryer) cookBase(cookTime int) map[string]any {
	return map[string]any{
		"accountId":     a.client.AccountID(),
		"appointmentTs": 0,
		"cookSetTime":   cookTime,
		"customRecipe":  "Manual Cook",
		"mode":          "custom",
		"recipeId":      1,
		"recipeType":    3,
		"tempUnit":      a.TempUnit(),
		"readyStart":    true,
	}
}

// Cook starts cooking for cookTime seconds at the given temperature.
func (a *AirFryer) Cook(ctx context.Context, cookTime, temp int) (bool, error) {
	cmd := a.cookBase(cookTime)
	cmd["cookSetTemp"] = temp
	cmd["cookStatus"] = string(Cooking)

	ok, err := a.sendCommand(ctx, map[string]any{"cookMode": cmd})
	if err != nil || !ok {
		return false, err
	}

	a.mu.Lock()
	a.cookStatus = Cooking
	a.cookSetTime = cookTime
	a.cookLeft = cookTime
	a.cookTemp = temp
	a.mu.Unlock()
	a.touch()
	return true, nil
}

// Preheat starts a preheat cycle to the given temperature.
func (a *AirFryer) Preheat(ctx context.Context, preheatTime, temp int) (bool, error) {
	cmd := a.cookBase(preheatTime)
	cmd["targetTemp"] = temp
	cmd["preheatSetTime"] = preheatTime
	cmd["preheatStatus"] = string(Preheating)

	ok, err := a.sendCommand(ctx, map[string]any{"preheat": cmd})
	if err != nil || !ok {
		return false, err
	}

	a.mu.Lock()
	a.cookStatus = Preheating
	a.cookSetTime = preheatTime
	a.cookLeft = preheatTime
	a.cookTemp = temp
	a.mu.Unlock()
	a.touch()
	return true, nil
}

// Pause suspends the running cook or preheat cycle.
func (a *AirFryer) Pause(ctx context.Context) (bool, error) {
	a.mu.RLock()
	cooking, preheating := a.isCooking(), a.isPreheating()
	a.mu.RUnlock()

	var cmd map[string]any
	var next CookStatus
	switch {
	case preheating:
		cmd = map[string]any{"preheat": map[string]any{"preheatStatus": "stop"}}
		next = PreheatStopped
	case cooking:
		cmd = map[string]any{"cookMode": map[string]any{"cookStatus": "stop"}}
		next = CookStopped
	default:
		return false, nil
	}

	ok, err := a.sendCommand(ctx, cmd)
	if err != nil || !ok {
		return false, err
	}

	a.mu.Lock()
	a.cookStatus = next
	a.mu.Unlock()
	a.touch()
	return true, nil
}

// Resume continues a paused cook or preheat cycle.
func (a *AirFryer) Resume(ctx context.Context) (bool, error) {
	a.mu.RLock()
	cooking, preheating := a.isCooking(), a.isPreheating()
	a.mu.RUnlock()

	var cmd map[string]any
	var next CookStatus
	switch {
	case preheating:
		cmd = map[string]any{"preheat": map[string]any{"preheatStatus": "heating"}}
		next = Preheating
	case cooking:
		cmd = map[string]any{"cookMode": map[string]any{"cookStatus": "cooking"}}
		next = Cooking
	default:
		return false, nil
	}

	ok, err := a.sendCommand(ctx, cmd)
	if err != nil || !ok {
		return false, err
	}

	a.mu.Lock()
	a.cookStatus = next
	a.mu.Unlock()
	a.touch()
	return true, nil
}

// End aborts the running cycle and returns the fryer to standby.
func (a *AirFryer) End(ctx context.Context) (bool, error) {
	a.mu.RLock()
	cooking, preheating := a.isCooking(), a.isPreheating()
	a.mu.RUnlock()

	var cmd map[string]any
	switch {
	case preheating:
		cmd = map[string]any{"preheat": map[string]any{"preheatStatus": "end"}}
	case cooking:
		cmd = map[string]any{"cookMode": map[string]any{"cookStatus": "end"}}
	default:
		return false, nil
	}

	ok, err := a.sendCommand(ctx, cmd)
	if err != nil || !ok {
		return false, err
	}

	a.mu.Lock()
	a.cookStatus = CookStandby
	a.cookSetTime = 0
	a.cookLeft = 0
	a.mu.Unlock()
	a.touch()
	return true, nil
}

func (a *AirFryer) sendCommand(ctx context.Context, cmd map[string]any) (bool, error) {
	_, ok, err := a.client.callBypassV1(ctx, &a.baseDevice, "bypass", "bypass",
		map[string]any{"jsonCmd": cmd})
	return ok, err
}
