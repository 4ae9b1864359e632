package vesync

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
)

func TestOutletV1(t *testing.T) {
	var lastPath string
	var lastBody map[string]any
	respond := func(payload string) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lastPath = r.URL.Path
			json.NewDecoder(r.Body).Decode(&lastBody)
			w.Write([]byte(payload))
		})
	}

	t.Run("update parses device detail", func(t *testing.T) {
		client, _ := newTestClient(t, respond(`{
			"code": 0, "msg": "",
			"result": {
				"deviceStatus": "on",
				"connectionStatus": "online",
				"power": 3.2,
				"voltage": 120.5,
				"energy": 0.45
			}
		}`))
		outlet := newTestDevice(t, client, "wifi-switch-1.3").(*Outlet)

		ok, err := outlet.Update(context.Background())
		if err != nil || !ok {
			t.Fatalf("Update = %v, %v", ok, err)
		}
		if lastPath != "/cloud/v1/deviceManaged/deviceDetail" {
			t.Errorf("path = %q", lastPath)
		}
		if lastBody["method"] != "deviceDetail" {
			t.Errorf("method = %v", lastBody["method"])
		}
		if outlet.Power() != 3.2 || outlet.Voltage() != 120.5 || outlet.Energy() != 0.45 {
			t.Errorf("state = %v W, %v V, %v kWh", outlet.Power(), outlet.Voltage(), outlet.Energy())
		}
		if !outlet.IsOn() {
			t.Error("outlet should be on")
		}
	})

	t.Run("turn off sends status", func(t *testing.T) {
		client, _ := newTestClient(t, respond(`{"code": 0, "msg": ""}`))
		outlet := newTestDevice(t, client, "wifi-switch-1.3").(*Outlet)

		ok, err := outlet.TurnOff(context.Background())
		if err != nil || !ok {
			t.Fatalf("TurnOff = %v, %v", ok, err)
		}
		if lastPath != "/cloud/v1/deviceManaged/deviceStatus" {
			t.Errorf("path = %q", lastPath)
		}
		if lastBody["status"] != "off" {
			t.Errorf("status = %v", lastBody["status"])
		}
		if outlet.DeviceStatus() != StatusOff {
			t.Errorf("local status = %q, want off", outlet.DeviceStatus())
		}
	})

	t.Run("device failure leaves state unchanged", func(t *testing.T) {
		client, _ := newTestClient(t, respond(`{"code": -11300000, "msg": "device offline"}`))
		outlet := newTestDevice(t, client, "wifi-switch-1.3").(*Outlet)

		ok, err := outlet.TurnOn(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Fatal("ok = true, want false")
		}
		if outlet.ConnectionStatus() != ConnectionOffline {
			t.Errorf("connection = %q, want offline", outlet.ConnectionStatus())
		}
		if outlet.LastResponse().Kind != KindDeviceOffline {
			t.Errorf("kind = %q", outlet.LastResponse().Kind)
		}
	})

	t.Run("rate limit raises and preserves state", func(t *testing.T) {
		client, _ := newTestClient(t, respond(`{"code": -11003000, "msg": "slow down"}`))
		outlet := newTestDevice(t, client, "wifi-switch-1.3").(*Outlet)
		before := outlet.DeviceStatus()

		ok, err := outlet.TurnOff(context.Background())
		if ok {
			t.Error("ok = true, want false")
		}
		if !IsRateLimited(err) {
			t.Fatalf("error = %v, want rate limited", err)
		}
		if outlet.DeviceStatus() != before {
			t.Errorf("status changed to %q", outlet.DeviceStatus())
		}
	})

	t.Run("energy history", func(t *testing.T) {
		var paths []string
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			paths = append(paths, r.URL.Path)
			w.Write([]byte(`{
				"code": 0, "msg": "",
				"result": {"totalEnergy": 12.5, "maxEnergy": 30, "costPerKWH": 0.11, "data": [1.5, 2, 3]}
			}`))
		}))
		outlet := newTestDevice(t, client, "wifi-switch-1.3").(*Outlet)

		ok, err := outlet.UpdateEnergy(context.Background())
		if err != nil || !ok {
			t.Fatalf("UpdateEnergy = %v, %v", ok, err)
		}
		want := []string{
			"/cloud/v1/deviceManaged/energyweek",
			"/cloud/v1/deviceManaged/energymonth",
			"/cloud/v1/deviceManaged/energyyear",
		}
		if len(paths) != len(want) {
			t.Fatalf("paths = %v", paths)
		}
		for i := range want {
			if paths[i] != want[i] {
				t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
			}
		}
		if outlet.WeeklyEnergy().TotalEnergy != 12.5 {
			t.Errorf("weekly total = %v", outlet.WeeklyEnergy().TotalEnergy)
		}
		if len(outlet.YearlyEnergy().Data) != 3 {
			t.Errorf("yearly data = %v", outlet.YearlyEnergy().Data)
		}
	})

	t.Run("night light needs the feature", func(t *testing.T) {
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("unexpected request")
		}))
		outlet := newTestDevice(t, client, "wifi-switch-1.3").(*Outlet)
		if _, err := outlet.SetNightLight(context.Background(), "auto"); err != ErrUnsupportedType {
			t.Errorf("error = %v, want ErrUnsupportedType", err)
		}
	})
}

func TestOutletV2(t *testing.T) {
	t.Run("update parses nested status", func(t *testing.T) {
		var req bypassV2Request
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != bypassV2Path {
				t.Errorf("path = %q, want %q", r.URL.Path, bypassV2Path)
			}
			json.NewDecoder(r.Body).Decode(&req)
			w.Write([]byte(`{
				"code": 0, "msg": "",
				"result": {
					"code": 0,
					"result": {"powerSwitch_1": 0, "voltage": 229.8, "power": 0, "energy": 1.2}
				}
			}`))
		}))
		outlet := newTestDevice(t, client, "BSDOG01").(*Outlet)

		ok, err := outlet.Update(context.Background())
		if err != nil || !ok {
			t.Fatalf("Update = %v, %v", ok, err)
		}
		if req.Payload.Method != "getOutletStatus" {
			t.Errorf("payload method = %q", req.Payload.Method)
		}
		if req.Payload.Source != "APP" {
			t.Errorf("payload source = %q", req.Payload.Source)
		}
		if outlet.DeviceStatus() != StatusOff {
			t.Errorf("status = %q, want off", outlet.DeviceStatus())
		}
		if outlet.Voltage() != 229.8 {
			t.Errorf("voltage = %v", outlet.Voltage())
		}
	})

	t.Run("toggle sends setProperty", func(t *testing.T) {
		var req struct {
			Payload struct {
				Method string         `json:"method"`
				Data   map[string]any `json:"data"`
			} `json:"payload"`
		}
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&req)
			w.Write([]byte(`{"code": 0, "msg": "", "result": {"code": 0}}`))
		}))
		outlet := newTestDevice(t, client, "BSDOG01").(*Outlet)

		ok, err := outlet.TurnOn(context.Background())
		if err != nil || !ok {
			t.Fatalf("TurnOn = %v, %v", ok, err)
		}
		if req.Payload.Method != "setProperty" {
			t.Errorf("payload method = %q", req.Payload.Method)
		}
		if req.Payload.Data["powerSwitch_1"] != float64(1) {
			t.Errorf("powerSwitch_1 = %v", req.Payload.Data["powerSwitch_1"])
		}
		if outlet.DeviceStatus() != StatusOn {
			t.Errorf("status = %q, want on", outlet.DeviceStatus())
		}
	})
}
