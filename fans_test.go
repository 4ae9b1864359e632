package vesync

import (
	"context"
	"testing"
)

func TestTowerFanUpdate(t *testing.T) {
	client, payloads := v2Server(t, `{
		"code": 0,
		"result": {
			"powerSwitch": 1,
			"workMode": "advancedSleep",
			"fanSpeedLevel": 5,
			"screenState": 1,
			"muteState": 0,
			"oscillationState": 1,
			"temperature": 715
		}
	}`)
	fan := newTestDevice(t, client, "LTF-F422S").(*TowerFan)

	ok, err := fan.Update(context.Background())
	if err != nil || !ok {
		t.Fatalf("Update = %v, %v", ok, err)
	}
	if (*payloads)[0].Method != "getTowerFanStatus" {
		t.Errorf("method = %q", (*payloads)[0].Method)
	}
	if !fan.IsOn() {
		t.Error("fan should be on")
	}
	if fan.Mode() != ModeAdvancedSleep {
		t.Errorf("mode = %q", fan.Mode())
	}
	if fan.FanLevel() != 5 {
		t.Errorf("level = %d", fan.FanLevel())
	}
	if !fan.Oscillating() || fan.Muted() || !fan.DisplayOn() {
		t.Errorf("flags = osc %v, mute %v, display %v", fan.Oscillating(), fan.Muted(), fan.DisplayOn())
	}
	if fan.Temperature() != 715 {
		t.Errorf("temperature = %d", fan.Temperature())
	}
}

func TestTowerFanControls(t *testing.T) {
	t.Run("toggle sends power flag", func(t *testing.T) {
		client, payloads := v2Server(t, `{"code": 0}`)
		fan := newTestDevice(t, client, "LTF-F422S").(*TowerFan)

		ok, err := fan.TurnOn(context.Background())
		if err != nil || !ok {
			t.Fatalf("TurnOn = %v, %v", ok, err)
		}
		p := (*payloads)[0]
		if p.Method != "setSwitch" {
			t.Errorf("method = %q", p.Method)
		}
		data := payloadData(t, p)
		if data["powerSwitch"] != float64(1) || data["switchIdx"] != float64(0) {
			t.Errorf("data = %v", data)
		}
	})

	t.Run("set level switches to normal mode", func(t *testing.T) {
		client, payloads := v2Server(t, `{"code": 0}`)
		fan := newTestDevice(t, client, "LTF-F422S").(*TowerFan)

		ok, err := fan.SetLevel(context.Background(), 12)
		if err != nil || !ok {
			t.Fatalf("SetLevel = %v, %v", ok, err)
		}
		p := (*payloads)[0]
		if p.Method != "setLevels" {
			t.Errorf("method = %q", p.Method)
		}
		data := payloadData(t, p)
		if data["manualSpeedLevel"] != float64(12) || data["levelType"] != "wind" {
			t.Errorf("data = %v", data)
		}
		if fan.Mode() != ModeNormal {
			t.Errorf("mode = %q, want normal", fan.Mode())
		}

		if _, err := fan.SetLevel(context.Background(), 13); err != ErrUnsupportedType {
			t.Errorf("error = %v, want ErrUnsupportedType", err)
		}
	})

	t.Run("set mode", func(t *testing.T) {
		client, payloads := v2Server(t, `{"code": 0}`)
		fan := newTestDevice(t, client, "LTF-F422S").(*TowerFan)

		ok, err := fan.SetMode(context.Background(), ModeTurbo)
		if err != nil || !ok {
			t.Fatalf("SetMode = %v, %v", ok, err)
		}
		if (*payloads)[0].Method != "setTowerFanMode" {
			t.Errorf("method = %q", (*payloads)[0].Method)
		}
		if payloadData(t, (*payloads)[0])["workMode"] != ModeTurbo {
			t.Errorf("data = %v", payloadData(t, (*payloads)[0]))
		}

		if _, err := fan.SetMode(context.Background(), ModeHumidity); err != ErrUnsupportedType {
			t.Errorf("error = %v, want ErrUnsupportedType", err)
		}
	})

	t.Run("oscillation mute display", func(t *testing.T) {
		client, payloads := v2Server(t, `{"code": 0}`)
		fan := newTestDevice(t, client, "LTF-F422S").(*TowerFan)

		if ok, err := fan.SetOscillation(context.Background(), true); err != nil || !ok {
			t.Fatalf("SetOscillation = %v, %v", ok, err)
		}
		if ok, err := fan.SetMute(context.Background(), true); err != nil || !ok {
			t.Fatalf("SetMute = %v, %v", ok, err)
		}
		if ok, err := fan.SetDisplay(context.Background(), false); err != nil || !ok {
			t.Fatalf("SetDisplay = %v, %v", ok, err)
		}

		methods := []string{"setOscillationSwitch", "setMuteSwitch", "setDisplay"}
		for i, want := range methods {
			if (*payloads)[i].Method != want {
				t.Errorf("payloads[%d].Method = %q, want %q", i, (*payloads)[i].Method, want)
			}
		}
		if !fan.Oscillating() || !fan.Muted() || fan.DisplayOn() {
			t.Errorf("flags = osc %v, mute %v, display %v", fan.Oscillating(), fan.Muted(), fan.DisplayOn())
		}
		if payloadData(t, (*payloads)[2])["screenSwitch"] != float64(0) {
			t.Errorf("display data = %v", payloadData(t, (*payloads)[2]))
		}
	})
}
