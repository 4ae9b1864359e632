package vesync

import (
	"context"
	"testing"
)

func TestPurifierUpdate(t *testing.T) {
	client, payloads := v2Server(t, `{
		"code": 0,
		"result": {
			"enabled": true,
			"filter_life": 88,
			"mode": "auto",
			"level": 2,
			"air_quality": 1,
			"air_quality_value": 7,
			"display": true,
			"child_lock": false
		}
	}`)
	pur := newTestDevice(t, client, "Core300S").(*Purifier)

	ok, err := pur.Update(context.Background())
	if err != nil || !ok {
		t.Fatalf("Update = %v, %v", ok, err)
	}
	if (*payloads)[0].Method != "getPurifierStatus" {
		t.Errorf("method = %q", (*payloads)[0].Method)
	}
	if !pur.IsOn() {
		t.Error("purifier should be on")
	}
	if pur.FilterLife() != 88 {
		t.Errorf("filter life = %d", pur.FilterLife())
	}
	if pur.AirQuality() != 1 || pur.AirQualityValue() != 7 {
		t.Errorf("air quality = %d (%d)", pur.AirQuality(), pur.AirQualityValue())
	}
	if pur.FanLevel() != 2 || pur.Mode() != ModeAuto {
		t.Errorf("level = %d, mode = %q", pur.FanLevel(), pur.Mode())
	}
}

func TestPurifierControls(t *testing.T) {
	t.Run("set level switches to manual", func(t *testing.T) {
		client, payloads := v2Server(t, `{"code": 0}`)
		pur := newTestDevice(t, client, "Core300S").(*Purifier)

		ok, err := pur.SetLevel(context.Background(), 3)
		if err != nil || !ok {
			t.Fatalf("SetLevel = %v, %v", ok, err)
		}
		p := (*payloads)[0]
		if p.Method != "setLevel" {
			t.Errorf("method = %q", p.Method)
		}
		data := payloadData(t, p)
		if data["type"] != "wind" || data["level"] != float64(3) || data["mode"] != ModeManual {
			t.Errorf("data = %v", data)
		}
		if pur.Mode() != ModeManual {
			t.Errorf("mode = %q, want manual", pur.Mode())
		}
	})

	t.Run("invalid level rejected locally", func(t *testing.T) {
		client, payloads := v2Server(t, `{"code": 0}`)
		pur := newTestDevice(t, client, "Core300S").(*Purifier)

		if _, err := pur.SetLevel(context.Background(), 5); err != ErrUnsupportedType {
			t.Errorf("error = %v, want ErrUnsupportedType", err)
		}
		if len(*payloads) != 0 {
			t.Errorf("requests = %d, want 0", len(*payloads))
		}
	})

	t.Run("set mode", func(t *testing.T) {
		client, payloads := v2Server(t, `{"code": 0}`)
		pur := newTestDevice(t, client, "Core300S").(*Purifier)

		ok, err := pur.SetMode(context.Background(), ModeSleep)
		if err != nil || !ok {
			t.Fatalf("SetMode = %v, %v", ok, err)
		}
		if (*payloads)[0].Method != "setPurifierMode" {
			t.Errorf("method = %q", (*payloads)[0].Method)
		}
	})

	t.Run("pet mode only on models that have it", func(t *testing.T) {
		client, _ := v2Server(t, `{"code": 0}`)
		core := newTestDevice(t, client, "Core300S").(*Purifier)
		if _, err := core.SetMode(context.Background(), ModePet); err != ErrUnsupportedType {
			t.Errorf("error = %v, want ErrUnsupportedType", err)
		}

		vital := newTestDevice(t, client, "Vital200S").(*Purifier)
		if ok, err := vital.SetMode(context.Background(), ModePet); err != nil || !ok {
			t.Fatalf("SetMode = %v, %v", ok, err)
		}
	})

	t.Run("child lock", func(t *testing.T) {
		client, payloads := v2Server(t, `{"code": 0}`)
		pur := newTestDevice(t, client, "Core300S").(*Purifier)

		ok, err := pur.SetChildLock(context.Background(), true)
		if err != nil || !ok {
			t.Fatalf("SetChildLock = %v, %v", ok, err)
		}
		data := payloadData(t, (*payloads)[0])
		if data["child_lock"] != true {
			t.Errorf("data = %v", data)
		}
		if !pur.ChildLockOn() {
			t.Error("child lock should be on")
		}
	})

	t.Run("night light needs the feature", func(t *testing.T) {
		client, _ := v2Server(t, `{"code": 0}`)
		core300 := newTestDevice(t, client, "Core300S").(*Purifier)
		if _, err := core300.SetNightLight(context.Background(), "dim"); err != ErrUnsupportedType {
			t.Errorf("error = %v, want ErrUnsupportedType", err)
		}

		core200 := newTestDevice(t, client, "Core200S").(*Purifier)
		if ok, err := core200.SetNightLight(context.Background(), "dim"); err != nil || !ok {
			t.Fatalf("SetNightLight = %v, %v", ok, err)
		}
	})

	t.Run("timer round trip", func(t *testing.T) {
		client, payloads := v2Server(t, `{"code": 0, "result": {"id": 11}}`)
		pur := newTestDevice(t, client, "Core300S").(*Purifier)

		ok, err := pur.SetTimer(context.Background(), 900)
		if err != nil || !ok {
			t.Fatalf("SetTimer = %v, %v", ok, err)
		}
		data := payloadData(t, (*payloads)[0])
		if data["action"] != "off" || data["total"] != float64(900) {
			t.Errorf("data = %v", data)
		}

		ok, err = pur.ClearTimer(context.Background())
		if err != nil || !ok {
			t.Fatalf("ClearTimer = %v, %v", ok, err)
		}
		data = payloadData(t, (*payloads)[1])
		if data["id"] != float64(11) {
			t.Errorf("data = %v", data)
		}
	})
}
