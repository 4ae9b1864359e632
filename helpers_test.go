package vesync

import (
	"strings"
	"testing"
)

func nestedFixture() map[string]any {
	return map[string]any{
		"code": float64(0),
		"result": map[string]any{
			"deviceStatus": "on",
			"energy":       1.5,
			"result": map[string]any{
				"humidity": float64(42),
				"enabled":  true,
				"timers":   []any{map[string]any{"id": float64(1)}},
			},
		},
	}
}

func TestNavigationHelpers(t *testing.T) {
	data := nestedFixture()

	t.Run("GetString", func(t *testing.T) {
		if s, ok := GetString(data, "result", "deviceStatus"); !ok || s != "on" {
			t.Errorf("GetString = %q, %v", s, ok)
		}
		if _, ok := GetString(data, "result", "missing"); ok {
			t.Error("unexpected hit")
		}
		if _, ok := GetString(data, "result", "energy"); ok {
			t.Error("number should not read as string")
		}
	})

	t.Run("GetInt", func(t *testing.T) {
		if n, ok := GetInt(data, "result", "result", "humidity"); !ok || n != 42 {
			t.Errorf("GetInt = %d, %v", n, ok)
		}
		if _, ok := GetInt(data, "result", "deviceStatus"); ok {
			t.Error("string should not read as int")
		}
	})

	t.Run("GetFloat", func(t *testing.T) {
		if f, ok := GetFloat(data, "result", "energy"); !ok || f != 1.5 {
			t.Errorf("GetFloat = %v, %v", f, ok)
		}
	})

	t.Run("GetBool", func(t *testing.T) {
		if b, ok := GetBool(data, "result", "result", "enabled"); !ok || !b {
			t.Errorf("GetBool = %v, %v", b, ok)
		}
	})

	t.Run("GetMap and GetArray", func(t *testing.T) {
		inner, ok := GetMap(data, "result", "result")
		if !ok || inner["humidity"] != float64(42) {
			t.Errorf("GetMap = %v, %v", inner, ok)
		}
		arr, ok := GetArray(data, "result", "result", "timers")
		if !ok || len(arr) != 1 {
			t.Errorf("GetArray = %v, %v", arr, ok)
		}
	})

	t.Run("navigation through a non-map stops", func(t *testing.T) {
		if _, ok := GetString(data, "result", "deviceStatus", "deeper"); ok {
			t.Error("unexpected hit")
		}
	})
}

func TestUnmarshalResponse(t *testing.T) {
	type envelope struct {
		Code int64 `json:"code"`
	}

	resp, err := unmarshalResponse[envelope]([]byte(`{"code": 7}`), "test envelope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Code != 7 {
		t.Errorf("code = %d", resp.Code)
	}

	_, err = unmarshalResponse[envelope]([]byte("nope"), "test envelope")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "test envelope") {
		t.Errorf("error %q should name the resource", err)
	}
}

func TestTruncatePreview(t *testing.T) {
	long := strings.Repeat("x", 500)
	got := truncatePreview([]byte(long))
	if len(got) != 203 || !strings.HasSuffix(got, "...") {
		t.Errorf("len = %d", len(got))
	}
	if got := truncatePreview([]byte("short")); got != "short" {
		t.Errorf("got %q", got)
	}
}
