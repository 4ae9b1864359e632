package vesync

import (
	"net/http"
	"testing"
)

func TestBaseDeviceAccessors(t *testing.T) {
	client, _ := newTestClient(t, http.NotFoundHandler())
	dev := newTestDevice(t, client, "Core300S")

	if dev.CID() != "cid-Core300S" {
		t.Errorf("cid = %q", dev.CID())
	}
	if dev.DeviceType() != "Core300S" {
		t.Errorf("type = %q", dev.DeviceType())
	}
	if dev.ProductType() != ProductTypePurifier {
		t.Errorf("product = %q", dev.ProductType())
	}
	if dev.DeviceStatus() != StatusOn {
		t.Errorf("status = %q", dev.DeviceStatus())
	}
	if dev.ConnectionStatus() != ConnectionOnline {
		t.Errorf("connection = %q", dev.ConnectionStatus())
	}
	if !dev.SupportsFeature(FeatureAirQuality) {
		t.Error("Core300S should have an air quality sensor")
	}
	if dev.SupportsFeature(FeatureWarmMist) {
		t.Error("a purifier has no warm mist")
	}
	if !dev.LastUpdate().IsZero() {
		t.Error("LastUpdate should be zero before any call")
	}
}

func TestBaseDeviceOnlineMarks(t *testing.T) {
	client, _ := newTestClient(t, http.NotFoundHandler())
	dev := newTestDevice(t, client, "Core300S")
	base := dev.base()

	base.setLastResponse(ResponseInfo{Kind: KindDeviceOffline, Online: MarkOffline})
	if dev.ConnectionStatus() != ConnectionOffline {
		t.Errorf("connection = %q, want offline", dev.ConnectionStatus())
	}

	base.setLastResponse(ResponseInfo{Kind: KindDeviceError, Online: MarkOnline})
	if dev.ConnectionStatus() != ConnectionOnline {
		t.Errorf("connection = %q, want online", dev.ConnectionStatus())
	}

	// MarkNone leaves the connection untouched.
	base.setLastResponse(ResponseInfo{Kind: KindRequestError})
	if dev.ConnectionStatus() != ConnectionOnline {
		t.Errorf("connection = %q, want online", dev.ConnectionStatus())
	}
}

func TestBaseDeviceUpdateFromRecord(t *testing.T) {
	client, _ := newTestClient(t, http.NotFoundHandler())
	dev := newTestDevice(t, client, "Core300S")
	base := dev.base()

	rec := testRecord("Renamed Purifier", dev.CID(), "Core300S")
	rec.DeviceStatus = "off"
	rec.ConnectionStatus = "offline"
	rec.CurrentFirmVersion = "2.0.10"
	base.updateFromRecord(rec)

	if dev.DeviceName() != "Renamed Purifier" {
		t.Errorf("name = %q", dev.DeviceName())
	}
	if dev.DeviceStatus() != StatusOff {
		t.Errorf("status = %q", dev.DeviceStatus())
	}
	if dev.ConnectionStatus() != ConnectionOffline {
		t.Errorf("connection = %q", dev.ConnectionStatus())
	}
	if dev.FirmwareVersion() != "2.0.10" {
		t.Errorf("firmware = %q", dev.FirmwareVersion())
	}
}
