package vesync

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

// testLogger returns a silent logger for tests.
func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// newTestClient returns a logged-in client pointed at a test server.
func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient("test@example.com", "password", WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	client.SetCredentials("test-token", "test-account", "US")
	return client, srv
}

// testRecord returns a device list record for the given model.
func testRecord(name, cid, deviceType string) DeviceRecord {
	return DeviceRecord{
		DeviceName:       name,
		CID:              cid,
		UUID:             cid + "-uuid",
		DeviceType:       deviceType,
		ConfigModule:     "config-" + deviceType,
		ConnectionStatus: "online",
		DeviceStatus:     "on",
		DeviceRegion:     "US",
	}
}

// newTestDevice builds a device of the given model attached to the client.
func newTestDevice(t *testing.T, c *Client, deviceType string) Device {
	t.Helper()
	cfg := lookupDeviceConfig(deviceType)
	if cfg == nil {
		t.Fatalf("no registry entry for %s", deviceType)
	}
	return cfg.build(c, testRecord("test device", "cid-"+deviceType, deviceType), cfg)
}
