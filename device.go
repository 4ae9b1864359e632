package vesync

import (
	"context"
	"sync"
	"time"
)

// DeviceStatus is a device power state as reported by the API.
type DeviceStatus string

// Device power states.
const (
	StatusOn      DeviceStatus = "on"
	StatusOff     DeviceStatus = "off"
	StatusUnknown DeviceStatus = "unknown"
)

// ConnectionStatus is a device's cloud connectivity state.
type ConnectionStatus string

// Device connectivity states.
const (
	ConnectionOnline  ConnectionStatus = "online"
	ConnectionOffline ConnectionStatus = "offline"
)

// deviceKey uniquely identifies a device within an account. Sub-devices of
// a multi-outlet strip share a cid and differ in subDeviceNo.
type deviceKey struct {
	cid         string
	subDeviceNo int
}

// Device is the interface shared by all VeSync devices. Concrete types such
// as *Outlet or *Humidifier expose the operations of their product family.
type Device interface {
	// CID returns the cloud identifier of the device.
	CID() string
	// SubDeviceNo distinguishes sub-devices sharing a cid; 0 otherwise.
	SubDeviceNo() int
	// DeviceName returns the user-assigned name.
	DeviceName() string
	// DeviceType returns the model string, for example "Core300S".
	DeviceType() string
	// ProductType returns the product family.
	ProductType() ProductType
	// DeviceStatus returns the last known power state.
	DeviceStatus() DeviceStatus
	// ConnectionStatus returns the last known connectivity state.
	ConnectionStatus() ConnectionStatus
	// FirmwareVersion returns the firmware version from the device list.
	FirmwareVersion() string
	// SupportsFeature reports whether the device model has the given feature.
	SupportsFeature(f Feature) bool
	// LastResponse returns the classification of the most recent API
	// response involving this device. Device-level failures are recorded
	// here instead of being returned as errors.
	LastResponse() ResponseInfo
	// LastUpdate returns when the device state was last refreshed.
	LastUpdate() time.Time
	// Update refreshes the device's state from the API.
	Update(ctx context.Context) (bool, error)

	base() *baseDevice
}

// Toggleable is implemented by devices with a primary power switch.
type Toggleable interface {
	Device
	TurnOn(ctx context.Context) (bool, error)
	TurnOff(ctx context.Context) (bool, error)
	ToggleSwitch(ctx context.Context, on bool) (bool, error)
}

// ModeSetter is implemented by devices with selectable operating modes.
type ModeSetter interface {
	Device
	Modes() []string
	SetMode(ctx context.Context, mode string) (bool, error)
}

// LevelSetter is implemented by devices with a numeric level such as fan
// speed or mist output.
type LevelSetter interface {
	Device
	Levels() []int
	SetLevel(ctx context.Context, level int) (bool, error)
}

var (
	_ Device      = (*AirFryer)(nil)
	_ Toggleable  = (*Outlet)(nil)
	_ Toggleable  = (*WallSwitch)(nil)
	_ Toggleable  = (*Bulb)(nil)
	_ ModeSetter  = (*Humidifier)(nil)
	_ ModeSetter  = (*Purifier)(nil)
	_ ModeSetter  = (*TowerFan)(nil)
	_ LevelSetter = (*Humidifier)(nil)
	_ LevelSetter = (*Purifier)(nil)
	_ LevelSetter = (*TowerFan)(nil)
)

// baseDevice carries the identity, configuration and shared state embedded
// in every concrete device type.
type baseDevice struct {
	client *Client
	config *DeviceConfig

	cid            string
	uuid           string
	subDeviceNo    int
	deviceName     string
	deviceType     string
	configModule   string
	macID          string
	connectionType string
	deviceRegion   string
	firmVersion    string

	mu               sync.RWMutex
	deviceStatus     DeviceStatus
	connectionStatus ConnectionStatus
	lastResponse     ResponseInfo
	lastUpdate       time.Time
}

func newBaseDevice(c *Client, rec DeviceRecord, cfg *DeviceConfig) baseDevice {
	status := DeviceStatus(rec.DeviceStatus)
	if status != StatusOn && status != StatusOff {
		status = StatusUnknown
	}
	conn := ConnectionOffline
	if rec.ConnectionStatus == string(ConnectionOnline) {
		conn = ConnectionOnline
	}
	return baseDevice{
		client:           c,
		config:           cfg,
		cid:              rec.CID,
		uuid:             rec.UUID,
		subDeviceNo:      rec.SubDeviceNo,
		deviceName:       rec.DeviceName,
		deviceType:       rec.DeviceType,
		configModule:     rec.ConfigModule,
		macID:            rec.MacID,
		connectionType:   rec.ConnectionType,
		deviceRegion:     rec.DeviceRegion,
		firmVersion:      rec.CurrentFirmVersion,
		deviceStatus:     status,
		connectionStatus: conn,
	}
}

func (d *baseDevice) base() *baseDevice { return d }

func (d *baseDevice) key() deviceKey {
	return deviceKey{cid: d.cid, subDeviceNo: d.subDeviceNo}
}

// CID returns the cloud identifier of the device.
func (d *baseDevice) CID() string { return d.cid }

// UUID returns the secondary device identifier, used by some endpoints.
func (d *baseDevice) UUID() string { return d.uuid }

// SubDeviceNo distinguishes sub-devices sharing a cid.
func (d *baseDevice) SubDeviceNo() int { return d.subDeviceNo }

// DeviceName returns the user-assigned name.
func (d *baseDevice) DeviceName() string { return d.deviceName }

// DeviceType returns the model string.
func (d *baseDevice) DeviceType() string { return d.deviceType }

// ConfigModule returns the configuration module identifier.
func (d *baseDevice) ConfigModule() string { return d.configModule }

// MacID returns the device MAC address.
func (d *baseDevice) MacID() string { return d.macID }

// FirmwareVersion returns the firmware version from the device list.
func (d *baseDevice) FirmwareVersion() string { return d.firmVersion }

// ProductType returns the product family of the device.
func (d *baseDevice) ProductType() ProductType { return d.config.ProductType }

// Features returns the feature set of the device model.
func (d *baseDevice) Features() []Feature { return d.config.Features }

// SupportsFeature reports whether the device model has the given feature.
func (d *baseDevice) SupportsFeature(f Feature) bool {
	for _, feat := range d.config.Features {
		if feat == f {
			return true
		}
	}
	return false
}

// DeviceStatus returns the last known power state.
func (d *baseDevice) DeviceStatus() DeviceStatus {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.deviceStatus
}

// ConnectionStatus returns the last known connectivity state.
func (d *baseDevice) ConnectionStatus() ConnectionStatus {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.connectionStatus
}

// IsOn reports whether the device's last known power state is on.
func (d *baseDevice) IsOn() bool { return d.DeviceStatus() == StatusOn }

// LastResponse returns the classification of the most recent API response
// involving this device.
func (d *baseDevice) LastResponse() ResponseInfo {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lastResponse
}

// LastUpdate returns when the device state was last refreshed.
func (d *baseDevice) LastUpdate() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lastUpdate
}

// setLastResponse records a classified response and applies its
// connectivity implication, if any.
func (d *baseDevice) setLastResponse(info ResponseInfo) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastResponse = info
	switch info.Online {
	case MarkOffline:
		d.connectionStatus = ConnectionOffline
	case MarkOnline:
		d.connectionStatus = ConnectionOnline
	}
}

// setStatus updates the cached power state and marks the device online.
// Commands only reach devices with a live cloud connection.
func (d *baseDevice) setStatus(status DeviceStatus) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.deviceStatus = status
	d.connectionStatus = ConnectionOnline
	d.lastUpdate = time.Now()
}

func (d *baseDevice) touch() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.connectionStatus = ConnectionOnline
	d.lastUpdate = time.Now()
}

// updateFromRecord refreshes identity-adjacent fields from a device list
// entry without replacing the device object.
func (d *baseDevice) updateFromRecord(rec DeviceRecord) {
	d.deviceName = rec.DeviceName
	d.firmVersion = rec.CurrentFirmVersion

	d.mu.Lock()
	defer d.mu.Unlock()
	if rec.ConnectionStatus == string(ConnectionOnline) {
		d.connectionStatus = ConnectionOnline
	} else {
		d.connectionStatus = ConnectionOffline
	}
	switch DeviceStatus(rec.DeviceStatus) {
	case StatusOn:
		d.deviceStatus = StatusOn
	case StatusOff:
		d.deviceStatus = StatusOff
	}
}
