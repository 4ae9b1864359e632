package vesync

import (
	"sort"
	"sync"
)

// DeviceContainer holds the account's devices, keyed by cloud identifier
// and sub-device number. It is populated by Client.GetDevices and safe for
// concurrent use.
type DeviceContainer struct {
	client *Client

	mu      sync.RWMutex
	devices map[deviceKey]Device
}

func newDeviceContainer(c *Client) *DeviceContainer {
	return &DeviceContainer{
		client:  c,
		devices: make(map[deviceKey]Device),
	}
}

// Len returns the number of devices in the container.
func (dc *DeviceContainer) Len() int {
	dc.mu.RLock()
	defer dc.mu.RUnlock()
	return len(dc.devices)
}

// All returns every device, sorted by name for stable iteration.
func (dc *DeviceContainer) All() []Device {
	dc.mu.RLock()
	defer dc.mu.RUnlock()
	out := make([]Device, 0, len(dc.devices))
	for _, d := range dc.devices {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DeviceName() != out[j].DeviceName() {
			return out[i].DeviceName() < out[j].DeviceName()
		}
		return out[i].CID() < out[j].CID()
	})
	return out
}

// Get returns the device with the given cloud identifier and sub-device
// number.
func (dc *DeviceContainer) Get(cid string, subDeviceNo int) (Device, bool) {
	dc.mu.RLock()
	defer dc.mu.RUnlock()
	d, ok := dc.devices[deviceKey{cid: cid, subDeviceNo: subDeviceNo}]
	return d, ok
}

// GetByName returns the first device with the given user-assigned name.
func (dc *DeviceContainer) GetByName(name string) (Device, bool) {
	for _, d := range dc.All() {
		if d.DeviceName() == name {
			return d, true
		}
	}
	return nil, false
}

// RemoveByCID removes every device sharing the given cloud identifier and
// returns how many were removed.
func (dc *DeviceContainer) RemoveByCID(cid string) int {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	removed := 0
	for key := range dc.devices {
		if key.cid == cid {
			delete(dc.devices, key)
			removed++
		}
	}
	return removed
}

// addNewDevices builds devices for records not yet in the container.
// Existing devices are refreshed in place so held references stay valid.
// Unsupported models are logged and skipped.
func (dc *DeviceContainer) addNewDevices(records []DeviceRecord) {
	for _, rec := range records {
		if rec.CID == "" {
			dc.client.logger.Warn().
				Str("device", rec.DeviceName).
				Str("type", rec.DeviceType).
				Msg("device record missing cid")
			continue
		}
		key := deviceKey{cid: rec.CID, subDeviceNo: rec.SubDeviceNo}

		dc.mu.Lock()
		if existing, ok := dc.devices[key]; ok {
			existing.base().updateFromRecord(rec)
			dc.mu.Unlock()
			continue
		}
		dc.mu.Unlock()

		cfg := lookupDeviceConfig(rec.DeviceType)
		if cfg == nil {
			dc.client.logger.Info().
				Str("device", rec.DeviceName).
				Str("type", rec.DeviceType).
				Msg("unsupported device type")
			continue
		}

		d := cfg.build(dc.client, rec, cfg)
		dc.mu.Lock()
		dc.devices[key] = d
		dc.mu.Unlock()
	}
}

// removeStaleDevices drops devices that no longer appear in the account's
// device list. Returns the number removed.
func (dc *DeviceContainer) removeStaleDevices(records []DeviceRecord) int {
	current := make(map[deviceKey]bool, len(records))
	for _, rec := range records {
		current[deviceKey{cid: rec.CID, subDeviceNo: rec.SubDeviceNo}] = true
	}

	dc.mu.Lock()
	defer dc.mu.Unlock()
	removed := 0
	for key, d := range dc.devices {
		if !current[key] {
			dc.client.logger.Debug().
				Str("device", d.DeviceName()).
				Str("cid", key.cid).
				Msg("removing stale device")
			delete(dc.devices, key)
			removed++
		}
	}
	return removed
}

// Outlets returns the container's outlets.
func (dc *DeviceContainer) Outlets() []*Outlet {
	var out []*Outlet
	for _, d := range dc.All() {
		if o, ok := d.(*Outlet); ok {
			out = append(out, o)
		}
	}
	return out
}

// Switches returns the container's wall switches and dimmers.
func (dc *DeviceContainer) Switches() []*WallSwitch {
	var out []*WallSwitch
	for _, d := range dc.All() {
		if s, ok := d.(*WallSwitch); ok {
			out = append(out, s)
		}
	}
	return out
}

// Bulbs returns the container's bulbs.
func (dc *DeviceContainer) Bulbs() []*Bulb {
	var out []*Bulb
	for _, d := range dc.All() {
		if b, ok := d.(*Bulb); ok {
			out = append(out, b)
		}
	}
	return out
}

// Humidifiers returns the container's humidifiers.
func (dc *DeviceContainer) Humidifiers() []*Humidifier {
	var out []*Humidifier
	for _, d := range dc.All() {
		if h, ok := d.(*Humidifier); ok {
			out = append(out, h)
		}
	}
	return out
}

// Purifiers returns the container's air purifiers.
func (dc *DeviceContainer) Purifiers() []*Purifier {
	var out []*Purifier
	for _, d := range dc.All() {
		if p, ok := d.(*Purifier); ok {
			out = append(out, p)
		}
	}
	return out
}

// Fans returns the container's tower fans.
func (dc *DeviceContainer) Fans() []*TowerFan {
	var out []*TowerFan
	for _, d := range dc.All() {
		if f, ok := d.(*TowerFan); ok {
			out = append(out, f)
		}
	}
	return out
}

// AirFryers returns the container's air fryers.
func (dc *DeviceContainer) AirFryers() []*AirFryer {
	var out []*AirFryer
	for _, d := range dc.All() {
		if a, ok := d.(*AirFryer); ok {
			out = append(out, a)
		}
	}
	return out
}
