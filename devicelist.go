package vesync

import (
	"context"
	"fmt"
)

// deviceProp carries inline state some models embed in their device list
// entry instead of the top-level fields.
type deviceProp struct {
	PowerSwitch      *int    `json:"powerSwitch"`
	ConnectionStatus *string `json:"connectionStatus"`
	WifiMac          *string `json:"wifiMac"`
}

// DeviceRecord is one entry of the account's device list.
type DeviceRecord struct {
	DeviceRegion       string      `json:"deviceRegion"`
	IsOwner            bool        `json:"isOwner"`
	DeviceName         string      `json:"deviceName"`
	CID                string      `json:"cid"`
	ConnectionType     string      `json:"connectionType"`
	ConnectionStatus   string      `json:"connectionStatus"`
	DeviceType         string      `json:"deviceType"`
	Type               string      `json:"type"`
	ConfigModule       string      `json:"configModule"`
	UUID               string      `json:"uuid"`
	MacID              string      `json:"macID"`
	Mode               string      `json:"mode"`
	CurrentFirmVersion string      `json:"currentFirmVersion"`
	SubDeviceNo        int         `json:"subDeviceNo"`
	DeviceStatus       string      `json:"deviceStatus"`
	DeviceProp         *deviceProp `json:"deviceProp,omitempty"`
}

// normalize flattens the optional deviceProp state into the top-level
// fields and backfills a missing cid from uuid or MAC.
func (r *DeviceRecord) normalize() {
	if p := r.DeviceProp; p != nil {
		if p.PowerSwitch != nil {
			if *p.PowerSwitch == 1 {
				r.DeviceStatus = string(StatusOn)
			} else {
				r.DeviceStatus = string(StatusOff)
			}
		}
		if p.ConnectionStatus != nil {
			r.ConnectionStatus = *p.ConnectionStatus
		}
		if p.WifiMac != nil {
			r.MacID = *p.WifiMac
		}
		r.DeviceProp = nil
	}
	if r.CID == "" {
		if r.UUID != "" {
			r.CID = r.UUID
		} else {
			r.CID = r.MacID
		}
	}
}

// GetDevices fetches the account's device list and reconciles the device
// container against it: new devices are constructed, known devices are
// refreshed in place and devices no longer listed are dropped.
func (c *Client) GetDevices(ctx context.Context) error {
	if !c.Enabled() {
		return ErrNotLoggedIn
	}

	body, _, err := c.post(ctx, deviceListPath, c.newDeviceListRequest())
	if err != nil {
		return err
	}

	resp, err := unmarshalResponse[struct {
		Code   int64  `json:"code"`
		Msg    string `json:"msg"`
		Result struct {
			Total int            `json:"total"`
			List  []DeviceRecord `json:"list"`
		} `json:"result"`
	}](body, "device list")
	if err != nil {
		return err
	}
	if resp.Code != 0 {
		info := Classify(resp.Code)
		return fmt.Errorf("vesync: device list failed (%d): %s", resp.Code, info.Message)
	}

	records := resp.Result.List
	for i := range records {
		records[i].normalize()
	}

	c.devices.addNewDevices(records)
	removed := c.devices.removeStaleDevices(records)

	c.logger.Debug().
		Int("devices", c.devices.Len()).
		Int("removed", removed).
		Msg("device list updated")
	return nil
}

// UpdateAllDevices refreshes the state of every device in the container,
// one at a time. Device-level failures are recorded on the device and do
// not stop the sweep; the first systemic error aborts it.
func (c *Client) UpdateAllDevices(ctx context.Context) error {
	for _, d := range c.devices.All() {
		if _, err := d.Update(ctx); err != nil {
			return fmt.Errorf("updating %s: %w", d.DeviceName(), err)
		}
	}
	return nil
}

// Update refreshes the device list and then every device's state.
func (c *Client) Update(ctx context.Context) error {
	if err := c.GetDevices(ctx); err != nil {
		return err
	}
	return c.UpdateAllDevices(ctx)
}

// FirmwareUpdate describes one available firmware image for a device.
type FirmwareUpdate struct {
	CurrentVersion string `json:"currentVersion"`
	LatestVersion  string `json:"latestVersion"`
	ReleaseNotes   string `json:"releaseNotes"`
	PluginName     string `json:"pluginName"`
	IsMainFirmware bool   `json:"isMainFw"`
}

// DeviceFirmware is the firmware report for a single device.
type DeviceFirmware struct {
	DeviceCID  string           `json:"deviceCid"`
	DeviceName string           `json:"deviceName"`
	Code       int64            `json:"code"`
	Msg        string           `json:"msg"`
	Updates    []FirmwareUpdate `json:"firmUpdateInfos"`
}

// HasUpdate reports whether any firmware image is newer than the installed
// one.
func (f DeviceFirmware) HasUpdate() bool {
	for _, u := range f.Updates {
		if u.LatestVersion != "" && u.LatestVersion != u.CurrentVersion {
			return true
		}
	}
	return false
}

// CheckFirmware queries firmware update information for every device in
// the container.
func (c *Client) CheckFirmware(ctx context.Context) ([]DeviceFirmware, error) {
	if !c.Enabled() {
		return nil, ErrNotLoggedIn
	}

	devices := c.devices.All()
	if len(devices) == 0 {
		return nil, nil
	}
	seen := make(map[string]bool, len(devices))
	cids := make([]string, 0, len(devices))
	for _, d := range devices {
		if !seen[d.CID()] {
			seen[d.CID()] = true
			cids = append(cids, d.CID())
		}
	}

	body, _, err := c.post(ctx, firmwarePath, c.newFirmwareRequest(cids))
	if err != nil {
		return nil, err
	}

	resp, err := unmarshalResponse[struct {
		Code   int64  `json:"code"`
		Msg    string `json:"msg"`
		Result struct {
			CidFwInfoList []DeviceFirmware `json:"cidFwInfoList"`
		} `json:"result"`
	}](body, "firmware info")
	if err != nil {
		return nil, err
	}
	if resp.Code != 0 {
		info := Classify(resp.Code)
		return nil, fmt.Errorf("vesync: firmware check failed (%d): %s", resp.Code, info.Message)
	}
	return resp.Result.CidFwInfoList, nil
}
