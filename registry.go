package vesync

import "strings"

// ProductType is a VeSync product family.
type ProductType string

// Product families.
const (
	ProductTypeOutlet     ProductType = "outlet"
	ProductTypeSwitch     ProductType = "switch"
	ProductTypeBulb       ProductType = "bulb"
	ProductTypeHumidifier ProductType = "humidifier"
	ProductTypePurifier   ProductType = "purifier"
	ProductTypeFan        ProductType = "fan"
	ProductTypeAirFryer   ProductType = "fryer"
)

// protocol selects which device endpoint generation a model speaks.
type protocol int

const (
	protocolBypassV1 protocol = iota + 1
	protocolBypassV2
)

// Feature is an optional device capability.
type Feature string

// Device features.
const (
	FeatureEnergyMonitor Feature = "energy_monitor"
	FeatureDimmable      Feature = "dimmable"
	FeatureColorTemp     Feature = "color_temp"
	FeatureRGB           Feature = "rgb_shift"
	FeatureNightLight    Feature = "night_light"
	FeatureAirQuality    Feature = "air_quality"
	FeatureChildLock     Feature = "child_lock"
	FeatureDisplay       Feature = "display"
	FeatureTimer         Feature = "timer"
	FeatureOscillation   Feature = "oscillation"
	FeatureMute          Feature = "mute"
	FeatureWarmMist      Feature = "warm_mist"
	FeatureDrying        Feature = "drying"
)

// Operating modes shared across families.
const (
	ModeAuto          = "auto"
	ModeManual        = "manual"
	ModeSleep         = "sleep"
	ModeTurbo         = "turbo"
	ModePet           = "pet"
	ModeNormal        = "normal"
	ModeAdvancedSleep = "advancedSleep"
	ModeHumidity      = "humidity"
)

// DeviceConfig describes one device model group: which product family it
// belongs to, which protocol generation it speaks and what it can do.
// Construction of concrete device values is driven entirely by this table;
// there is no per-model subclassing.
type DeviceConfig struct {
	// DeviceTypes lists the model strings covered by this entry. Regional
	// variants with suffixes match by prefix.
	DeviceTypes []string
	// ProductType is the product family.
	ProductType ProductType
	// Protocol is the endpoint generation the model speaks.
	Protocol protocol
	// Features lists the optional capabilities of the model.
	Features []Feature
	// Modes lists the selectable operating modes, if any.
	Modes []string
	// Levels lists the valid numeric levels (fan speed, mist level), if any.
	Levels []int

	build func(*Client, DeviceRecord, *DeviceConfig) Device
}

// supportsMode reports whether the entry lists the given operating mode.
func (dc *DeviceConfig) supportsMode(mode string) bool {
	for _, m := range dc.Modes {
		if m == mode {
			return true
		}
	}
	return false
}

// supportsLevel reports whether the entry lists the given numeric level.
func (dc *DeviceConfig) supportsLevel(level int) bool {
	for _, l := range dc.Levels {
		if l == level {
			return true
		}
	}
	return false
}

// deviceRegistry maps every supported model to its configuration. Lookup is
// a linear scan; the table is small and read-only.
var deviceRegistry = []DeviceConfig{
	// Outlets
	{
		DeviceTypes: []string{"wifi-switch-1.3", "ESW01-EU", "ESW03-USA"},
		ProductType: ProductTypeOutlet,
		Protocol:    protocolBypassV1,
		Features:    []Feature{FeatureEnergyMonitor, FeatureTimer},
		build:       newOutletDevice,
	},
	{
		DeviceTypes: []string{"ESW15-USA"},
		ProductType: ProductTypeOutlet,
		Protocol:    protocolBypassV1,
		Features:    []Feature{FeatureEnergyMonitor, FeatureNightLight, FeatureTimer},
		build:       newOutletDevice,
	},
	{
		DeviceTypes: []string{"ESO15-TB"},
		ProductType: ProductTypeOutlet,
		Protocol:    protocolBypassV1,
		Features:    []Feature{FeatureEnergyMonitor, FeatureTimer},
		build:       newOutletDevice,
	},
	{
		DeviceTypes: []string{"BSDOG01", "WYSMTOD16A", "WHOGPLUG"},
		ProductType: ProductTypeOutlet,
		Protocol:    protocolBypassV2,
		Features:    []Feature{FeatureTimer},
		build:       newOutletDevice,
	},
	// Wall switches
	{
		DeviceTypes: []string{"ESWL01", "ESWL03"},
		ProductType: ProductTypeSwitch,
		Protocol:    protocolBypassV1,
		Features:    []Feature{FeatureTimer},
		build:       newSwitchDevice,
	},
	{
		DeviceTypes: []string{"ESWD16"},
		ProductType: ProductTypeSwitch,
		Protocol:    protocolBypassV1,
		Features:    []Feature{FeatureDimmable, FeatureNightLight, FeatureTimer},
		build:       newSwitchDevice,
	},
	// Bulbs
	{
		DeviceTypes: []string{"ESL100"},
		ProductType: ProductTypeBulb,
		Protocol:    protocolBypassV1,
		Features:    []Feature{FeatureDimmable},
		build:       newBulbDevice,
	},
	{
		DeviceTypes: []string{"ESL100CW"},
		ProductType: ProductTypeBulb,
		Protocol:    protocolBypassV1,
		Features:    []Feature{FeatureDimmable, FeatureColorTemp},
		build:       newBulbDevice,
	},
	{
		DeviceTypes: []string{"ESL100MC"},
		ProductType: ProductTypeBulb,
		Protocol:    protocolBypassV2,
		Features:    []Feature{FeatureDimmable, FeatureRGB},
		build:       newBulbDevice,
	},
	{
		DeviceTypes: []string{"XYD0001"},
		ProductType: ProductTypeBulb,
		Protocol:    protocolBypassV2,
		Features:    []Feature{FeatureDimmable, FeatureColorTemp, FeatureRGB},
		build:       newBulbDevice,
	},
	// Humidifiers
	{
		DeviceTypes: []string{"Classic200S", "Dual200S", "LUH-D301S"},
		ProductType: ProductTypeHumidifier,
		Protocol:    protocolBypassV2,
		Features:    []Feature{FeatureDisplay, FeatureTimer},
		Modes:       []string{ModeAuto, ModeManual},
		Levels:      []int{1, 2, 3},
		build:       newHumidifierDevice,
	},
	{
		DeviceTypes: []string{"Classic300S", "LUH-A601S"},
		ProductType: ProductTypeHumidifier,
		Protocol:    protocolBypassV2,
		Features:    []Feature{FeatureDisplay, FeatureNightLight, FeatureTimer},
		Modes:       []string{ModeAuto, ModeManual, ModeSleep},
		Levels:      []int{1, 2, 3, 4, 5, 6, 7, 8, 9},
		build:       newHumidifierDevice,
	},
	{
		DeviceTypes: []string{"LUH-A602S", "LV600S"},
		ProductType: ProductTypeHumidifier,
		Protocol:    protocolBypassV2,
		Features:    []Feature{FeatureDisplay, FeatureWarmMist, FeatureTimer},
		Modes:       []string{ModeAuto, ModeManual, ModeSleep, ModeHumidity},
		Levels:      []int{1, 2, 3, 4, 5, 6, 7, 8, 9},
		build:       newHumidifierDevice,
	},
	{
		DeviceTypes: []string{"LUH-M101S"},
		ProductType: ProductTypeHumidifier,
		Protocol:    protocolBypassV2,
		Features:    []Feature{FeatureDisplay, FeatureTimer},
		Modes:       []string{ModeAuto, ModeManual, ModeSleep},
		Levels:      []int{1, 2, 3, 4, 5, 6, 7, 8, 9},
		build:       newHumidifierDevice,
	},
	{
		DeviceTypes: []string{"LEH-S601S"},
		ProductType: ProductTypeHumidifier,
		Protocol:    protocolBypassV2,
		Features:    []Feature{FeatureDisplay, FeatureDrying, FeatureTimer},
		Modes:       []string{ModeAuto, ModeManual, ModeSleep, ModeHumidity},
		Levels:      []int{1, 2, 3, 4, 5, 6, 7, 8, 9},
		build:       newHumidifierDevice,
	},
	// Purifiers
	{
		DeviceTypes: []string{"Core200S", "LAP-C201S", "LAP-C202S"},
		ProductType: ProductTypePurifier,
		Protocol:    protocolBypassV2,
		Features:    []Feature{FeatureChildLock, FeatureDisplay, FeatureNightLight, FeatureTimer},
		Modes:       []string{ModeManual, ModeSleep},
		Levels:      []int{1, 2, 3},
		build:       newPurifierDevice,
	},
	{
		DeviceTypes: []string{"Core300S", "LAP-C301S", "LAP-C302S"},
		ProductType: ProductTypePurifier,
		Protocol:    protocolBypassV2,
		Features:    []Feature{FeatureAirQuality, FeatureChildLock, FeatureDisplay, FeatureTimer},
		Modes:       []string{ModeAuto, ModeManual, ModeSleep},
		Levels:      []int{1, 2, 3},
		build:       newPurifierDevice,
	},
	{
		DeviceTypes: []string{"Core400S", "LAP-C401S"},
		ProductType: ProductTypePurifier,
		Protocol:    protocolBypassV2,
		Features:    []Feature{FeatureAirQuality, FeatureChildLock, FeatureDisplay, FeatureTimer},
		Modes:       []string{ModeAuto, ModeManual, ModeSleep},
		Levels:      []int{1, 2, 3, 4},
		build:       newPurifierDevice,
	},
	{
		DeviceTypes: []string{"Core600S", "LAP-C601S"},
		ProductType: ProductTypePurifier,
		Protocol:    protocolBypassV2,
		Features:    []Feature{FeatureAirQuality, FeatureChildLock, FeatureDisplay, FeatureTimer},
		Modes:       []string{ModeAuto, ModeManual, ModeSleep},
		Levels:      []int{1, 2, 3, 4},
		build:       newPurifierDevice,
	},
	{
		DeviceTypes: []string{"LAP-V102S", "Vital100S"},
		ProductType: ProductTypePurifier,
		Protocol:    protocolBypassV2,
		Features:    []Feature{FeatureAirQuality, FeatureChildLock, FeatureDisplay, FeatureTimer},
		Modes:       []string{ModeAuto, ModeManual, ModeSleep, ModePet},
		Levels:      []int{1, 2, 3, 4},
		build:       newPurifierDevice,
	},
	{
		DeviceTypes: []string{"LAP-V201S", "Vital200S"},
		ProductType: ProductTypePurifier,
		Protocol:    protocolBypassV2,
		Features:    []Feature{FeatureAirQuality, FeatureChildLock, FeatureDisplay, FeatureTimer},
		Modes:       []string{ModeAuto, ModeManual, ModeSleep, ModePet},
		Levels:      []int{1, 2, 3, 4},
		build:       newPurifierDevice,
	},
	// Tower fans
	{
		DeviceTypes: []string{"LTF-F422S"},
		ProductType: ProductTypeFan,
		Protocol:    protocolBypassV2,
		Features:    []Feature{FeatureDisplay, FeatureOscillation, FeatureMute, FeatureTimer},
		Modes:       []string{ModeNormal, ModeAuto, ModeAdvancedSleep, ModeTurbo},
		Levels:      []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
		build:       newTowerFanDevice,
	},
	// Air fryers
	{
		DeviceTypes: []string{"CS137-AF", "CS158-AF"},
		ProductType: ProductTypeAirFryer,
		Protocol:    protocolBypassV1,
		build:       newAirFryerDevice,
	},
}

// lookupDeviceConfig finds the registry entry for a model string. Regional
// variants such as "LUH-A602S-WUS" match their base entry by prefix.
// Returns nil for unsupported models.
func lookupDeviceConfig(deviceType string) *DeviceConfig {
	for i := range deviceRegistry {
		for _, t := range deviceRegistry[i].DeviceTypes {
			if deviceType == t {
				return &deviceRegistry[i]
			}
		}
	}
	for i := range deviceRegistry {
		for _, t := range deviceRegistry[i].DeviceTypes {
			if strings.HasPrefix(deviceType, t+"-") {
				return &deviceRegistry[i]
			}
		}
	}
	return nil
}

// SupportedDeviceTypes returns every model string in the registry.
// Useful for diagnostics.
func SupportedDeviceTypes() []string {
	var types []string
	for i := range deviceRegistry {
		types = append(types, deviceRegistry[i].DeviceTypes...)
	}
	return types
}
