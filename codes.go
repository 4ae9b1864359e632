package vesync

import "strconv"

// ErrorKind categorizes VeSync API return codes.
//
// Systemic kinds (rate limit, authentication, token, server) always raise
// typed errors out of the transport layer; every other kind is recorded on
// the device's LastResponse and logged, never raised, so a batch update over
// many devices is not aborted by a single offline or faulted device.
type ErrorKind string

// Error kinds for API return codes.
const (
	KindSuccess        ErrorKind = "success"
	KindAuthentication ErrorKind = "auth_error"
	KindRateLimit      ErrorKind = "rate_limit_error"
	KindServerError    ErrorKind = "server_error"
	KindRequestError   ErrorKind = "request_error"
	KindDeviceError    ErrorKind = "device_error"
	KindConfigError    ErrorKind = "config_error"
	KindDeviceOffline  ErrorKind = "device_offline"
	KindUnknown        ErrorKind = "unknown_error"
	KindTokenError     ErrorKind = "token_error"
	KindBadResponse    ErrorKind = "bad_response"
	KindCrossRegion    ErrorKind = "cross_region"
)

// OnlineMark reflects what a response code implies about device
// connectivity. Most codes say nothing; a few explicitly mean the device is
// reachable (a fault was reported by the device itself) or unreachable.
type OnlineMark int

// Connectivity implications of a response code.
const (
	MarkNone OnlineMark = iota
	MarkOnline
	MarkOffline
)

// ResponseInfo describes a classified API return code. It is stored on a
// device as its LastResponse after every call so callers can inspect
// per-device failures that are deliberately not raised as errors.
type ResponseInfo struct {
	// Name is the vendor's symbolic name for the code.
	Name string
	// Kind is the error category, see ErrorKind.
	Kind ErrorKind
	// Message is the canned human-readable message, with the API's own msg
	// field appended in parentheses when present.
	Message string
	// CriticalError marks device faults worth a warning log (short circuit,
	// over-temperature and similar).
	CriticalError bool
	// OperationalError marks codes where the device is connected but the API
	// rejected the operation.
	OperationalError bool
	// Online is what the code implies about device connectivity.
	Online OnlineMark
	// RawResponse holds the decoded response body the code came from.
	// Populated by the response processors, not by Classify.
	RawResponse map[string]any
}

// IsSuccess reports whether the response code was zero.
func (r ResponseInfo) IsSuccess() bool { return r.Kind == KindSuccess }

func successInfo() ResponseInfo {
	return ResponseInfo{Name: "SUCCESS", Kind: KindSuccess, Message: "Success"}
}

func unknownInfo() ResponseInfo {
	return ResponseInfo{Name: "UNKNOWN", Kind: KindUnknown, Message: "Unknown error"}
}

// responseCodes maps every known vendor return code to its descriptor.
// Codes are taken from the VeSync app source. Related sub-codes share a
// "family" entry: the vendor appends three low-order digits to a base code,
// so classification falls back to code/1000*1000 when the exact code is
// absent.
var responseCodes = map[string]ResponseInfo{
	"-11260022": {Name: "CROSS_REGION_ERROR", Kind: KindCrossRegion, Message: "Cross region error"},
	"11":        {Name: "DEVICE_OFFLINE", Kind: KindDeviceOffline, Message: "Device offline", Online: MarkOffline},
	"4041004":   {Name: "DEVICE_OFFLINE", Kind: KindDeviceOffline, Message: "Device offline", Online: MarkOffline},
	"-11203000": {Name: "ACCOUNT_EXIST", Kind: KindAuthentication, Message: "Account already exists"},
	"-11200000": {Name: "ACCOUNT_FORMAT_ERROR", Kind: KindConfigError, Message: "Account format error"},
	"-11202000": {Name: "ACCOUNT_NOT_EXIST", Kind: KindAuthentication, Message: "Account does not exist"},
	"-11300027": {Name: "AIRPURGE_OFFLINE", Kind: KindDeviceOffline, Message: "Device offline", Online: MarkOffline},
	"-16906000": {Name: "REQUEST_TOO_FREQUENT", Kind: KindRateLimit, Message: "Request too frequent", OperationalError: true},
	"-11902000": {Name: "AUTHKEY_NOT_EXIST", Kind: KindConfigError, Message: "Authkey does not exist"},
	"-11900000": {Name: "AUTHKEY_PID_NOT_MATCH", Kind: KindDeviceError, Message: "Authkey PID mismatch"},
	"-11504000": {Name: "AWAY_MAX", Kind: KindConfigError, Message: "Away maximum reached"},
	"11014000":  {Name: "BYPASS_AIRPURIFIER_E2", Kind: KindDeviceError, Message: "Air Purifier E2 error", CriticalError: true, Online: MarkOnline},
	"11802000":  {Name: "BYPASS_AIRPURIFIER_MOTOR_ABNORMAL", Kind: KindDeviceError, Message: "Air Purifier motor error", CriticalError: true, Online: MarkOnline},
	"11504000":  {Name: "BYPASS_AWAY_MAX", Kind: KindConfigError, Message: "Away maximum reached"},
	"11509000":  {Name: "BYPASS_AWAY_NOT_EXIST", Kind: KindConfigError, Message: "Away does not exist"},
	"11908000":  {Name: "BYPASS_COOK_TIMEOUT", Kind: KindDeviceError, Message: "Cook timeout error"},
	"11909000":  {Name: "BYPASS_SMART_STOP", Kind: KindDeviceError, Message: "Smart stop error", Online: MarkOnline},
	"11910000":  {Name: "BYPASS_LEFT_ZONE_COOKING", Kind: KindDeviceError, Message: "Left zone cooking error", Online: MarkOnline},
	"11911000":  {Name: "BYPASS_RIGHT_ZONE_COOKING", Kind: KindDeviceError, Message: "Right zone cooking error", Online: MarkOnline},
	"11912000":  {Name: "BYPASS_ALL_ZONE_COOKING", Kind: KindDeviceError, Message: "All zone cooking error", Online: MarkOnline},
	"11916000":  {Name: "BYPASS_NTC_RIGHT_TOP_SHORT", Kind: KindDeviceError, Message: "Right top short error", CriticalError: true, Online: MarkOnline},
	"11917000":  {Name: "BYPASS_NTC_RIGHT_TOP_OPEN", Kind: KindDeviceError, Message: "Right top open error", CriticalError: true, Online: MarkOnline},
	"11918000":  {Name: "BYPASS_NTC_BOTTOM_SHORT", Kind: KindDeviceError, Message: "Bottom short error", CriticalError: true, Online: MarkOnline},
	"11919000":  {Name: "BYPASS_NTC_BOTTOM_OPEN", Kind: KindDeviceError, Message: "Bottom open error", CriticalError: true, Online: MarkOnline},
	"11924000":  {Name: "BYPASS_RIGHT_TEMP_FAULT", Kind: KindDeviceError, Message: "Right temperature fault", CriticalError: true, Online: MarkOnline},
	"11925000":  {Name: "BYPASS_ZONE_2_MOTOR_ABNORMAL", Kind: KindDeviceError, Message: "Zone 2 motor error", CriticalError: true, Online: MarkOnline},
	"11021000":  {Name: "BYPASS_DEVICE_END", Kind: KindDeviceError, Message: "Device end error", CriticalError: true, Online: MarkOnline},
	"11012000":  {Name: "BYPASS_DEVICE_RUNNING", Kind: KindDeviceError, Message: "Device running error", CriticalError: true, Online: MarkOnline},
	"11020000":  {Name: "BYPASS_DEVICE_STOP", Kind: KindDeviceError, Message: "Device stop error", CriticalError: true, Online: MarkOnline},
	"11901000":  {Name: "BYPASS_DOOR_OPEN", Kind: KindDeviceError, Message: "Door open error", CriticalError: true, Online: MarkOnline},
	"11006000":  {Name: "BYPASS_E1_OPEN", Kind: KindDeviceError, Message: "Open circuit error", CriticalError: true, Online: MarkOnline},
	"11007000":  {Name: "BYPASS_E2_SHORT", Kind: KindDeviceError, Message: "Short circuit error", CriticalError: true, Online: MarkOnline},
	"11015000":  {Name: "BYPASS_E3_WARM", Kind: KindDeviceError, Message: "Warm error", CriticalError: true, Online: MarkOnline},
	"11018000":  {Name: "BYPASS_SET_MIST_LEVEL", Kind: KindDeviceError, Message: "Cannot set mist level error", Online: MarkOnline},
	"11019000":  {Name: "BYPASS_E6_VOLTAGE_LOW", Kind: KindDeviceError, Message: "Low voltage error", CriticalError: true, Online: MarkOnline},
	"11013000":  {Name: "BYPASS_E7_VOLTAGE", Kind: KindDeviceError, Message: "Voltage error", CriticalError: true, Online: MarkOnline},
	"11607000":  {Name: "BYPASS_HUMIDIFIER_ERROR_CONNECT_MSG", Kind: KindDeviceError, Message: "Humidifier connect message error"},
	"11317000":  {Name: "BYPASS_DIMMER_NCT", Kind: KindDeviceError, Message: "Dimmer NCT error", CriticalError: true, Online: MarkOnline},
	"11608000":  {Name: "BYPASS_HUMIDIFIER_ERROR_WATER_PUMP", Kind: KindDeviceError, Message: "Humidifier water pump error", CriticalError: true, Online: MarkOnline},
	"11609000":  {Name: "BYPASS_HUMIDIFIER_ERROR_FAN_MOTOR", Kind: KindDeviceError, Message: "Humidifier fan motor error", CriticalError: true, Online: MarkOnline},
	"11601000":  {Name: "BYPASS_HUMIDIFIER_ERROR_DRY_BURNING", Kind: KindDeviceError, Message: "Dry burning error", CriticalError: true, Online: MarkOnline},
	"11602000":  {Name: "BYPASS_HUMIDIFIER_ERROR_PTC", Kind: KindDeviceError, Message: "Humidifier PTC error", CriticalError: true, Online: MarkOnline},
	"11603000":  {Name: "BYPASS_HUMIDIFIER_ERROR_WARM_HIGH", Kind: KindDeviceError, Message: "Humidifier warm high error", CriticalError: true, Online: MarkOnline},
	"11604000":  {Name: "BYPASS_HUMIDIFIER_ERROR_WATER", Kind: KindDeviceError, Message: "Humidifier water error", CriticalError: true, Online: MarkOnline},
	"11907000":  {Name: "BYPASS_LOW_WATER", Kind: KindDeviceError, Message: "Low water error", CriticalError: true, Online: MarkOnline},
	"11028000":  {Name: "BYPASS_MOTOR_OPEN", Kind: KindDeviceError, Message: "Motor open error", CriticalError: true, Online: MarkOnline},
	"11017000":  {Name: "BYPASS_NOT_SUPPORTED", Kind: KindRequestError, Message: "Not supported error"},
	"11905000":  {Name: "BYPASS_NO_POT", Kind: KindDeviceError, Message: "No pot error", CriticalError: true, Online: MarkOnline},
	"12001000":  {Name: "BYPASS_LACK_FOOD", Kind: KindDeviceError, Message: "Lack of food error", CriticalError: true, Online: MarkOnline},
	"12002000":  {Name: "BYPASS_JAM_FOOD", Kind: KindDeviceError, Message: "Jam food error", CriticalError: true, Online: MarkOnline},
	"12003000":  {Name: "BYPASS_BLOCK_FOOD", Kind: KindDeviceError, Message: "Block food error", CriticalError: true, Online: MarkOnline},
	"12004000":  {Name: "BYPASS_PUMP_FAIL", Kind: KindDeviceError, Message: "Pump failure error", CriticalError: true, Online: MarkOnline},
	"12005000":  {Name: "BYPASS_CALI_FAIL", Kind: KindDeviceError, Message: "Calibration failure error", CriticalError: true, Online: MarkOnline},
	"11611000":  {Name: "BYPASS_FILTER_TRAY_ERROR", Kind: KindDeviceError, Message: "Filter tray error", CriticalError: true, Online: MarkOnline},
	"11610000":  {Name: "BYPASS_VALUE_ERROR", Kind: KindDeviceError, Message: "Value error", CriticalError: true, Online: MarkOnline},
	"11022000":  {Name: "BYPASS_CANNOT_SET_LEVEL", Kind: KindDeviceError, Message: "Cannot set level error", Online: MarkOnline},
	"11023000":  {Name: "BYPASS_NTC_BOTTOM_OPEN", Kind: KindDeviceError, Message: "NTC bottom open error", CriticalError: true, Online: MarkOnline},
	"11024000":  {Name: "BYPASS_NTC_BOTTOM_SHORT", Kind: KindDeviceError, Message: "NTC bottom short error", CriticalError: true, Online: MarkOnline},
	"11026000":  {Name: "BYPASS_NTC_TOP_OPEN", Kind: KindDeviceError, Message: "NTC top open error", CriticalError: true, Online: MarkOnline},
	"11025000":  {Name: "BYPASS_NTC_TOP_SHORT", Kind: KindDeviceError, Message: "NTC top short error", CriticalError: true, Online: MarkOnline},
	"11027000":  {Name: "BYPASS_OPEN_HEAT_PIPE_OR_OPEN_FUSE", Kind: KindDeviceError, Message: "Open heat pipe or fuse error", CriticalError: true, Online: MarkOnline},
	"11906000":  {Name: "BYPASS_OVER_HEATED", Kind: KindDeviceError, Message: "Overheated error", CriticalError: true, Online: MarkOnline},
	"11000000":  {Name: "BYPASS_PARAMETER_INVALID", Kind: KindRequestError, Message: "Invalid bypass parameter"},
	"11510000":  {Name: "BYPASS_SCHEDULE_CONFLICT", Kind: KindConfigError, Message: "Schedule conflict"},
	"11502000":  {Name: "BYPASS_SCHEDULE_MAX", Kind: KindConfigError, Message: "Maximum number of schedules reached"},
	"11507000":  {Name: "BYPASS_SCHEDULE_NOT_EXIST", Kind: KindConfigError, Message: "Schedule does not exist"},
	"11503000":  {Name: "TIMER_MAX", Kind: KindConfigError, Message: "Maximum number of timers reached"},
	"11508000":  {Name: "TIMER_NOT_EXIST", Kind: KindConfigError, Message: "Timer does not exist"},
	"11605000":  {Name: "BYPASS_WATER_LOCK", Kind: KindDeviceError, Message: "Water lock error", CriticalError: true, Online: MarkOnline},
	"11029000":  {Name: "BYPASS_WIFI_ERROR", Kind: KindDeviceError, Message: "WiFi error"},
	"11902000":  {Name: "BY_PASS_ERROR_COOKING_158", Kind: KindDeviceError, Message: "Error setting cook mode, air fryer is already cooking", Online: MarkOnline},
	"11035000":  {Name: "BYPASS_MOTOR_ABNORMAL_ERROR", Kind: KindDeviceError, Message: "Motor abnormal error", CriticalError: true, Online: MarkOnline},
	"11903000":  {Name: "BY_PASS_ERROR_NOT_COOK_158", Kind: KindDeviceError, Message: "Error pausing, air fryer is not cooking", Online: MarkOnline},
	"-12001000": {Name: "CONFIGKEY_EXPIRED", Kind: KindConfigError, Message: "Configkey expired"},
	"-12000000": {Name: "CONFIGKEY_NOT_EXIST", Kind: KindConfigError, Message: "Configkey does not exist"},
	"-11305000": {Name: "CONFIG_MODULE_NOT_EXIST", Kind: KindRequestError, Message: "Config module does not exist"},
	"-11100000": {Name: "DATABASE_FAILED", Kind: KindServerError, Message: "Database error"},
	"-11101000": {Name: "DATABASE_FAILED_ERROR", Kind: KindServerError, Message: "Database error"},
	"-11306000": {Name: "DEVICE_BOUND", Kind: KindConfigError, Message: "Device already associated with another account"},
	"-11301000": {Name: "DEVICE_NOT_EXIST", Kind: KindConfigError, Message: "Device does not exist", Online: MarkOffline},
	"-11300000": {Name: "DEVICE_OFFLINE", Kind: KindDeviceOffline, Message: "Device offline", Online: MarkOffline},
	"-11302000": {Name: "DEVICE_TIMEOUT", Kind: KindDeviceError, Message: "Device timeout", Online: MarkOffline},
	"-11304000": {Name: "DEVICE_TIMEZONE_DIFF", Kind: KindConfigError, Message: "Device timezone difference"},
	"-11303000": {Name: "FIRMWARE_LATEST", Kind: KindConfigError, Message: "No firmware update available"},
	"-11102000": {Name: "INTERNAL_ERROR", Kind: KindServerError, Message: "Internal server error"},
	"-11004000": {Name: "METHOD_NOT_FOUND", Kind: KindRequestError, Message: "Method not found"},
	"-11107000": {Name: "MONGODB_ERROR", Kind: KindServerError, Message: "MongoDB error"},
	"-11105000": {Name: "MYSQL_ERROR", Kind: KindServerError, Message: "MySQL error"},
	"88888888":  {Name: "NETWORK_DISABLE", Kind: KindServerError, Message: "Network disabled"},
	"77777777":  {Name: "NETWORK_TIMEOUT", Kind: KindServerError, Message: "Network timeout"},
	"4031005":   {Name: "NO_PERMISSION_7A", Kind: KindDeviceError, Message: "No 7A Permissions"},
	"-11201000": {Name: "PASSWORD_ERROR", Kind: KindAuthentication, Message: "Invalid password"},
	"-11901000": {Name: "PID_NOT_EXIST", Kind: KindDeviceError, Message: "PID does not exist"},
	"-11106000": {Name: "REDIS_ERROR", Kind: KindServerError, Message: "Redis error"},
	"-11003000": {Name: "REQUEST_HIGH", Kind: KindRateLimit, Message: "Rate limiting error"},
	"-11005000": {Name: "RESOURCE_NOT_EXIST", Kind: KindRequestError, Message: "No device with ID found", Online: MarkOffline},
	"-11108000": {Name: "S3_ERROR", Kind: KindServerError, Message: "S3 error"},
	"-11502000": {Name: "SCHEDULE_MAX", Kind: KindConfigError, Message: "Maximum number of schedules reached"},
	"-11103000": {Name: "SERVER_BUSY", Kind: KindServerError, Message: "Server busy"},
	"-11104000": {Name: "SERVER_TIMEOUT", Kind: KindServerError, Message: "Server timeout"},
	"-11501000": {Name: "TIMER_CONFLICT", Kind: KindDeviceError, Message: "Timer conflict"},
	"-11503000": {Name: "TIMER_MAX", Kind: KindDeviceError, Message: "Maximum number of timers reached"},
	"-11500000": {Name: "TIMER_NOT_EXIST", Kind: KindDeviceError, Message: "Timer does not exist"},
	"-11001000": {Name: "TOKEN_EXPIRED", Kind: KindTokenError, Message: "Invalid token"},
	"-999999999": {Name: "UNKNOWN", Kind: KindServerError, Message: "Unknown error"},
	"-11307000": {Name: "UUID_NOT_EXIST", Kind: KindDeviceError, Message: "Device UUID not found", Online: MarkOffline},
	"12102000":  {Name: "TEM_SENOR_ERROR", Kind: KindDeviceError, Message: "Temperature sensor error", CriticalError: true, Online: MarkOnline},
	"12103000":  {Name: "HUM_SENOR_ERROR", Kind: KindDeviceError, Message: "Humidity sensor error", CriticalError: true, Online: MarkOnline},
	"12101000":  {Name: "SENSOR_ERROR", Kind: KindDeviceError, Message: "Sensor error", CriticalError: true, Online: MarkOnline},
	"11005000":  {Name: "BYPASS_DEVICE_IS_OFF", Kind: KindDeviceError, Message: "Device is off", CriticalError: true, Online: MarkOnline},
}

// Classify returns the descriptor for a numeric API return code.
//
// Lookup order: exact match, then the code's family entry (the code with its
// three low-order digits truncated), then a generic UNKNOWN descriptor. Code
// 0 always classifies as SUCCESS. The returned value is a copy; mutating it
// (for example appending the API's msg field) never corrupts the table.
func Classify(code int64) ResponseInfo {
	if code == 0 {
		return successInfo()
	}
	if info, ok := responseCodes[strconv.FormatInt(code, 10)]; ok {
		return info
	}
	family := code / 1000 * 1000
	if info, ok := responseCodes[strconv.FormatInt(family, 10)]; ok {
		return info
	}
	return unknownInfo()
}

// ClassifyCode classifies a return code given as a string. Non-numeric
// strings that are not exact table entries classify as UNKNOWN.
func ClassifyCode(code string) ResponseInfo {
	if code == "0" {
		return successInfo()
	}
	if info, ok := responseCodes[code]; ok {
		return info
	}
	n, err := strconv.ParseInt(code, 10, 64)
	if err != nil {
		return unknownInfo()
	}
	return Classify(n)
}

// IsCriticalError reports whether a return code is a critical device fault
// that warrants a warning to the user, such as a short or voltage error.
func IsCriticalError(code int64) bool {
	return Classify(code).CriticalError
}
