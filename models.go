package vesync

// API paths for account and device management calls.
const (
	authByPWDPath   = "/globalPlatform/api/accountAuth/v1/authByPWDOrOTM"
	loginByCodePath = "/user/api/accountManage/v1/loginByAuthorizeCode4Vesync"
	deviceListPath  = "/cloud/v1/deviceManaged/devices"
	firmwarePath    = "/cloud/v2/deviceManaged/getFirmwareUpdateInfoList"
)

// crossRegionCode is the return code asking the client to repeat the login
// exchange against the account's home region.
const crossRegionCode int64 = -11260022

// acceptLanguage is sent on every request.
const acceptLanguage = "en"

// authRequest is the first login step, exchanging the account password for
// an authorization code.
type authRequest struct {
	Email            string `json:"email"`
	Method           string `json:"method"`
	Password         string `json:"password"`
	AcceptLanguage   string `json:"acceptLanguage"`
	AccountID        string `json:"accountID"`
	AuthProtocolType string `json:"authProtocolType"`
	ClientInfo       string `json:"clientInfo"`
	ClientType       string `json:"clientType"`
	ClientVersion    string `json:"clientVersion"`
	DebugMode        bool   `json:"debugMode"`
	OSInfo           string `json:"osInfo"`
	TerminalID       string `json:"terminalId"`
	TimeZone         string `json:"timeZone"`
	Token            string `json:"token"`
	UserCountryCode  string `json:"userCountryCode"`
	AppID            string `json:"appID"`
	SourceAppID      string `json:"sourceAppID"`
	TraceID          string `json:"traceId"`
}

func (c *Client) newAuthRequest() authRequest {
	return authRequest{
		Email:            c.username,
		Method:           "authByPWDOrOTM",
		Password:         hashPassword(c.password),
		AcceptLanguage:   acceptLanguage,
		AuthProtocolType: "generic",
		ClientInfo:       PhoneBrand,
		ClientType:       ClientType,
		ClientVersion:    "VeSync " + AppVersion,
		DebugMode:        c.debugMode,
		OSInfo:           PhoneOS,
		TerminalID:       c.terminalID,
		TimeZone:         c.timeZone,
		UserCountryCode:  c.CountryCode(),
		AppID:            c.appID,
		SourceAppID:      c.appID,
		TraceID:          traceID(),
	}
}

// loginRequest is the second login step, exchanging the authorization code
// for a session token. BizToken and RegionChange are only present on a
// cross-region retry.
type loginRequest struct {
	Method             string `json:"method"`
	AuthorizeCode      string `json:"authorizeCode"`
	AcceptLanguage     string `json:"acceptLanguage"`
	AccountID          string `json:"accountID"`
	ClientInfo         string `json:"clientInfo"`
	ClientType         string `json:"clientType"`
	ClientVersion      string `json:"clientVersion"`
	DebugMode          bool   `json:"debugMode"`
	EmailSubscriptions bool   `json:"emailSubscriptions"`
	OSInfo             string `json:"osInfo"`
	TerminalID         string `json:"terminalId"`
	TimeZone           string `json:"timeZone"`
	Token              string `json:"token"`
	BizToken           string `json:"bizToken,omitempty"`
	RegionChange       string `json:"regionChange,omitempty"`
	UserCountryCode    string `json:"userCountryCode"`
	TraceID            string `json:"traceId"`
}

func (c *Client) newLoginRequest(authorizeCode, bizToken string, regionChange bool) loginRequest {
	req := loginRequest{
		Method:          "loginByAuthorizeCode4Vesync",
		AuthorizeCode:   authorizeCode,
		AcceptLanguage:  acceptLanguage,
		ClientInfo:      PhoneBrand,
		ClientType:      ClientType,
		ClientVersion:   "VeSync " + AppVersion,
		DebugMode:       c.debugMode,
		OSInfo:          PhoneOS,
		TerminalID:      c.terminalID,
		TimeZone:        c.timeZone,
		BizToken:        bizToken,
		UserCountryCode: c.CountryCode(),
		TraceID:         traceID(),
	}
	if regionChange {
		req.RegionChange = "lastRegion"
	}
	return req
}

// deviceListRequest fetches the account's device list.
type deviceListRequest struct {
	Token          string `json:"token"`
	AccountID      string `json:"accountID"`
	TimeZone       string `json:"timeZone"`
	Method         string `json:"method"`
	PageNo         int    `json:"pageNo"`
	PageSize       int    `json:"pageSize"`
	AppVersion     string `json:"appVersion"`
	PhoneBrand     string `json:"phoneBrand"`
	PhoneOS        string `json:"phoneOS"`
	AcceptLanguage string `json:"acceptLanguage"`
	TraceID        string `json:"traceId"`
}

func (c *Client) newDeviceListRequest() deviceListRequest {
	return deviceListRequest{
		Token:          c.Token(),
		AccountID:      c.AccountID(),
		TimeZone:       c.timeZone,
		Method:         "devices",
		PageNo:         1,
		PageSize:       100,
		AppVersion:     AppVersion,
		PhoneBrand:     PhoneBrand,
		PhoneOS:        PhoneOS,
		AcceptLanguage: acceptLanguage,
		TraceID:        traceID(),
	}
}

// firmwareRequest fetches firmware update information for a set of devices.
type firmwareRequest struct {
	AccountID       string   `json:"accountID"`
	TimeZone        string   `json:"timeZone"`
	Token           string   `json:"token"`
	UserCountryCode string   `json:"userCountryCode"`
	CIDList         []string `json:"cidList"`
	AcceptLanguage  string   `json:"acceptLanguage"`
	TraceID         string   `json:"traceId"`
	AppVersion      string   `json:"appVersion"`
	PhoneBrand      string   `json:"phoneBrand"`
	PhoneOS         string   `json:"phoneOS"`
	Method          string   `json:"method"`
	DebugMode       bool     `json:"debugMode"`
}

func (c *Client) newFirmwareRequest(cids []string) firmwareRequest {
	return firmwareRequest{
		AccountID:       c.AccountID(),
		TimeZone:        c.timeZone,
		Token:           c.Token(),
		UserCountryCode: c.CountryCode(),
		CIDList:         cids,
		AcceptLanguage:  acceptLanguage,
		TraceID:         traceID(),
		AppVersion:      AppVersion,
		PhoneBrand:      PhoneBrand,
		PhoneOS:         PhoneOS,
		Method:          "getFirmwareUpdateInfoList",
	}
}
