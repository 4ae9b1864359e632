package vesync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// BaseURLUS is the VeSync API base URL for the US region.
	BaseURLUS = "https://smartapi.vesync.com"

	// BaseURLEU is the VeSync API base URL for the EU region.
	BaseURLEU = "https://smartapi.vesync.eu"

	// DefaultTimeout is the default HTTP request timeout. The VeSync cloud
	// answers quickly or not at all, so this is intentionally short.
	DefaultTimeout = 8 * time.Second

	// DefaultTimeZone is used when no timezone option is given.
	DefaultTimeZone = "America/New_York"

	// AppVersion is the VeSync app version reported in requests.
	AppVersion = "5.6.60"

	// PhoneBrand is the device brand reported in requests.
	PhoneBrand = "SM N9005"

	// PhoneOS is the device OS reported in requests.
	PhoneOS = "Android"

	// MobileID is the mobile identifier reported in requests.
	MobileID = "1234567890123456"

	// UserType identifies the account type in authentication requests.
	UserType = "1"

	// ClientType identifies the client application in authentication requests.
	ClientType = "vesyncApp"

	// DefaultRegion is the region assumed before the first login.
	DefaultRegion = RegionUS
)

// defaultNonEUCountries lists country codes served by the US endpoint.
// Every other country is routed to the EU endpoint.
var defaultNonEUCountries = []string{"US", "CA", "MX", "JP"}

// Client is a VeSync cloud API client. Create one with NewClient, then call
// Login before any device operation.
type Client struct {
	username   string
	password   string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger

	timeZone  string
	debugMode bool
	credsPath string
	nonEU     map[string]bool

	terminalID string
	appID      string

	mu        sync.RWMutex
	creds     Credentials
	enabled   bool
	credsFile string

	devices *DeviceContainer
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL, overriding region-based selection.
// Useful for testing against a local server.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP request timeout.
// This option can be applied in any order relative to other options.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if c.httpClient == nil {
			c.httpClient = &http.Client{}
		}
		c.httpClient.Timeout = timeout
	}
}

// WithLogger sets the structured logger used by the client. The default
// logger discards all output.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeZone sets the Olson timezone name reported to the API,
// for example "Europe/Berlin".
func WithTimeZone(tz string) Option {
	return func(c *Client) {
		c.timeZone = tz
	}
}

// WithCredentialsPath sets an explicit path for the saved credential file,
// replacing the default probe of $HOME and the working directory.
func WithCredentialsPath(path string) Option {
	return func(c *Client) {
		c.credsPath = path
	}
}

// WithNonEUCountries replaces the set of country codes routed to the US
// endpoint. All other countries use the EU endpoint.
func WithNonEUCountries(codes ...string) Option {
	return func(c *Client) {
		c.nonEU = make(map[string]bool, len(codes))
		for _, code := range codes {
			c.nonEU[strings.ToUpper(code)] = true
		}
	}
}

// WithDebugMode enables verbose request and response logging.
func WithDebugMode() Option {
	return func(c *Client) {
		c.debugMode = true
	}
}

// NewClient creates a new VeSync API client for the given account.
// Returns ErrEmptyUsername or ErrEmptyPassword on blank credentials.
func NewClient(username, password string, opts ...Option) (*Client, error) {
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if password == "" {
		return nil, ErrEmptyPassword
	}

	c := &Client{
		username: username,
		password: password,
		logger:   zerolog.Nop(),
		timeZone: DefaultTimeZone,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		terminalID: newTerminalID(),
		appID:      newAppID(),
		creds:      Credentials{CountryCode: "US", Region: DefaultRegion},
	}
	c.devices = newDeviceContainer(c)

	for _, opt := range opts {
		opt(c)
	}

	if c.nonEU == nil {
		c.nonEU = make(map[string]bool, len(defaultNonEUCountries))
		for _, code := range defaultNonEUCountries {
			c.nonEU[code] = true
		}
	}

	return c, nil
}

// newTerminalID builds the per-install terminal identifier the app sends,
// a "2" prefix followed by a UUID with the dashes stripped.
func newTerminalID() string {
	return "2" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// newAppID builds a short random app identifier.
func newAppID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Devices returns the client's device container. It is empty until
// GetDevices has been called.
func (c *Client) Devices() *DeviceContainer {
	return c.devices
}

// Enabled reports whether the client holds a session token.
func (c *Client) Enabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.enabled
}

// Token returns the current session token, or an empty string before login.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.creds.Token
}

// AccountID returns the account identifier, or an empty string before login.
func (c *Client) AccountID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.creds.AccountID
}

// CountryCode returns the account's country code.
func (c *Client) CountryCode() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.creds.CountryCode
}

// Region returns the API region the client is routed to.
func (c *Client) Region() Region {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.creds.Region
}

// TimeZone returns the timezone name the client reports to the API.
func (c *Client) TimeZone() string {
	return c.timeZone
}

// apiBaseURL returns the endpoint for the client's current region. An
// explicit WithBaseURL override always wins.
func (c *Client) apiBaseURL() string {
	if c.baseURL != "" {
		return c.baseURL
	}
	if c.Region() == RegionEU {
		return BaseURLEU
	}
	return BaseURLUS
}

// call performs a single HTTP request against the VeSync API and returns the
// raw response body and status code. There are no automatic retries; every
// call maps to exactly one request.
//
// A non-200 status returns an APIStatusError. A 200 response whose envelope
// carries a systemic error code (rate limit, authentication, token, server)
// returns the matching typed error; all other codes are left in the body for
// the caller to process.
func (c *Client) call(ctx context.Context, method, path string, body any, header http.Header) ([]byte, int, error) {
	url := c.apiBaseURL() + path

	var reqBody io.Reader
	var reqData []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqData = data
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	if header != nil {
		req.Header = header.Clone()
	}
	if req.Header.Get("Content-Type") == "" && body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.debugMode {
		c.logger.Debug().
			Str("method", method).
			Str("url", url).
			Str("body", truncatePreview(reqData)).
			Msg("api request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}

	if c.debugMode {
		c.logger.Debug().
			Int("status", resp.StatusCode).
			Str("body", truncatePreview(respBody)).
			Msg("api response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, &APIStatusError{
			StatusCode: resp.StatusCode,
			Body:       truncatePreview(respBody),
		}
	}

	if err := c.checkEnvelope(respBody); err != nil {
		return respBody, resp.StatusCode, err
	}

	return respBody, resp.StatusCode, nil
}

// checkEnvelope peeks at the response code and raises typed errors for the
// systemic kinds. Device-level codes are not errors here; response
// processors record them on the device instead.
func (c *Client) checkEnvelope(body []byte) error {
	var envelope struct {
		Code  *int64 `json:"code"`
		Msg   string `json:"msg"`
		Error *struct {
			Code *int64 `json:"code"`
			Msg  string `json:"msg"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil
	}
	// Some endpoints nest the code under an error object.
	if envelope.Code == nil && envelope.Error != nil {
		envelope.Code = envelope.Error.Code
		if envelope.Msg == "" {
			envelope.Msg = envelope.Error.Msg
		}
	}
	if envelope.Code == nil {
		return nil
	}

	code := *envelope.Code
	if code == 0 {
		return nil
	}

	info := Classify(code)
	if envelope.Msg != "" {
		info.Message = fmt.Sprintf("%s (%s)", info.Message, envelope.Msg)
	}

	if err := errorForResponse(code, info); err != nil {
		c.logger.Error().
			Int64("code", code).
			Str("name", info.Name).
			Str("kind", string(info.Kind)).
			Msg("api error")
		return err
	}
	return nil
}

// post performs a POST request with default headers.
func (c *Client) post(ctx context.Context, path string, body any) ([]byte, int, error) {
	return c.call(ctx, http.MethodPost, path, body, c.defaultHeader())
}

// defaultHeader returns the headers used on authentication and device list
// requests.
func (c *Client) defaultHeader() http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("User-Agent", BypassHeaderUserAgent)
	c.mu.RLock()
	if c.creds.Token != "" {
		h.Set("tk", c.creds.Token)
		h.Set("accountid", c.creds.AccountID)
	}
	c.mu.RUnlock()
	h.Set("tz", c.timeZone)
	return h
}
