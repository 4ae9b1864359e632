package vesync

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	// BypassHeaderUserAgent is the User-Agent sent on device calls.
	BypassHeaderUserAgent = "okhttp/3.12.1"

	bypassV1Base = "/cloud/v1/deviceManaged/"
	bypassV2Path = "/cloud/v2/deviceManaged/bypassV2"
)

// bypassHeader returns the headers used on device management calls.
func (c *Client) bypassHeader() http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json; charset=UTF-8")
	h.Set("User-Agent", BypassHeaderUserAgent)
	h.Set("accept-language", acceptLanguage)
	c.mu.RLock()
	h.Set("accountId", c.creds.AccountID)
	h.Set("tk", c.creds.Token)
	c.mu.RUnlock()
	h.Set("appVersion", AppVersion)
	h.Set("tz", c.timeZone)
	return h
}

// bypassV1Body builds the flat request body used by the legacy V1 device
// endpoints. Per-call fields are merged over the session fields, so a call
// can override any default.
func (c *Client) bypassV1Body(d *baseDevice, method string, extra map[string]any) map[string]any {
	body := map[string]any{
		"acceptLanguage":  acceptLanguage,
		"accountID":       c.AccountID(),
		"appVersion":      AppVersion,
		"cid":             d.cid,
		"configModule":    d.configModule,
		"debugMode":       c.debugMode,
		"method":          method,
		"phoneBrand":      PhoneBrand,
		"phoneOS":         PhoneOS,
		"traceId":         traceID(),
		"timeZone":        c.timeZone,
		"token":           c.Token(),
		"userCountryCode": c.CountryCode(),
		"uuid":            d.uuid,
	}
	for k, v := range extra {
		body[k] = v
	}
	return body
}

// callBypassV1 posts to a legacy V1 device endpoint and processes the
// response envelope. The endpoint is the path segment after
// /cloud/v1/deviceManaged/, and method defaults to the endpoint name.
//
// The returned ok is false when the device reported a failure; the
// classified response is recorded on the device for inspection and never
// returned as an error. The error return is reserved for transport and
// systemic API failures.
func (c *Client) callBypassV1(ctx context.Context, d *baseDevice, endpoint, method string, extra map[string]any) (json.RawMessage, bool, error) {
	if !c.Enabled() {
		return nil, false, ErrNotLoggedIn
	}
	if method == "" {
		method = endpoint
	}
	body := c.bypassV1Body(d, method, extra)
	resp, _, err := c.call(ctx, http.MethodPost, bypassV1Base+endpoint, body, c.bypassHeader())
	if err != nil {
		return nil, false, err
	}
	result, ok := c.processResponse(d, method, resp)
	return result, ok, nil
}

// bypassV2Payload is the inner payload of a V2 device request.
type bypassV2Payload struct {
	Data   any    `json:"data"`
	Method string `json:"method"`
	Source string `json:"source"`
}

// bypassV2Request is the envelope posted to the bypassV2 endpoint.
type bypassV2Request struct {
	AcceptLanguage  string          `json:"acceptLanguage"`
	AccountID       string          `json:"accountID"`
	AppVersion      string          `json:"appVersion"`
	CID             string          `json:"cid"`
	ConfigModule    string          `json:"configModule"`
	DebugMode       bool            `json:"debugMode"`
	Method          string          `json:"method"`
	PhoneBrand      string          `json:"phoneBrand"`
	PhoneOS         string          `json:"phoneOS"`
	TraceID         string          `json:"traceId"`
	TimeZone        string          `json:"timeZone"`
	Token           string          `json:"token"`
	UserCountryCode string          `json:"userCountryCode"`
	DeviceRegion    string          `json:"deviceRegion"`
	Payload         bypassV2Payload `json:"payload"`
}

// callBypassV2 posts a payload method to the bypassV2 endpoint. Data must
// marshal to a JSON object; use an empty map for methods without arguments.
// Result handling follows callBypassV1.
func (c *Client) callBypassV2(ctx context.Context, d *baseDevice, payloadMethod string, data any) (json.RawMessage, bool, error) {
	if !c.Enabled() {
		return nil, false, ErrNotLoggedIn
	}
	req := bypassV2Request{
		AcceptLanguage:  acceptLanguage,
		AccountID:       c.AccountID(),
		AppVersion:      AppVersion,
		CID:             d.cid,
		ConfigModule:    d.configModule,
		DebugMode:       c.debugMode,
		Method:          "bypassV2",
		PhoneBrand:      PhoneBrand,
		PhoneOS:         PhoneOS,
		TraceID:         traceID(),
		TimeZone:        c.timeZone,
		Token:           c.Token(),
		UserCountryCode: c.CountryCode(),
		DeviceRegion:    d.deviceRegion,
		Payload: bypassV2Payload{
			Data:   data,
			Method: payloadMethod,
			Source: "APP",
		},
	}
	resp, _, err := c.call(ctx, http.MethodPost, bypassV2Path, req, c.bypassHeader())
	if err != nil {
		return nil, false, err
	}
	result, ok := c.processResponse(d, payloadMethod, resp)
	return result, ok, nil
}

// processResponse classifies a device response envelope, records it on the
// device and returns the raw result field. A failed call returns ok false;
// the caller finds the reason in the device's LastResponse.
func (c *Client) processResponse(d *baseDevice, method string, body []byte) (json.RawMessage, bool) {
	var envelope struct {
		Code   int64           `json:"code"`
		Msg    string          `json:"msg"`
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		info := ResponseInfo{Name: "BAD_RESPONSE", Kind: KindBadResponse, Message: "Undecodable response body"}
		d.setLastResponse(info)
		c.logger.Warn().Err(err).
			Str("device", d.deviceName).
			Str("method", method).
			Msg("undecodable device response")
		return nil, false
	}

	info := Classify(envelope.Code)
	if envelope.Msg != "" {
		info.Message = fmt.Sprintf("%s (%s)", info.Message, envelope.Msg)
	}
	var raw map[string]any
	if json.Unmarshal(body, &raw) == nil {
		info.RawResponse = raw
	}
	d.setLastResponse(info)

	if envelope.Code != 0 {
		evt := c.logger.Info()
		if info.CriticalError {
			evt = c.logger.Warn()
		}
		evt.
			Str("device", d.deviceName).
			Str("method", method).
			Int64("code", envelope.Code).
			Str("name", info.Name).
			Str("kind", string(info.Kind)).
			Msg("device call failed")
		return nil, false
	}
	return envelope.Result, true
}

// decodeV2Result unpacks the double-nested result of a bypassV2 status
// call. The outer result carries its own code; a non-zero inner code is a
// device failure even when the envelope reported success.
func decodeV2Result[T any](d *baseDevice, method string, result json.RawMessage) (*T, bool) {
	c := d.client

	var inner struct {
		Code   int64           `json:"code"`
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(result, &inner); err != nil {
		info := ResponseInfo{Name: "BAD_RESPONSE", Kind: KindBadResponse, Message: "Undecodable inner result"}
		d.setLastResponse(info)
		c.logger.Warn().Err(err).
			Str("device", d.deviceName).
			Str("method", method).
			Msg("undecodable inner result")
		return nil, false
	}

	if inner.Code != 0 {
		info := Classify(inner.Code)
		d.setLastResponse(info)
		c.logger.Info().
			Str("device", d.deviceName).
			Str("method", method).
			Int64("code", inner.Code).
			Str("name", info.Name).
			Msg("device reported failure")
		return nil, false
	}

	out := new(T)
	if len(inner.Result) > 0 {
		if err := json.Unmarshal(inner.Result, out); err != nil {
			info := ResponseInfo{Name: "BAD_RESPONSE", Kind: KindBadResponse, Message: "Undecodable device state"}
			d.setLastResponse(info)
			c.logger.Warn().Err(err).
				Str("device", d.deviceName).
				Str("method", method).
				Msg("undecodable device state")
			return nil, false
		}
	}
	return out, true
}
