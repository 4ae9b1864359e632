package vesync

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Region selects which VeSync API endpoint a client talks to.
type Region string

// API regions.
const (
	RegionUS Region = "US"
	RegionEU Region = "EU"
)

// credentialFileName is the saved session file probed in $HOME and the
// working directory.
const credentialFileName = ".vesync_auth"

// maxLoginAttempts bounds the cross-region login loop. The API redirects at
// most once in practice; anything beyond a few hops is a server fault.
const maxLoginAttempts = 3

// Credentials holds a VeSync session. Region is derived from CountryCode
// and is not part of the saved file.
type Credentials struct {
	Token       string `json:"token"`
	AccountID   string `json:"account_id"`
	CountryCode string `json:"country_code"`
	Region      Region `json:"-"`
}

// IsAuthenticated reports whether the credentials carry a usable session.
func (c Credentials) IsAuthenticated() bool {
	return c.Token != "" && c.AccountID != ""
}

// regionForCountry maps a country code to an API region using the client's
// non-EU country set.
func (c *Client) regionForCountry(countryCode string) Region {
	if c.nonEU[strings.ToUpper(countryCode)] {
		return RegionUS
	}
	return RegionEU
}

// hashPassword returns the MD5 hex digest the API expects for passwords.
func hashPassword(password string) string {
	sum := md5.Sum([]byte(password))
	return hex.EncodeToString(sum[:])
}

// traceID returns the per-request trace identifier, a Unix timestamp.
func traceID() string {
	return strconv.FormatInt(time.Now().Unix(), 10)
}

// Login establishes a session. Saved credentials from a previous run are
// used when present; otherwise the client authenticates against the API and
// persists the new session.
//
// Authentication is a two-step handshake: the account password is exchanged
// for an authorization code, and the code is exchanged for a session token.
// When the account belongs to a different region the API answers the second
// step with a cross-region code and a relay token; the client updates its
// region and repeats the exchange, bounded by maxLoginAttempts.
func (c *Client) Login(ctx context.Context) error {
	if c.Enabled() {
		return nil
	}

	if c.loadCredentialFile() {
		c.logger.Debug().Msg("using saved credentials")
		return nil
	}

	if err := c.authenticate(ctx); err != nil {
		return err
	}
	c.saveCredentialFile()
	return nil
}

// Reauthenticate discards the current session, including any saved
// credential file, and performs a fresh login.
func (c *Client) Reauthenticate(ctx context.Context) error {
	c.ClearCredentials()
	if err := c.authenticate(ctx); err != nil {
		return err
	}
	c.saveCredentialFile()
	return nil
}

// SetCredentials installs a session obtained elsewhere, skipping the login
// handshake. The region is recomputed from the country code.
func (c *Client) SetCredentials(token, accountID, countryCode string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.creds = Credentials{
		Token:       token,
		AccountID:   accountID,
		CountryCode: countryCode,
		Region:      c.regionForCountry(countryCode),
	}
	c.enabled = true
}

// ClearCredentials forgets the session and deletes the credential file it
// was loaded from or saved to. Safe to call repeatedly.
func (c *Client) ClearCredentials() {
	c.mu.Lock()
	file := c.credsFile
	c.creds = Credentials{CountryCode: "US", Region: DefaultRegion}
	c.enabled = false
	c.credsFile = ""
	c.mu.Unlock()

	if file != "" {
		if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
			c.logger.Warn().Err(err).Str("path", file).Msg("failed to remove credential file")
		}
	}
}

// authenticate runs the password handshake and installs the resulting
// session.
func (c *Client) authenticate(ctx context.Context) error {
	authorizeCode, err := c.requestAuthorizeCode(ctx)
	if err != nil {
		return err
	}

	var bizToken string
	seenBizTokens := map[string]bool{}

	for attempt := 0; attempt < maxLoginAttempts; attempt++ {
		result, crossRegion, err := c.exchangeAuthorizeCode(ctx, authorizeCode, bizToken, attempt > 0)
		if err != nil {
			return err
		}

		if !crossRegion {
			c.mu.Lock()
			c.creds = Credentials{
				Token:       result.Token,
				AccountID:   result.AccountID,
				CountryCode: result.CountryCode,
				Region:      c.regionForCountry(result.CountryCode),
			}
			c.enabled = true
			c.mu.Unlock()
			c.logger.Info().Str("region", string(c.Region())).Msg("logged in")
			return nil
		}

		// Region redirect: adopt the reported country so the next exchange
		// hits the right endpoint, and carry the relay token along.
		if result.BizToken == "" || seenBizTokens[result.BizToken] {
			return &LoginError{Code: crossRegionCode, Message: "cross region login loop"}
		}
		seenBizTokens[result.BizToken] = true
		bizToken = result.BizToken

		c.mu.Lock()
		c.creds.CountryCode = result.CountryCode
		c.creds.Region = c.regionForCountry(result.CountryCode)
		c.mu.Unlock()
		c.logger.Debug().
			Str("country", result.CountryCode).
			Str("region", string(c.Region())).
			Msg("cross region redirect")
	}

	return &LoginError{Code: crossRegionCode, Message: "too many cross region redirects"}
}

// requestAuthorizeCode performs the first handshake step, trading the
// account password for a one-time authorization code.
func (c *Client) requestAuthorizeCode(ctx context.Context) (string, error) {
	req := c.newAuthRequest()
	body, _, err := c.post(ctx, authByPWDPath, req)
	if err != nil {
		return "", err
	}

	var resp struct {
		Code   int64  `json:"code"`
		Msg    string `json:"msg"`
		Result struct {
			AccountID     string `json:"accountID"`
			AuthorizeCode string `json:"authorizeCode"`
		} `json:"result"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to decode auth response: %w", err)
	}
	if resp.Code != 0 {
		info := Classify(resp.Code)
		return "", &LoginError{Code: resp.Code, Message: info.Message}
	}
	if resp.Result.AuthorizeCode == "" {
		return "", &LoginError{Message: "empty authorization code in response"}
	}
	return resp.Result.AuthorizeCode, nil
}

// loginResult is the payload of the second handshake step. On a
// cross-region answer only CountryCode and BizToken are set.
type loginResult struct {
	Token       string `json:"token"`
	AccountID   string `json:"accountID"`
	CountryCode string `json:"countryCode"`
	BizToken    string `json:"bizToken"`
}

// exchangeAuthorizeCode performs the second handshake step. The crossRegion
// return is true when the API asks the client to repeat the exchange against
// the account's home region.
func (c *Client) exchangeAuthorizeCode(ctx context.Context, authorizeCode, bizToken string, regionChange bool) (loginResult, bool, error) {
	req := c.newLoginRequest(authorizeCode, bizToken, regionChange)
	body, _, err := c.post(ctx, loginByCodePath, req)
	if err != nil {
		return loginResult{}, false, err
	}

	var resp struct {
		Code   int64       `json:"code"`
		Msg    string      `json:"msg"`
		Result loginResult `json:"result"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return loginResult{}, false, fmt.Errorf("failed to decode login response: %w", err)
	}

	switch {
	case resp.Code == 0:
		if resp.Result.Token == "" || resp.Result.AccountID == "" {
			return loginResult{}, false, &LoginError{Message: "login response missing token"}
		}
		return resp.Result, false, nil
	case resp.Code == crossRegionCode:
		return resp.Result, true, nil
	default:
		info := Classify(resp.Code)
		return loginResult{}, false, &LoginError{Code: resp.Code, Message: info.Message}
	}
}

// credentialFilePaths returns the candidate locations for the saved session
// file, in probe order.
func (c *Client) credentialFilePaths() []string {
	if c.credsPath != "" {
		return []string{c.credsPath}
	}
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, credentialFileName))
	}
	paths = append(paths, credentialFileName)
	return paths
}

// loadCredentialFile probes for a saved session and installs the first valid
// one found. Returns false when no usable file exists.
func (c *Client) loadCredentialFile() bool {
	for _, path := range c.credentialFilePaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var creds Credentials
		if err := json.Unmarshal(data, &creds); err != nil {
			c.logger.Warn().Err(err).Str("path", path).Msg("invalid credential file")
			continue
		}
		if !creds.IsAuthenticated() {
			c.logger.Warn().Str("path", path).Msg("incomplete credential file")
			continue
		}
		creds.Region = c.regionForCountry(creds.CountryCode)

		c.mu.Lock()
		c.creds = creds
		c.enabled = true
		c.credsFile = path
		c.mu.Unlock()
		return true
	}
	return false
}

// saveCredentialFile persists the session for reuse across runs. Failures
// are logged and swallowed: losing the cache only costs a login next time.
func (c *Client) saveCredentialFile() {
	c.mu.RLock()
	creds := c.creds
	c.mu.RUnlock()

	path := c.credentialFilePaths()[0]
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to encode credentials")
		return
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		c.logger.Warn().Err(err).Str("path", path).Msg("failed to write credential file")
		return
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		c.logger.Warn().Err(err).Str("path", path).Msg("failed to write credential file")
		return
	}

	c.mu.Lock()
	c.credsFile = path
	c.mu.Unlock()
}
