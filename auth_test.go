package vesync

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loginServer fakes the two-step login handshake. The handler given for the
// second step receives the decoded request body.
func loginServer(t *testing.T, onLogin func(body map[string]any) any) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc(authByPWDPath, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "authByPWDOrOTM", body["method"])
		assert.Equal(t, "user@example.com", body["email"])
		assert.Equal(t, hashPassword("password"), body["password"])

		json.NewEncoder(w).Encode(map[string]any{
			"code": 0,
			"msg":  "",
			"result": map[string]any{
				"accountID":     "acct-1",
				"authorizeCode": "code-1",
			},
		})
	})
	mux.HandleFunc(loginByCodePath, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "loginByAuthorizeCode4Vesync", body["method"])
		json.NewEncoder(w).Encode(onLogin(body))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func loginOK(token, account, country string) map[string]any {
	return map[string]any{
		"code": 0,
		"msg":  "",
		"result": map[string]any{
			"token":       token,
			"accountID":   account,
			"countryCode": country,
		},
	}
}

func TestLogin(t *testing.T) {
	t.Run("successful handshake", func(t *testing.T) {
		srv := loginServer(t, func(body map[string]any) any {
			assert.Equal(t, "code-1", body["authorizeCode"])
			return loginOK("tok-1", "acct-1", "US")
		})

		client, err := NewClient("user@example.com", "password",
			WithBaseURL(srv.URL),
			WithCredentialsPath(filepath.Join(t.TempDir(), ".vesync_auth")))
		require.NoError(t, err)

		require.NoError(t, client.Login(context.Background()))
		assert.True(t, client.Enabled())
		assert.Equal(t, "tok-1", client.Token())
		assert.Equal(t, "acct-1", client.AccountID())
		assert.Equal(t, RegionUS, client.Region())
	})

	t.Run("login is idempotent once enabled", func(t *testing.T) {
		calls := 0
		srv := loginServer(t, func(body map[string]any) any {
			calls++
			return loginOK("tok-1", "acct-1", "US")
		})

		client, _ := NewClient("user@example.com", "password",
			WithBaseURL(srv.URL),
			WithCredentialsPath(filepath.Join(t.TempDir(), ".vesync_auth")))
		require.NoError(t, client.Login(context.Background()))
		require.NoError(t, client.Login(context.Background()))
		assert.Equal(t, 1, calls)
	})

	t.Run("bad password surfaces as login error", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc(authByPWDPath, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"code": -11201000, "msg": "password incorrect"}`))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		client, _ := NewClient("user@example.com", "password",
			WithBaseURL(srv.URL),
			WithCredentialsPath(filepath.Join(t.TempDir(), ".vesync_auth")))
		err := client.Login(context.Background())
		require.Error(t, err)
		assert.True(t, IsLoginError(err))
		assert.False(t, client.Enabled())
	})

	t.Run("cross region redirect retries with biz token", func(t *testing.T) {
		attempt := 0
		srv := loginServer(t, func(body map[string]any) any {
			attempt++
			if attempt == 1 {
				assert.Nil(t, body["bizToken"])
				return map[string]any{
					"code": crossRegionCode,
					"msg":  "cross region",
					"result": map[string]any{
						"countryCode": "DE",
						"bizToken":    "relay-1",
					},
				}
			}
			assert.Equal(t, "relay-1", body["bizToken"])
			assert.Equal(t, "lastRegion", body["regionChange"])
			return loginOK("tok-eu", "acct-1", "DE")
		})

		client, _ := NewClient("user@example.com", "password",
			WithBaseURL(srv.URL),
			WithCredentialsPath(filepath.Join(t.TempDir(), ".vesync_auth")))
		require.NoError(t, client.Login(context.Background()))
		assert.Equal(t, 2, attempt)
		assert.Equal(t, "tok-eu", client.Token())
		assert.Equal(t, "DE", client.CountryCode())
		assert.Equal(t, RegionEU, client.Region())
	})

	t.Run("repeated biz token breaks the redirect loop", func(t *testing.T) {
		srv := loginServer(t, func(body map[string]any) any {
			return map[string]any{
				"code": crossRegionCode,
				"msg":  "cross region",
				"result": map[string]any{
					"countryCode": "DE",
					"bizToken":    "relay-1",
				},
			}
		})

		client, _ := NewClient("user@example.com", "password",
			WithBaseURL(srv.URL),
			WithCredentialsPath(filepath.Join(t.TempDir(), ".vesync_auth")))
		err := client.Login(context.Background())
		require.Error(t, err)
		assert.True(t, IsLoginError(err))
		assert.Contains(t, err.Error(), "cross region")
	})

	t.Run("empty biz token breaks the redirect loop", func(t *testing.T) {
		srv := loginServer(t, func(body map[string]any) any {
			return map[string]any{
				"code":   crossRegionCode,
				"msg":    "cross region",
				"result": map[string]any{"countryCode": "DE"},
			}
		})

		client, _ := NewClient("user@example.com", "password",
			WithBaseURL(srv.URL),
			WithCredentialsPath(filepath.Join(t.TempDir(), ".vesync_auth")))
		err := client.Login(context.Background())
		require.Error(t, err)
		assert.True(t, IsLoginError(err))
	})
}

func TestCredentialFile(t *testing.T) {
	t.Run("login saves and a second client reloads", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".vesync_auth")
		srv := loginServer(t, func(body map[string]any) any {
			return loginOK("tok-1", "acct-1", "DE")
		})

		first, _ := NewClient("user@example.com", "password",
			WithBaseURL(srv.URL), WithCredentialsPath(path))
		require.NoError(t, first.Login(context.Background()))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var saved map[string]string
		require.NoError(t, json.Unmarshal(data, &saved))
		assert.Equal(t, "tok-1", saved["token"])
		assert.Equal(t, "acct-1", saved["account_id"])
		assert.Equal(t, "DE", saved["country_code"])

		// The second client never reaches the network.
		second, _ := NewClient("user@example.com", "password",
			WithBaseURL("http://localhost:1"), WithCredentialsPath(path))
		require.NoError(t, second.Login(context.Background()))
		assert.Equal(t, "tok-1", second.Token())
		assert.Equal(t, RegionEU, second.Region(), "region is recomputed from the saved country")
	})

	t.Run("incomplete file is ignored", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".vesync_auth")
		require.NoError(t, os.WriteFile(path, []byte(`{"token": ""}`), 0o600))

		client, _ := NewClient("user@example.com", "password", WithCredentialsPath(path))
		assert.False(t, client.loadCredentialFile())
	})

	t.Run("corrupt file is ignored", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".vesync_auth")
		require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

		client, _ := NewClient("user@example.com", "password", WithCredentialsPath(path))
		assert.False(t, client.loadCredentialFile())
	})

	t.Run("clear removes the file and is idempotent", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".vesync_auth")
		srv := loginServer(t, func(body map[string]any) any {
			return loginOK("tok-1", "acct-1", "US")
		})

		client, _ := NewClient("user@example.com", "password",
			WithBaseURL(srv.URL), WithCredentialsPath(path))
		require.NoError(t, client.Login(context.Background()))

		client.ClearCredentials()
		assert.False(t, client.Enabled())
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))

		client.ClearCredentials()
	})
}

func TestSetCredentials(t *testing.T) {
	client, _ := NewClient("user@example.com", "password")
	client.SetCredentials("tok", "acct", "GB")
	assert.True(t, client.Enabled())
	assert.Equal(t, RegionEU, client.Region())
}

func TestCredentialsIsAuthenticated(t *testing.T) {
	assert.False(t, Credentials{}.IsAuthenticated())
	assert.False(t, Credentials{Token: "tok"}.IsAuthenticated())
	assert.True(t, Credentials{Token: "tok", AccountID: "acct"}.IsAuthenticated())
}

func TestHashPassword(t *testing.T) {
	// md5("password")
	assert.Equal(t, "5f4dcc3b5aa765d61d8327deb882cf99", hashPassword("password"))
}
