package vesync

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the VeSync client.
// All errors are defined here for easy discovery and consistent organization.
var (
	// Authentication errors
	ErrNotLoggedIn   = errors.New("vesync: not logged in")
	ErrEmptyUsername = errors.New("vesync: username cannot be empty")
	ErrEmptyPassword = errors.New("vesync: password cannot be empty")

	// Rate limiting
	ErrRateLimited = errors.New("vesync: rate limited (too many requests)")

	// Device validation errors
	ErrDeviceNotFound  = errors.New("vesync: device not found")
	ErrUnsupportedType = errors.New("vesync: unsupported device type")
)

const serverErrorSuffix = "please report this issue at github.com/webdjoe/vesync-go/issues"

// LoginError indicates the API rejected the account credentials.
type LoginError struct {
	Code    int64
	Message string
}

// Error implements the error interface.
func (e *LoginError) Error() string {
	return fmt.Sprintf("vesync: login failed (%d): %s", e.Code, e.Message)
}

// TokenError indicates the session token was rejected and a new login is
// required.
type TokenError struct {
	Code    int64
	Message string
}

// Error implements the error interface.
func (e *TokenError) Error() string {
	return fmt.Sprintf("vesync: token rejected (%d): %s", e.Code, e.Message)
}

// ServerError indicates an internal failure on the VeSync cloud side.
type ServerError struct {
	Code    int64
	Message string
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	return fmt.Sprintf("vesync: server error (%d): %s - %s", e.Code, e.Message, serverErrorSuffix)
}

// RateLimitError indicates the account is being rate limited by the API.
type RateLimitError struct {
	Code    int64
	Message string
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	return fmt.Sprintf("vesync: rate limited (%d): %s", e.Code, e.Message)
}

// Unwrap lets errors.Is match ErrRateLimited.
func (e *RateLimitError) Unwrap() error { return ErrRateLimited }

// APIStatusError represents a non-200 HTTP response from the VeSync API.
type APIStatusError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *APIStatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("vesync: API returned status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("vesync: API returned status %d", e.StatusCode)
}

// IsLoginError returns true if the error indicates rejected credentials.
func IsLoginError(err error) bool {
	var loginErr *LoginError
	return errors.As(err, &loginErr)
}

// IsTokenError returns true if the error indicates an expired or invalid
// session token. Callers should re-authenticate and retry.
func IsTokenError(err error) bool {
	var tokenErr *TokenError
	return errors.As(err, &tokenErr)
}

// IsServerError returns true if the error indicates a VeSync cloud failure.
func IsServerError(err error) bool {
	var serverErr *ServerError
	return errors.As(err, &serverErr)
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIStatusError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}
	return false
}

// IsTimeout returns true if the error indicates a timeout.
func IsTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

// errorForResponse maps a classified return code to the error the transport
// raises, or nil for kinds that are recorded on the device instead. Only the
// systemic kinds abort a call: rate limiting, authentication, token expiry
// and server failures.
func errorForResponse(code int64, info ResponseInfo) error {
	switch info.Kind {
	case KindRateLimit:
		return &RateLimitError{Code: code, Message: info.Message}
	case KindAuthentication:
		return &LoginError{Code: code, Message: info.Message}
	case KindTokenError:
		return &TokenError{Code: code, Message: info.Message}
	case KindServerError:
		return &ServerError{Code: code, Message: info.Message}
	default:
		return nil
	}
}
