package vesync

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// LoggingTransport wraps an http.RoundTripper and logs requests/responses.
// It is useful for tracing traffic without enabling the client's debug mode.
type LoggingTransport struct {
	Base   http.RoundTripper
	Logger zerolog.Logger
}

// RoundTrip implements http.RoundTripper with logging.
func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	t.Logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Msg("api request")

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	resp, err := base.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		t.Logger.Error().
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Dur("duration", duration).
			Err(err).
			Msg("api error")
		return resp, err
	}

	evt := t.Logger.Debug()
	if resp.StatusCode >= 500 {
		evt = t.Logger.Error()
	} else if resp.StatusCode >= 400 {
		evt = t.Logger.Warn()
	}
	evt.
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Dur("duration", duration).
		Msg("api response")

	return resp, nil
}

// NewLoggingClient creates a client whose HTTP transport logs every request
// and response through the given logger. This is a convenience wrapper
// around WithHTTPClient and WithLogger.
func NewLoggingClient(username, password string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	transport := &LoggingTransport{
		Base: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
		Logger: logger,
	}
	httpClient := &http.Client{
		Timeout:   DefaultTimeout,
		Transport: transport,
	}

	allOpts := append([]Option{WithHTTPClient(httpClient), WithLogger(logger)}, opts...)
	return NewClient(username, password, allOpts...)
}
