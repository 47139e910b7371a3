package capybara

import (
	"net/http"
	"time"
)

// Config holds configuration for the CapybaraDB client.
type Config struct {
	// APIKey is the CapybaraDB API key (required).
	APIKey Secret

	// ProjectID is the CapybaraDB project ID (required).
	ProjectID string

	// BaseURL is the API base URL. Defaults to https://api.capybaradb.co/v0
	BaseURL string

	// HTTPClient is the HTTP client to use. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Headers contains optional extra headers to include in requests.
	Headers http.Header

	// Timeout is the optional per-request timeout. Zero means no
	// client-imposed timeout beyond the caller's context.
	Timeout time.Duration

	// Telemetry receives request lifecycle events. Defaults to
	// NoopTelemetryHook.
	Telemetry TelemetryHook

	// Retry determines retry behavior. Nil means no retries.
	Retry RetryPolicy
}

// DefaultBaseURL is the default CapybaraDB API base URL.
const DefaultBaseURL = "https://api.capybaradb.co/v0"

// Option configures the CapybaraDB client.
type Option func(*Config)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithHeader adds an extra header to include in requests.
func WithHeader(key, value string) Option {
	return func(c *Config) {
		if c.Headers == nil {
			c.Headers = make(http.Header)
		}
		c.Headers.Set(key, value)
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithTelemetry sets the telemetry hook.
func WithTelemetry(h TelemetryHook) Option {
	return func(c *Config) {
		if h != nil {
			c.Telemetry = h
		}
	}
}

// WithRetryPolicy sets the retry policy. The client performs no
// retries unless one is set.
func WithRetryPolicy(r RetryPolicy) Option {
	return func(c *Config) {
		c.Retry = r
	}
}
