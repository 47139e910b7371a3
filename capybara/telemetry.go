package capybara

import "time"

// TelemetryHook receives notifications about request lifecycle events.
// Implementations can use this for logging, metrics, tracing, etc.
//
// # Security Considerations
//
// Event types are designed to NEVER include sensitive data:
//   - API keys are NEVER included (stored separately as Secret)
//   - Document content is NEVER included
//   - Query text and filters are NEVER included
//   - Only operational metadata is exposed (operation, database,
//     collection, timing, status)
//
// This design ensures that telemetry data can be safely:
//   - Logged to disk without risk of credential exposure
//   - Sent to external monitoring systems
//   - Aggregated for analytics
//   - Stored long-term for debugging
//
// If extending this interface, maintain these security properties.
// Never add fields that could contain: API keys, document payloads,
// query content, or any other potentially sensitive data.
type TelemetryHook interface {
	// OnRequestStart is called when a request to the service begins.
	OnRequestStart(e RequestStartEvent)

	// OnRequestEnd is called when a request to the service completes.
	OnRequestEnd(e RequestEndEvent)
}

// RequestStartEvent contains metadata about a starting request.
//
// # Security
//
// This struct intentionally excludes:
//   - API keys (never logged)
//   - Document and query content (privacy sensitive)
//   - Request headers (contain the auth token)
//
// Only operational metadata suitable for logging is included.
type RequestStartEvent struct {
	Operation  string    // Operation name (e.g., "insert", "find", "query")
	Database   string    // Database name
	Collection string    // Collection name
	Start      time.Time // When the request started
}

// RequestEndEvent contains metadata about a completed request.
//
// # Security
//
// This struct intentionally excludes:
//   - API keys (never logged)
//   - Response payloads (may contain document content)
//   - Raw HTTP response data
type RequestEndEvent struct {
	Operation  string    // Operation name
	Database   string    // Database name
	Collection string    // Collection name
	Start      time.Time // When the request started
	End        time.Time // When the request completed
	Status     int       // HTTP status of the final attempt, 0 if the request never reached the service
	Err        error     // Error if the request failed, nil on success
}

// Duration returns the elapsed time for the request.
func (e RequestEndEvent) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// NoopTelemetryHook is a no-op implementation of TelemetryHook.
// Use this as a default when no telemetry is configured.
type NoopTelemetryHook struct{}

// OnRequestStart does nothing.
func (NoopTelemetryHook) OnRequestStart(RequestStartEvent) {}

// OnRequestEnd does nothing.
func (NoopTelemetryHook) OnRequestEnd(RequestEndEvent) {}

// Compile-time check that NoopTelemetryHook implements TelemetryHook.
var _ TelemetryHook = NoopTelemetryHook{}
