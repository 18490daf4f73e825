package core

import "time"

// Operation names a public data service call.
type Operation string

// Operations reported to telemetry hooks.
const (
	OperationTextQuery      Operation = "text_query"
	OperationVoiceQuery     Operation = "voice_query"
	OperationResetContexts  Operation = "reset_contexts"
	OperationUploadEntities Operation = "upload_entities"
)

// TelemetryHook receives notifications about request lifecycle events.
// Implementations can use this for logging, metrics, tracing, etc.
//
// # Security Considerations
//
// Events carry only operational metadata. Access tokens, query text, voice
// audio and response payloads are never included, so events can be logged
// or exported without exposing user data.
type TelemetryHook interface {
	// OnRequestStart is called when an operation begins.
	OnRequestStart(e RequestStartEvent)

	// OnRequestEnd is called when an operation completes.
	OnRequestEnd(e RequestEndEvent)
}

// RequestStartEvent contains metadata about a starting request.
type RequestStartEvent struct {
	Operation Operation // Operation being performed
	Language  Language  // Configured query language
	Start     time.Time // When the request started
}

// RequestEndEvent contains metadata about a completed request.
// Err carries the *Error kind, never raw response bodies.
type RequestEndEvent struct {
	Operation Operation // Operation that was performed
	Language  Language  // Configured query language
	Start     time.Time // When the request started
	End       time.Time // When the request completed
	Status    int       // Service status code, 0 if unknown
	Err       error     // Error if request failed, nil on success
}

// Duration returns the elapsed time for the request.
func (e RequestEndEvent) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// NoopTelemetryHook is a no-op implementation of TelemetryHook.
type NoopTelemetryHook struct{}

// OnRequestStart does nothing.
func (NoopTelemetryHook) OnRequestStart(RequestStartEvent) {}

// OnRequestEnd does nothing.
func (NoopTelemetryHook) OnRequestEnd(RequestEndEvent) {}

// Compile-time check that NoopTelemetryHook implements TelemetryHook.
var _ TelemetryHook = NoopTelemetryHook{}
