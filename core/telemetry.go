package core

import "time"

// TelemetryHook receives notifications about request lifecycle events.
// Implementations can use this for logging, metrics, tracing, etc.
//
// Event types never include sensitive data: API keys, prompt content,
// and response content are all excluded. Only operational metadata is
// exposed (operation, model, timing, token counts), so telemetry can be
// logged or shipped to monitoring systems safely.
type TelemetryHook interface {
	// OnRequestStart is called when an API request begins.
	OnRequestStart(e RequestStartEvent)

	// OnRequestEnd is called when an API request completes.
	OnRequestEnd(e RequestEndEvent)
}

// Operation identifies the kind of API call being made.
type Operation string

const (
	OperationChat       Operation = "chat"
	OperationChatStream Operation = "chat_stream"
	OperationEmbedding  Operation = "embedding"
)

// RequestStartEvent contains metadata about a starting request.
type RequestStartEvent struct {
	Operation Operation // Which API call is being made
	Model     ModelID   // Model being called, empty for embeddings
	Start     time.Time // When the request started
}

// RequestEndEvent contains metadata about a completed request.
type RequestEndEvent struct {
	Operation Operation
	Model     ModelID
	Start     time.Time
	End       time.Time
	Usage     TokenUsage // Token consumption, zeroed when unknown
	Err       error      // Error if the request failed, nil on success
}

// Duration returns the elapsed time for the request.
func (e RequestEndEvent) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// NoopTelemetryHook is a no-op implementation of TelemetryHook.
// Used as the default when no telemetry is configured.
type NoopTelemetryHook struct{}

// OnRequestStart does nothing.
func (NoopTelemetryHook) OnRequestStart(RequestStartEvent) {}

// OnRequestEnd does nothing.
func (NoopTelemetryHook) OnRequestEnd(RequestEndEvent) {}

// Compile-time check that NoopTelemetryHook implements TelemetryHook.
var _ TelemetryHook = NoopTelemetryHook{}
