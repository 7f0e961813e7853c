package core

import (
	"errors"
	"fmt"
)

// APIError represents an error returned by the API with full context.
type APIError struct {
	Provider  string
	Status    int    // HTTP status code, 0 when the request never completed
	Code      string // API status code from the response envelope
	Message   string
	RequestID string
	Body      []byte // raw response body when available
	Err       error  // classification sentinel
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("%s: %s (status=%d, code=%s, request_id=%s)",
			e.Provider, e.Message, e.Status, e.Code, e.RequestID)
	}
	return fmt.Sprintf("%s: %s (status=%d, code=%s)",
		e.Provider, e.Message, e.Status, e.Code)
}

// Unwrap returns the classification sentinel for error chaining.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Sentinel errors for classification.
var (
	// ErrAuthentication covers HTTP 401/403 and a missing credential at
	// client construction.
	ErrAuthentication = errors.New("authentication failed")
	// ErrInvalidRequest covers HTTP 4xx (other than auth and rate
	// limiting) and locally detected malformed requests.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrRateLimited covers HTTP 429.
	ErrRateLimited = errors.New("rate limited")
	// ErrServer covers HTTP 5xx.
	ErrServer = errors.New("server error")
	// ErrConnection covers transport-level connection failures.
	ErrConnection = errors.New("connection error")
	// ErrTimeout covers transport-level timeouts.
	ErrTimeout = errors.New("request timed out")
	// ErrStreaming covers malformed SSE data, undecodable payloads, and
	// explicit error events on a stream.
	ErrStreaming = errors.New("streaming error")
	// ErrModelNotSupported is raised when a model lacks a requested
	// capability. It is distinct from ErrInvalidRequest so callers can
	// tell capability mismatches apart from other bad requests.
	ErrModelNotSupported = errors.New("model does not support requested feature")
	// ErrDecode covers undecodable non-streaming response bodies.
	ErrDecode = errors.New("decode error")
	// ErrNotSupported is returned for operations the provider does not
	// implement.
	ErrNotSupported = errors.New("operation not supported")
)

// Validation errors with actionable guidance.
var (
	ErrModelRequired = errors.New("model required: pass a model ID to Client.Chat(), e.g., client.Chat(clovastudio.ModelHCX005)")
	ErrNoMessages    = errors.New("no messages: add at least one message using .System(), .User(), or .Assistant()")
)
