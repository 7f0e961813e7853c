package clovastudio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/ncloud-labs/hyperclova-go/core"
)

const providerName = "clovastudio"

// ErrToolArgsInvalidJSON is returned when tool call arguments contain
// invalid JSON.
var ErrToolArgsInvalidJSON = errors.New("tool args invalid json")

// normalizeError converts an HTTP error response to an APIError with
// the appropriate sentinel.
func normalizeError(status int, body []byte, requestID string) error {
	var env csEnvelope
	_ = json.Unmarshal(body, &env)

	message := env.Status.Message
	if message == "" {
		message = http.StatusText(status)
	}
	code := env.Status.Code
	if code == "" {
		code = strconv.Itoa(status)
	}

	var sentinel error
	switch {
	case status == http.StatusUnauthorized:
		sentinel = core.ErrAuthentication
		message = "authentication failed, invalid API key"
	case status == http.StatusForbidden:
		sentinel = core.ErrAuthentication
		message = "access forbidden, check your API key permissions"
	case status == http.StatusNotFound:
		sentinel = core.ErrInvalidRequest
		message = "resource not found"
	case status == http.StatusTooManyRequests:
		sentinel = core.ErrRateLimited
		message = "rate limit exceeded"
	case status >= 400 && status < 500:
		sentinel = core.ErrInvalidRequest
	case status >= 500:
		sentinel = core.ErrServer
	default:
		sentinel = core.ErrServer
	}

	return &core.APIError{
		Provider:  providerName,
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: requestID,
		Body:      body,
		Err:       sentinel,
	}
}

// normalizeEnvelopeError handles a non-success envelope status carried
// on an HTTP 200. The five-digit API code's leading digits follow the
// HTTP status classes, so classification maps through them.
func normalizeEnvelopeError(env *csEnvelope, body []byte, requestID string) error {
	status := 0
	if code, err := strconv.Atoi(env.Status.Code); err == nil {
		for code >= 1000 {
			code /= 10
		}
		status = code
	}
	return normalizeError(status, body, requestID)
}

// newConnectionError creates an APIError for transport failures,
// distinguishing timeouts from connection errors.
func newConnectionError(err error) error {
	sentinel := core.ErrConnection
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		sentinel = core.ErrTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		sentinel = core.ErrTimeout
	}
	return &core.APIError{
		Provider: providerName,
		Message:  err.Error(),
		Err:      sentinel,
	}
}

// newDecodeError creates an APIError for JSON decode failures.
func newDecodeError(err error) error {
	return &core.APIError{
		Provider: providerName,
		Message:  err.Error(),
		Err:      core.ErrDecode,
	}
}

// newStreamingError creates an APIError for stream-level failures.
// Streaming errors are always fatal; the stream never resumes after
// one.
func newStreamingError(msg, code string) error {
	return &core.APIError{
		Provider: providerName,
		Code:     code,
		Message:  msg,
		Err:      core.ErrStreaming,
	}
}

// newCapabilityError reports that a model lacks a requested feature.
func newCapabilityError(model core.ModelID, feature core.Feature) error {
	return &core.APIError{
		Provider: providerName,
		Message:  fmt.Sprintf("model %s does not support %s", model, feature),
		Err:      core.ErrModelNotSupported,
	}
}
