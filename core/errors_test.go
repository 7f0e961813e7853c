package core

import (
	"errors"
	"strings"
	"testing"
)

func TestAPIErrorUnwrap(t *testing.T) {
	err := &APIError{
		Provider: "clovastudio",
		Status:   429,
		Code:     "42901",
		Message:  "rate limit exceeded",
		Err:      ErrRateLimited,
	}

	if !errors.Is(err, ErrRateLimited) {
		t.Error("errors.Is(err, ErrRateLimited) = false")
	}

	var apiErr *APIError
	if !errors.As(error(err), &apiErr) {
		t.Error("errors.As failed")
	}
}

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{
		Provider:  "clovastudio",
		Status:    401,
		Code:      "40100",
		Message:   "authentication failed",
		RequestID: "req-123",
		Err:       ErrAuthentication,
	}

	msg := err.Error()
	for _, want := range []string{"clovastudio", "authentication failed", "401", "40100", "req-123"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
}

func TestAPIErrorMessageWithoutRequestID(t *testing.T) {
	err := &APIError{Provider: "clovastudio", Status: 500, Message: "server error", Err: ErrServer}
	if strings.Contains(err.Error(), "request_id") {
		t.Errorf("Error() = %q, should omit request_id", err.Error())
	}
}
