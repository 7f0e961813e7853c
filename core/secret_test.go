package core

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

func TestSecretRedaction(t *testing.T) {
	s := NewSecret("sk-very-secret")

	if got := s.String(); got != "[REDACTED]" {
		t.Errorf("String() = %q, want [REDACTED]", got)
	}
	if got := fmt.Sprintf("%v", s); strings.Contains(got, "very-secret") {
		t.Errorf("%%v leaked secret: %q", got)
	}
	if got := fmt.Sprintf("%#v", s); strings.Contains(got, "very-secret") {
		t.Errorf("%%#v leaked secret: %q", got)
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(data), "very-secret") {
		t.Errorf("JSON leaked secret: %s", data)
	}
}

func TestSecretExpose(t *testing.T) {
	s := NewSecret("sk-very-secret")
	if got := s.Expose(); got != "sk-very-secret" {
		t.Errorf("Expose() = %q", got)
	}
	if s.IsEmpty() {
		t.Error("IsEmpty() = true for non-empty secret")
	}
	if !NewSecret("").IsEmpty() {
		t.Error("IsEmpty() = false for empty secret")
	}
}
