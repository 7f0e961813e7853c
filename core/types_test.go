package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestModelInfoHasCapability(t *testing.T) {
	m := ModelInfo{
		ID:           "m",
		Capabilities: []Feature{FeatureChat, FeatureVision},
	}

	if !m.HasCapability(FeatureVision) {
		t.Error("HasCapability(vision) = false")
	}
	if m.HasCapability(FeatureThinking) {
		t.Error("HasCapability(thinking) = true")
	}
}

func TestChunkTerminal(t *testing.T) {
	if (&ChatChunk{Delta: "hi"}).Terminal() {
		t.Error("delta chunk reported terminal")
	}
	if !(&ChatChunk{FinishReason: FinishReasonStop}).Terminal() {
		t.Error("finished chunk not terminal")
	}
}

func TestResponseHelpers(t *testing.T) {
	resp := &ChatResponse{
		ToolCalls: []ToolCall{
			{ID: "c1", Name: "lookup", Arguments: json.RawMessage(`{}`)},
			{ID: "c2", Name: "other", Arguments: json.RawMessage(`{}`)},
		},
		Thinking: "because",
		Created:  1700000000000,
	}

	if !resp.HasToolCalls() {
		t.Error("HasToolCalls() = false")
	}
	if tc := resp.FirstToolCall(); tc == nil || tc.ID != "c1" {
		t.Errorf("FirstToolCall() = %+v", tc)
	}
	if !resp.HasThinking() {
		t.Error("HasThinking() = false")
	}
	if got := resp.CreatedTime(); !got.Equal(time.UnixMilli(1700000000000)) {
		t.Errorf("CreatedTime() = %v", got)
	}

	empty := &ChatResponse{}
	if empty.FirstToolCall() != nil {
		t.Error("FirstToolCall() on empty response != nil")
	}
}

func TestToolChoiceHelpers(t *testing.T) {
	if tc := ToolChoiceAuto(); tc.Mode != "auto" {
		t.Errorf("ToolChoiceAuto().Mode = %q", tc.Mode)
	}
	if tc := ToolChoiceNone(); tc.Mode != "none" {
		t.Errorf("ToolChoiceNone().Mode = %q", tc.Mode)
	}
	tc := ToolChoiceFunction("get_weather")
	if tc.Mode != "function" || tc.FunctionName != "get_weather" {
		t.Errorf("ToolChoiceFunction() = %+v", tc)
	}
}
