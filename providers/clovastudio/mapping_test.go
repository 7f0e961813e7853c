package clovastudio

import (
	"encoding/json"
	"testing"

	"github.com/ncloud-labs/hyperclova-go/core"
)

func intPtr(n int) *int { return &n }

func TestTokenLimitPolicyHCX007(t *testing.T) {
	tests := []struct {
		name string
		req  *core.ChatRequest
		want int
	}{
		{
			name: "explicit max completion tokens wins",
			req: &core.ChatRequest{
				Model:               ModelHCX007,
				MaxCompletionTokens: intPtr(999),
				Thinking:            &core.ThinkingConfig{Effort: core.ThinkingEffortHigh},
			},
			want: 999,
		},
		{
			name: "max tokens folds into max completion tokens",
			req: &core.ChatRequest{
				Model:     ModelHCX007,
				MaxTokens: intPtr(777),
			},
			want: 777,
		},
		{
			name: "thinking effort none budget",
			req: &core.ChatRequest{
				Model:    ModelHCX007,
				Thinking: &core.ThinkingConfig{Effort: core.ThinkingEffortNone},
			},
			want: 512,
		},
		{
			name: "thinking effort low budget",
			req: &core.ChatRequest{
				Model:    ModelHCX007,
				Thinking: &core.ThinkingConfig{Effort: core.ThinkingEffortLow},
			},
			want: 5120,
		},
		{
			name: "thinking effort medium budget",
			req: &core.ChatRequest{
				Model:    ModelHCX007,
				Thinking: &core.ThinkingConfig{Effort: core.ThinkingEffortMedium},
			},
			want: 10240,
		},
		{
			name: "thinking effort high budget",
			req: &core.ChatRequest{
				Model:    ModelHCX007,
				Thinking: &core.ThinkingConfig{Effort: core.ThinkingEffortHigh},
			},
			want: 20480,
		},
		{
			name: "fallback default",
			req:  &core.ChatRequest{Model: ModelHCX007},
			want: 2048,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := buildRequest(tt.req)
			if out.MaxTokens != nil {
				t.Error("maxTokens set for HCX-007")
			}
			if out.MaxCompletionTokens == nil {
				t.Fatal("maxCompletionTokens not set")
			}
			if *out.MaxCompletionTokens != tt.want {
				t.Errorf("maxCompletionTokens = %d, want %d", *out.MaxCompletionTokens, tt.want)
			}
		})
	}
}

func TestTokenLimitPolicyOtherModels(t *testing.T) {
	out := buildRequest(&core.ChatRequest{Model: ModelHCX005, MaxTokens: intPtr(100)})
	if out.MaxTokens == nil || *out.MaxTokens != 100 {
		t.Errorf("maxTokens = %v, want 100", out.MaxTokens)
	}

	// MaxCompletionTokens folds into maxTokens for non-reasoning models.
	out = buildRequest(&core.ChatRequest{Model: ModelHCXDash002, MaxCompletionTokens: intPtr(200)})
	if out.MaxTokens == nil || *out.MaxTokens != 200 {
		t.Errorf("maxTokens = %v, want 200", out.MaxTokens)
	}
	if out.MaxCompletionTokens != nil {
		t.Error("maxCompletionTokens set for non-reasoning model")
	}

	// No synthesized default.
	out = buildRequest(&core.ChatRequest{Model: ModelHCX005})
	if out.MaxTokens != nil || out.MaxCompletionTokens != nil {
		t.Error("token limit synthesized for non-reasoning model")
	}
}

func TestThinkingInjectedForStructuredOutput(t *testing.T) {
	out := buildRequest(&core.ChatRequest{
		Model:          ModelHCX007,
		ResponseFormat: core.NewJSONResponseFormat(map[string]any{"type": "object"}),
	})
	if out.Thinking == nil || out.Thinking.Effort != "none" {
		t.Errorf("thinking = %+v, want effort none", out.Thinking)
	}

	// An explicit thinking config is left alone.
	out = buildRequest(&core.ChatRequest{
		Model:          ModelHCX007,
		ResponseFormat: core.NewJSONResponseFormat(map[string]any{"type": "object"}),
		Thinking:       &core.ThinkingConfig{Effort: core.ThinkingEffortMedium},
	})
	if out.Thinking == nil || out.Thinking.Effort != "medium" {
		t.Errorf("thinking = %+v, want effort medium", out.Thinking)
	}
}

func TestMapMessagesMultimodal(t *testing.T) {
	urlPart, _ := core.NewImageURLPart("https://example.com/a.png")
	msgs := []core.Message{
		{Role: core.RoleSystem, Content: "be brief"},
		{Role: core.RoleUser, Parts: []core.ContentPart{
			core.TextPart{Text: "what is this"},
			urlPart,
		}},
	}

	wire := mapMessages(msgs)
	if wire[0].Content != "be brief" {
		t.Errorf("plain content = %v", wire[0].Content)
	}

	parts, ok := wire[1].Content.([]csContentPart)
	if !ok {
		t.Fatalf("multimodal content type = %T", wire[1].Content)
	}
	if parts[0].Type != "text" || parts[0].Text != "what is this" {
		t.Errorf("text part = %+v", parts[0])
	}
	if parts[1].Type != "image_url" || parts[1].ImageURL == nil || parts[1].ImageURL.URL != "https://example.com/a.png" {
		t.Errorf("image part = %+v", parts[1])
	}
}

func TestMapMessagesDataURI(t *testing.T) {
	dataPart, _ := core.NewImageDataPart("data:image/png;base64,AAAA")
	wire := mapMessages([]core.Message{
		{Role: core.RoleUser, Parts: []core.ContentPart{dataPart}},
	})

	parts := wire[0].Content.([]csContentPart)
	if parts[0].DataURI == nil || parts[0].DataURI.Data != "data:image/png;base64,AAAA" {
		t.Errorf("data part = %+v", parts[0])
	}
	if parts[0].ImageURL != nil {
		t.Error("imageUrl set alongside dataUri")
	}
}

func TestMapToolChoice(t *testing.T) {
	if got := mapToolChoice(core.ToolChoiceAuto()); got != "auto" {
		t.Errorf("auto = %v", got)
	}
	if got := mapToolChoice(core.ToolChoiceNone()); got != "none" {
		t.Errorf("none = %v", got)
	}

	got := mapToolChoice(core.ToolChoiceFunction("lookup"))
	fc, ok := got.(csToolChoiceFunction)
	if !ok {
		t.Fatalf("function choice type = %T", got)
	}
	if fc.Type != "function" || fc.Function.Name != "lookup" {
		t.Errorf("function choice = %+v", fc)
	}
}

func TestMapResult(t *testing.T) {
	res := &csResult{
		Message: csResultMessage{
			Role:            "assistant",
			Content:         "4",
			ThinkingContent: "2+2",
			ToolCalls: []csToolCall{
				{ID: "c1", Type: "function", Function: csCallFunction{
					Name:      "calc",
					Arguments: json.RawMessage(`{"op":"add"}`),
				}},
			},
		},
		FinishReason: "tool_calls",
		Created:      1700000000000,
		Seed:         99,
		Usage:        &csUsage{PromptTokens: 3, CompletionTokens: 1, TotalTokens: 4},
		AIFilter: []csAIFilter{
			{GroupName: "curse", Name: "insult", Score: "-1", Result: "OK"},
		},
	}

	resp, err := mapResult(res)
	if err != nil {
		t.Fatalf("mapResult() error = %v", err)
	}
	if resp.Output != "4" || resp.Thinking != "2+2" {
		t.Errorf("resp = %+v", resp)
	}
	if resp.FinishReason != core.FinishReasonToolCalls {
		t.Errorf("FinishReason = %q", resp.FinishReason)
	}
	if len(resp.ToolCalls) != 1 || resp.ToolCalls[0].Name != "calc" {
		t.Errorf("ToolCalls = %+v", resp.ToolCalls)
	}
	if resp.Usage.TotalTokens != 4 {
		t.Errorf("Usage = %+v", resp.Usage)
	}
	if len(resp.AIFilter) != 1 || resp.AIFilter[0].GroupName != "curse" {
		t.Errorf("AIFilter = %+v", resp.AIFilter)
	}
}

func TestMapToolCallsInvalidJSON(t *testing.T) {
	_, err := mapToolCalls([]csToolCall{
		{ID: "c1", Function: csCallFunction{Name: "x", Arguments: json.RawMessage(`{bad`)}},
	})
	if err != ErrToolArgsInvalidJSON {
		t.Errorf("error = %v, want ErrToolArgsInvalidJSON", err)
	}
}

func TestMapToolCallsEmptyArguments(t *testing.T) {
	calls, err := mapToolCalls([]csToolCall{
		{ID: "c1", Function: csCallFunction{Name: "x"}},
	})
	if err != nil {
		t.Fatalf("mapToolCalls() error = %v", err)
	}
	if string(calls[0].Arguments) != `{}` {
		t.Errorf("Arguments = %s, want {}", calls[0].Arguments)
	}
}

func TestBuildRequestOmitsUnsetFields(t *testing.T) {
	out := buildRequest(&core.ChatRequest{
		Model:    ModelHCX005,
		Messages: []core.Message{{Role: core.RoleUser, Content: "hi"}},
	})

	data, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	for _, field := range []string{"temperature", "topP", "topK", "maxTokens", "thinking", "tools", "responseFormat", "seed", "stop"} {
		if json.Valid(data) && containsKey(t, data, field) {
			t.Errorf("unset field %q serialized: %s", field, data)
		}
	}
}

func containsKey(t *testing.T, data []byte, key string) bool {
	t.Helper()
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	_, ok := m[key]
	return ok
}
