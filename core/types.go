package core

import (
	"encoding/json"
	"time"
)

// Feature represents a capability that a model may support.
type Feature string

const (
	FeatureChat             Feature = "chat"
	FeatureChatStreaming    Feature = "chat_streaming"
	FeatureVision           Feature = "vision"
	FeatureThinking         Feature = "thinking"
	FeatureStructuredOutput Feature = "structured_output"
	FeatureFunctionCalling  Feature = "function_calling"
	FeatureEmbeddings       Feature = "embeddings"
)

// ModelID is a string identifier for a model.
// Using string avoids coupling to provider-specific enums.
type ModelID string

// ModelInfo describes a model available from a provider.
type ModelInfo struct {
	ID           ModelID   `json:"id"`
	DisplayName  string    `json:"display_name"`
	Capabilities []Feature `json:"capabilities"`
}

// HasCapability reports whether the model supports the given feature.
func (m ModelInfo) HasCapability(f Feature) bool {
	for _, cap := range m.Capabilities {
		if cap == f {
			return true
		}
	}
	return false
}

// Role represents a message participant role.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool" // For tool result messages
)

// ThinkingEffort controls how much hidden reasoning a thinking-capable
// model performs before answering.
type ThinkingEffort string

const (
	ThinkingEffortNone   ThinkingEffort = "none"
	ThinkingEffortLow    ThinkingEffort = "low"
	ThinkingEffortMedium ThinkingEffort = "medium"
	ThinkingEffortHigh   ThinkingEffort = "high"
)

// ThinkingConfig configures the hidden reasoning trace.
type ThinkingConfig struct {
	Effort ThinkingEffort `json:"effort"`
}

// FinishReason explains why the model stopped generating.
type FinishReason string

const (
	FinishReasonLength    FinishReason = "length"
	FinishReasonStop      FinishReason = "stop"
	FinishReasonToolCalls FinishReason = "tool_calls"
)

// Message represents a single message in a conversation.
// For simple text messages, use Content. For multimodal messages, use
// Parts. If Parts is non-empty, Content is ignored.
type Message struct {
	Role       Role          `json:"role"`
	Content    string        `json:"content,omitempty"`
	Parts      []ContentPart `json:"-"`
	ToolCalls  []ToolCall    `json:"tool_calls,omitempty"`   // For assistant messages requesting tools
	ToolCallID string        `json:"tool_call_id,omitempty"` // For tool result messages (RoleTool)
}

// ToolCall represents a tool invocation requested by the model.
// Arguments MUST be valid JSON bytes and MUST preserve raw JSON.
type ToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// FunctionParameters is the JSON-schema-shaped parameter spec of a
// function tool.
type FunctionParameters struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Required   []string       `json:"required,omitempty"`
}

// FunctionDefinition describes a callable function.
// Treat values as immutable once constructed.
type FunctionDefinition struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Parameters  FunctionParameters `json:"parameters"`
}

// Tool is a callable capability offered to the model.
type Tool struct {
	Type     string             `json:"type"` // always "function"
	Function FunctionDefinition `json:"function"`
}

// NewFunctionTool wraps a function definition in a Tool.
func NewFunctionTool(fn FunctionDefinition) Tool {
	return Tool{Type: "function", Function: fn}
}

// ToolChoice directs how the model chooses among offered tools.
// Mode is "auto", "none", or "function"; FunctionName is set only when
// Mode is "function".
type ToolChoice struct {
	Mode         string
	FunctionName string
}

// ToolChoiceAuto lets the model decide whether to call a tool.
func ToolChoiceAuto() *ToolChoice { return &ToolChoice{Mode: "auto"} }

// ToolChoiceNone forbids tool calls for this request.
func ToolChoiceNone() *ToolChoice { return &ToolChoice{Mode: "none"} }

// ToolChoiceFunction forces a call to the named function.
func ToolChoiceFunction(name string) *ToolChoice {
	return &ToolChoice{Mode: "function", FunctionName: name}
}

// ResponseFormat requests schema-constrained structured output.
// Schema carries a JSON-schema fragment describing the desired shape.
type ResponseFormat struct {
	Type   string         `json:"type"` // always "json"
	Schema map[string]any `json:"schema"`
}

// NewJSONResponseFormat builds a structured-output request for the
// given JSON-schema fragment.
func NewJSONResponseFormat(schema map[string]any) *ResponseFormat {
	return &ResponseFormat{Type: "json", Schema: schema}
}

// TokenUsage tracks token consumption for a request.
type TokenUsage struct {
	PromptTokens            int            `json:"prompt_tokens"`
	CompletionTokens        int            `json:"completion_tokens"`
	TotalTokens             int            `json:"total_tokens"`
	CompletionTokensDetails map[string]int `json:"completion_tokens_details,omitempty"`
}

// AIFilterResult is one content-safety filter verdict attached to a
// response when the request asked for filter results.
type AIFilterResult struct {
	GroupName string `json:"group_name"`
	Name      string `json:"name"`
	Score     string `json:"score"`
	Result    string `json:"result,omitempty"`
}

// ChatRequest represents a request to a chat model.
// At most one of MaxTokens and MaxCompletionTokens may be set; the
// provider rejects requests that set both.
type ChatRequest struct {
	Model               ModelID
	Messages            []Message
	Temperature         *float32
	TopP                *float32
	TopK                *int
	MaxTokens           *int
	MaxCompletionTokens *int
	RepetitionPenalty   *float32
	Stop                []string
	Seed                *int64
	IncludeAIFilters    *bool
	Thinking            *ThinkingConfig
	Tools               []Tool
	ToolChoice          *ToolChoice
	ResponseFormat      *ResponseFormat

	// RequestID is sent as the X-NCP-CLOVASTUDIO-REQUEST-ID header.
	// Generated when empty.
	RequestID string
}

// ChatResponse represents a response from a chat model.
type ChatResponse struct {
	Role         Role             `json:"role"`
	Output       string           `json:"output"`
	Thinking     string           `json:"thinking,omitempty"`
	ToolCalls    []ToolCall       `json:"tool_calls,omitempty"`
	FinishReason FinishReason     `json:"finish_reason,omitempty"`
	Created      int64            `json:"created"` // millisecond epoch
	Seed         int64            `json:"seed"`
	Usage        TokenUsage       `json:"usage"`
	AIFilter     []AIFilterResult `json:"ai_filter,omitempty"`
}

// HasToolCalls reports whether the response contains any tool calls.
func (r *ChatResponse) HasToolCalls() bool {
	return len(r.ToolCalls) > 0
}

// FirstToolCall returns the first tool call, or nil if there are none.
// This is convenient for single-tool scenarios:
//
//	if tc := resp.FirstToolCall(); tc != nil {
//	    // handle tool call
//	}
func (r *ChatResponse) FirstToolCall() *ToolCall {
	if len(r.ToolCalls) > 0 {
		return &r.ToolCalls[0]
	}
	return nil
}

// HasThinking reports whether the response carries a hidden reasoning
// trace.
func (r *ChatResponse) HasThinking() bool {
	return r.Thinking != ""
}

// CreatedTime converts the millisecond creation timestamp to time.Time.
func (r *ChatResponse) CreatedTime() time.Time {
	return time.UnixMilli(r.Created)
}

// ChatChunk represents an incremental streaming response.
// Delta contains incremental assistant text; ThinkingDelta contains
// incremental hidden reasoning text. FinishReason and Usage stay empty
// until the terminal chunk.
type ChatChunk struct {
	Role          Role             `json:"role,omitempty"`
	Delta         string           `json:"delta,omitempty"`
	ThinkingDelta string           `json:"thinking_delta,omitempty"`
	ToolCalls     []ToolCall       `json:"tool_calls,omitempty"`
	FinishReason  FinishReason     `json:"finish_reason,omitempty"`
	Created       int64            `json:"created,omitempty"`
	Seed          int64            `json:"seed,omitempty"`
	Usage         *TokenUsage      `json:"usage,omitempty"`
	AIFilter      []AIFilterResult `json:"ai_filter,omitempty"`
}

// Terminal reports whether this chunk carries a finish reason.
func (c *ChatChunk) Terminal() bool {
	return c.FinishReason != ""
}
