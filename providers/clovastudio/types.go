package clovastudio

import "encoding/json"

// Wire types for the CLOVA Studio API. Field names follow the API's
// camelCase convention exactly.

// csEnvelope is the top-level response wrapper.
type csEnvelope struct {
	Status csStatus        `json:"status"`
	Result json.RawMessage `json:"result"`
}

// csStatus carries the API status code and message.
// Code "20000" means success.
type csStatus struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const statusCodeOK = "20000"

// csRequest is the chat completion request body.
type csRequest struct {
	Messages            []csMessage       `json:"messages"`
	Temperature         *float32          `json:"temperature,omitempty"`
	TopP                *float32          `json:"topP,omitempty"`
	TopK                *int              `json:"topK,omitempty"`
	MaxTokens           *int              `json:"maxTokens,omitempty"`
	MaxCompletionTokens *int              `json:"maxCompletionTokens,omitempty"`
	RepetitionPenalty   *float32          `json:"repetitionPenalty,omitempty"`
	Stop                []string          `json:"stop,omitempty"`
	Seed                *int64            `json:"seed,omitempty"`
	IncludeAIFilters    *bool             `json:"includeAiFilters,omitempty"`
	Thinking            *csThinking       `json:"thinking,omitempty"`
	Tools               []csTool          `json:"tools,omitempty"`
	ToolChoice          any               `json:"toolChoice,omitempty"`
	ResponseFormat      *csResponseFormat `json:"responseFormat,omitempty"`
}

// csMessage is a single conversation message. Content is either a
// plain string or a []csContentPart for multimodal messages.
type csMessage struct {
	Role       string       `json:"role"`
	Content    any          `json:"content"`
	ToolCalls  []csToolCall `json:"toolCalls,omitempty"`
	ToolCallID string       `json:"toolCallId,omitempty"`
}

// csContentPart is one item of a multimodal content array.
type csContentPart struct {
	Type     string      `json:"type"`
	Text     string      `json:"text,omitempty"`
	ImageURL *csImageURL `json:"imageUrl,omitempty"`
	DataURI  *csDataURI  `json:"dataUri,omitempty"`
}

type csImageURL struct {
	URL string `json:"url"`
}

type csDataURI struct {
	Data string `json:"data"`
}

type csThinking struct {
	Effort string `json:"effort"`
}

type csTool struct {
	Type     string     `json:"type"`
	Function csFunction `json:"function"`
}

type csFunction struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Parameters  csFunctionParams `json:"parameters"`
}

type csFunctionParams struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Required   []string       `json:"required,omitempty"`
}

// csToolChoiceFunction is the object form of toolChoice used to force
// a specific function. The string forms "auto" and "none" are sent as
// bare strings.
type csToolChoiceFunction struct {
	Type     string           `json:"type"`
	Function csToolChoiceName `json:"function"`
}

type csToolChoiceName struct {
	Name string `json:"name"`
}

type csResponseFormat struct {
	Type   string         `json:"type"`
	Schema map[string]any `json:"schema"`
}

// csResult is the chat completion result inside the envelope. The
// streaming token and result events share the same shape; token events
// carry deltas and leave finishReason empty until the terminal frame.
type csResult struct {
	Message      csResultMessage `json:"message"`
	FinishReason string          `json:"finishReason,omitempty"`
	Created      int64           `json:"created"`
	Seed         int64           `json:"seed"`
	Usage        *csUsage        `json:"usage,omitempty"`
	AIFilter     []csAIFilter    `json:"aiFilter,omitempty"`
}

type csResultMessage struct {
	Role            string       `json:"role"`
	Content         string       `json:"content"`
	ThinkingContent string       `json:"thinkingContent,omitempty"`
	ToolCalls       []csToolCall `json:"toolCalls,omitempty"`
}

// csToolCall is a tool invocation in a response. Arguments is kept raw
// since the API returns a JSON object.
type csToolCall struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Function csCallFunction `json:"function"`
}

type csCallFunction struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

type csUsage struct {
	PromptTokens            int            `json:"promptTokens"`
	CompletionTokens        int            `json:"completionTokens"`
	TotalTokens             int            `json:"totalTokens"`
	CompletionTokensDetails map[string]int `json:"completionTokensDetails,omitempty"`
}

type csAIFilter struct {
	GroupName string `json:"groupName"`
	Name      string `json:"name"`
	Score     string `json:"score"`
	Result    string `json:"result,omitempty"`
}

// csErrorEvent is the payload of an SSE "error" event.
type csErrorEvent struct {
	Status csStatus `json:"status"`
}

// csEmbeddingRequest is the embedding request body.
type csEmbeddingRequest struct {
	Text string `json:"text"`
}

// csEmbeddingResult is the embedding result inside the envelope.
type csEmbeddingResult struct {
	Embedding   []float64 `json:"embedding"`
	InputTokens int       `json:"inputTokens"`
}
