package clovastudio

import (
	"encoding/json"

	"github.com/ncloud-labs/hyperclova-go/core"
)

// buildRequest creates a CLOVA Studio request body from a ChatRequest.
// The caller must have run validateRequest first.
func buildRequest(req *core.ChatRequest) *csRequest {
	out := &csRequest{
		Messages:          mapMessages(req.Messages),
		Temperature:       req.Temperature,
		TopP:              req.TopP,
		TopK:              req.TopK,
		RepetitionPenalty: req.RepetitionPenalty,
		Stop:              req.Stop,
		Seed:              req.Seed,
		IncludeAIFilters:  req.IncludeAIFilters,
	}

	applyTokenLimits(out, req)

	if req.Thinking != nil {
		out.Thinking = &csThinking{Effort: string(req.Thinking.Effort)}
	} else if req.ResponseFormat != nil && req.Model == ModelHCX007 {
		// Structured output requires thinking.effort = "none".
		out.Thinking = &csThinking{Effort: string(core.ThinkingEffortNone)}
	}

	if len(req.Tools) > 0 {
		out.Tools = mapTools(req.Tools)
	}
	if req.ToolChoice != nil {
		out.ToolChoice = mapToolChoice(req.ToolChoice)
	}
	if req.ResponseFormat != nil {
		out.ResponseFormat = &csResponseFormat{
			Type:   req.ResponseFormat.Type,
			Schema: req.ResponseFormat.Schema,
		}
	}

	return out
}

// applyTokenLimits resolves the token limit fields per model family.
// HCX-007 always takes maxCompletionTokens: an explicit value wins,
// then a folded MaxTokens, then the thinking-effort budget, then the
// fallback. Other models take maxTokens with MaxCompletionTokens
// folded in, and no synthesized default.
func applyTokenLimits(out *csRequest, req *core.ChatRequest) {
	if req.Model == ModelHCX007 {
		switch {
		case req.MaxCompletionTokens != nil:
			out.MaxCompletionTokens = req.MaxCompletionTokens
		case req.MaxTokens != nil:
			out.MaxCompletionTokens = req.MaxTokens
		case req.Thinking != nil:
			budget, ok := thinkingBudgets[req.Thinking.Effort]
			if !ok {
				budget = thinkingBudgets[core.ThinkingEffortLow]
			}
			out.MaxCompletionTokens = &budget
		default:
			fallback := defaultCompletionTokens
			out.MaxCompletionTokens = &fallback
		}
		return
	}

	switch {
	case req.MaxTokens != nil:
		out.MaxTokens = req.MaxTokens
	case req.MaxCompletionTokens != nil:
		out.MaxTokens = req.MaxCompletionTokens
	}
}

// mapMessages converts messages to the wire format. Messages with
// parts become content arrays; plain messages keep string content.
func mapMessages(msgs []core.Message) []csMessage {
	result := make([]csMessage, len(msgs))
	for i, msg := range msgs {
		wire := csMessage{
			Role:       string(msg.Role),
			ToolCallID: msg.ToolCallID,
		}

		if len(msg.Parts) > 0 {
			wire.Content = mapParts(msg.Parts)
		} else {
			wire.Content = msg.Content
		}

		if len(msg.ToolCalls) > 0 {
			wire.ToolCalls = make([]csToolCall, len(msg.ToolCalls))
			for j, tc := range msg.ToolCalls {
				wire.ToolCalls[j] = csToolCall{
					ID:   tc.ID,
					Type: "function",
					Function: csCallFunction{
						Name:      tc.Name,
						Arguments: tc.Arguments,
					},
				}
			}
		}

		result[i] = wire
	}
	return result
}

// mapParts converts content parts to the wire content array.
func mapParts(parts []core.ContentPart) []csContentPart {
	result := make([]csContentPart, 0, len(parts))
	for _, part := range parts {
		switch p := part.(type) {
		case core.TextPart:
			result = append(result, csContentPart{
				Type: "text",
				Text: p.Text,
			})
		case core.ImagePart:
			item := csContentPart{Type: "image_url"}
			if p.URL != "" {
				item.ImageURL = &csImageURL{URL: p.URL}
			} else {
				item.DataURI = &csDataURI{Data: p.Data}
			}
			result = append(result, item)
		}
	}
	return result
}

// mapTools converts tool definitions to the wire format.
func mapTools(ts []core.Tool) []csTool {
	result := make([]csTool, len(ts))
	for i, t := range ts {
		result[i] = csTool{
			Type: t.Type,
			Function: csFunction{
				Name:        t.Function.Name,
				Description: t.Function.Description,
				Parameters: csFunctionParams{
					Type:       t.Function.Parameters.Type,
					Properties: t.Function.Parameters.Properties,
					Required:   t.Function.Parameters.Required,
				},
			},
		}
	}
	return result
}

// mapToolChoice converts a tool choice to its wire form: "auto" and
// "none" travel as bare strings, a forced function as an object.
func mapToolChoice(tc *core.ToolChoice) any {
	if tc.Mode == "function" {
		return csToolChoiceFunction{
			Type:     "function",
			Function: csToolChoiceName{Name: tc.FunctionName},
		}
	}
	return tc.Mode
}

// mapResult converts a chat completion result to a ChatResponse.
func mapResult(res *csResult) (*core.ChatResponse, error) {
	toolCalls, err := mapToolCalls(res.Message.ToolCalls)
	if err != nil {
		return nil, err
	}

	resp := &core.ChatResponse{
		Role:         core.Role(res.Message.Role),
		Output:       res.Message.Content,
		Thinking:     res.Message.ThinkingContent,
		ToolCalls:    toolCalls,
		FinishReason: core.FinishReason(res.FinishReason),
		Created:      res.Created,
		Seed:         res.Seed,
		AIFilter:     mapAIFilter(res.AIFilter),
	}
	if res.Usage != nil {
		resp.Usage = mapUsage(res.Usage)
	}
	return resp, nil
}

// mapChunk converts a streaming token or result event to a ChatChunk.
func mapChunk(res *csResult) (*core.ChatChunk, error) {
	toolCalls, err := mapToolCalls(res.Message.ToolCalls)
	if err != nil {
		return nil, err
	}

	chunk := &core.ChatChunk{
		Role:          core.Role(res.Message.Role),
		Delta:         res.Message.Content,
		ThinkingDelta: res.Message.ThinkingContent,
		ToolCalls:     toolCalls,
		FinishReason:  core.FinishReason(res.FinishReason),
		Created:       res.Created,
		Seed:          res.Seed,
		AIFilter:      mapAIFilter(res.AIFilter),
	}
	if res.Usage != nil {
		usage := mapUsage(res.Usage)
		chunk.Usage = &usage
	}
	return chunk, nil
}

// mapToolCalls converts wire tool calls, validating the argument JSON.
func mapToolCalls(calls []csToolCall) ([]core.ToolCall, error) {
	if len(calls) == 0 {
		return nil, nil
	}

	result := make([]core.ToolCall, len(calls))
	for i, call := range calls {
		args := call.Function.Arguments
		if len(args) == 0 {
			args = json.RawMessage(`{}`)
		}
		if !json.Valid(args) {
			return nil, ErrToolArgsInvalidJSON
		}
		result[i] = core.ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: args,
		}
	}
	return result, nil
}

func mapUsage(u *csUsage) core.TokenUsage {
	return core.TokenUsage{
		PromptTokens:            u.PromptTokens,
		CompletionTokens:        u.CompletionTokens,
		TotalTokens:             u.TotalTokens,
		CompletionTokensDetails: u.CompletionTokensDetails,
	}
}

func mapAIFilter(filters []csAIFilter) []core.AIFilterResult {
	if len(filters) == 0 {
		return nil
	}
	result := make([]core.AIFilterResult, len(filters))
	for i, f := range filters {
		result[i] = core.AIFilterResult{
			GroupName: f.GroupName,
			Name:      f.Name,
			Score:     f.Score,
			Result:    f.Result,
		}
	}
	return result
}
