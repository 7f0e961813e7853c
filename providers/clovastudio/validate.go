package clovastudio

import (
	"github.com/ncloud-labs/hyperclova-go/core"
)

// validateRequest checks model capabilities and parameter consistency
// before any network I/O.
func validateRequest(req *core.ChatRequest) error {
	model, ok := findModel(req.Model)
	if !ok {
		return &core.APIError{
			Provider: providerName,
			Message:  "unknown model " + string(req.Model),
			Err:      core.ErrInvalidRequest,
		}
	}

	if req.Thinking != nil && !model.HasCapability(core.FeatureThinking) {
		return newCapabilityError(req.Model, core.FeatureThinking)
	}
	if req.ResponseFormat != nil && !model.HasCapability(core.FeatureStructuredOutput) {
		return newCapabilityError(req.Model, core.FeatureStructuredOutput)
	}
	if len(req.Tools) > 0 && !model.HasCapability(core.FeatureFunctionCalling) {
		return newCapabilityError(req.Model, core.FeatureFunctionCalling)
	}
	if hasImageContent(req.Messages) && !model.HasCapability(core.FeatureVision) {
		return newCapabilityError(req.Model, core.FeatureVision)
	}

	if req.MaxTokens != nil && req.MaxCompletionTokens != nil {
		return &core.APIError{
			Provider: providerName,
			Message:  "max_tokens and max_completion_tokens are mutually exclusive",
			Err:      core.ErrInvalidRequest,
		}
	}

	return nil
}

// hasImageContent reports whether any message carries an image part.
func hasImageContent(msgs []core.Message) bool {
	for _, msg := range msgs {
		for _, part := range msg.Parts {
			if part.ContentType() == "image_url" {
				return true
			}
		}
	}
	return false
}
