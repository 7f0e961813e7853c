package clovastudio

import "github.com/ncloud-labs/hyperclova-go/core"

// Model IDs available from CLOVA Studio.
const (
	// ModelHCX005 is the flagship multimodal model with vision support.
	ModelHCX005 core.ModelID = "HCX-005"

	// ModelHCX007 is the reasoning model with hidden thinking and
	// structured output support.
	ModelHCX007 core.ModelID = "HCX-007"

	// ModelHCXDash002 is the lightweight, lower-latency model.
	ModelHCXDash002 core.ModelID = "HCX-DASH-002"
)

// models is the registry of known models and their capabilities.
var models = []core.ModelInfo{
	{
		ID:          ModelHCX005,
		DisplayName: "HyperCLOVA X HCX-005",
		Capabilities: []core.Feature{
			core.FeatureChat,
			core.FeatureChatStreaming,
			core.FeatureVision,
			core.FeatureFunctionCalling,
		},
	},
	{
		ID:          ModelHCX007,
		DisplayName: "HyperCLOVA X HCX-007",
		Capabilities: []core.Feature{
			core.FeatureChat,
			core.FeatureChatStreaming,
			core.FeatureThinking,
			core.FeatureStructuredOutput,
			core.FeatureFunctionCalling,
		},
	},
	{
		ID:          ModelHCXDash002,
		DisplayName: "HyperCLOVA X DASH HCX-DASH-002",
		Capabilities: []core.Feature{
			core.FeatureChat,
			core.FeatureChatStreaming,
			core.FeatureFunctionCalling,
		},
	},
}

// findModel returns the model info for the given ID, or false if the
// model is unknown.
func findModel(id core.ModelID) (core.ModelInfo, bool) {
	for _, m := range models {
		if m.ID == id {
			return m, true
		}
	}
	return core.ModelInfo{}, false
}

// thinkingBudgets maps a thinking effort level to the default
// maxCompletionTokens for HCX-007 when the caller sets no explicit
// limit.
var thinkingBudgets = map[core.ThinkingEffort]int{
	core.ThinkingEffortNone:   512,
	core.ThinkingEffortLow:    5120,
	core.ThinkingEffortMedium: 10240,
	core.ThinkingEffortHigh:   20480,
}

// defaultCompletionTokens is the HCX-007 fallback when neither an
// explicit limit nor a thinking config is present.
const defaultCompletionTokens = 2048
