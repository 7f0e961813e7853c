// Package tools provides helpers for defining, registering, and
// executing function-calling tools.
package tools

import (
	"context"
	"encoding/json"

	"github.com/ncloud-labs/hyperclova-go/core"
)

// Tool defines the interface for model-callable tools.
// Tools carry a definition for the request and a Call method for
// execution.
type Tool interface {
	// Definition returns the function definition offered to the model.
	Definition() core.FunctionDefinition

	// Call executes the tool with the given arguments.
	// The args parameter contains the raw JSON arguments from the model.
	Call(ctx context.Context, args json.RawMessage) (any, error)
}

// Func builds a Tool from a function definition and a handler.
//
//	weather := tools.Func(core.FunctionDefinition{
//	    Name:        "get_weather",
//	    Description: "Get the current weather for a location",
//	    Parameters: core.FunctionParameters{
//	        Type: "object",
//	        Properties: map[string]any{
//	            "location": map[string]any{"type": "string"},
//	        },
//	        Required: []string{"location"},
//	    },
//	}, handleWeather)
func Func(def core.FunctionDefinition, handler func(ctx context.Context, args json.RawMessage) (any, error)) Tool {
	return funcTool{def: def, handler: handler}
}

type funcTool struct {
	def     core.FunctionDefinition
	handler func(ctx context.Context, args json.RawMessage) (any, error)
}

func (t funcTool) Definition() core.FunctionDefinition {
	return t.def
}

func (t funcTool) Call(ctx context.Context, args json.RawMessage) (any, error) {
	return t.handler(ctx, args)
}

// Definitions converts tools to the request form for ChatRequest.Tools.
func Definitions(ts ...Tool) []core.Tool {
	result := make([]core.Tool, len(ts))
	for i, t := range ts {
		result[i] = core.NewFunctionTool(t.Definition())
	}
	return result
}
