package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ncloud-labs/hyperclova-go/cli/keystore"
	"github.com/ncloud-labs/hyperclova-go/cli/ui"
	"github.com/ncloud-labs/hyperclova-go/core"
	"github.com/ncloud-labs/hyperclova-go/providers/clovastudio"
)

// Exit codes
const (
	ExitSuccess    = 0
	ExitValidation = 1
	ExitAPI        = 2
	ExitConnection = 3
)

// keystoreName is the entry name under which the CLI stores the API
// key.
const keystoreName = "clovastudio"

var (
	prompt      string
	system      string
	temperature float32
	maxTokens   int
	stream      bool
	thinking    string
	imageURL    string
	aiFilters   bool
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Send a chat completion request",
	Long: `Send a chat completion request to a HyperCLOVA X model.

Examples:
  clova chat --model HCX-005 --prompt "Hello"
  clova chat --model HCX-007 --prompt "Prove it" --thinking medium
  clova chat --prompt "Describe this" --image https://example.com/cat.png
  clova chat --prompt "Hello" --stream`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringVar(&prompt, "prompt", "", "User message (required)")
	chatCmd.Flags().StringVar(&system, "system", "", "System message")
	chatCmd.Flags().Float32Var(&temperature, "temperature", 0, "Temperature (0 = use default)")
	chatCmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "Max tokens (0 = use default)")
	chatCmd.Flags().BoolVar(&stream, "stream", false, "Enable streaming output")
	chatCmd.Flags().StringVar(&thinking, "thinking", "", "Thinking effort: none, low, medium, high (HCX-007 only)")
	chatCmd.Flags().StringVar(&imageURL, "image", "", "Image URL to include (HCX-005 only)")
	chatCmd.Flags().BoolVar(&aiFilters, "ai-filters", false, "Include content-safety filter results")

	_ = chatCmd.MarkFlagRequired("prompt")
}

func runChat(cmd *cobra.Command, args []string) error {
	modelID := GetModel()
	if modelID == "" {
		return exitWithCode(ExitValidation, fmt.Errorf("model required: use --model flag or set default_model in config"))
	}

	provider, err := newProvider()
	if err != nil {
		return exitWithCode(ExitValidation, err)
	}

	client := core.NewClient(provider, clientOptions()...)
	builder := client.Chat(core.ModelID(modelID))

	if system != "" {
		builder = builder.System(system)
	}
	if imageURL != "" {
		builder = builder.UserWithImageURL(prompt, imageURL)
	} else {
		builder = builder.User(prompt)
	}

	if temperature > 0 {
		builder = builder.Temperature(temperature)
	}
	if maxTokens > 0 {
		builder = builder.MaxTokens(maxTokens)
	}
	if thinking != "" {
		builder = builder.Thinking(core.ThinkingEffort(thinking))
	}
	if aiFilters {
		builder = builder.IncludeAIFilters(true)
	}

	ctx := context.Background()

	if stream {
		return runStreamingChat(ctx, builder)
	}
	return runNonStreamingChat(ctx, builder)
}

func runNonStreamingChat(ctx context.Context, builder *core.ChatBuilder) error {
	resp, err := builder.GetResponse(ctx)
	if err != nil {
		return handleChatError(err)
	}

	if IsJSONOutput() {
		return outputJSON(resp)
	}

	fmt.Println(ui.Prompt("> " + prompt))
	if resp.HasThinking() && IsVerbose() {
		fmt.Println(ui.Thinking(resp.Thinking))
	}
	fmt.Println(resp.Output)

	if IsVerbose() {
		fmt.Fprintln(os.Stderr, ui.Usage(
			resp.Usage.PromptTokens,
			resp.Usage.CompletionTokens,
			resp.Usage.TotalTokens))
	}
	return nil
}

func runStreamingChat(ctx context.Context, builder *core.ChatBuilder) error {
	chatStream, err := builder.Stream(ctx)
	if err != nil {
		return handleChatError(err)
	}

	if IsJSONOutput() {
		// Accumulate for JSON output
		resp, err := core.DrainStream(ctx, chatStream)
		if err != nil {
			return handleChatError(err)
		}
		return outputJSON(resp)
	}

	fmt.Println(ui.Prompt("> " + prompt))

	var finalResp *core.ChatResponse
	var streamErr error

	for chunk := range chatStream.Ch {
		if chunk.ThinkingDelta != "" && IsVerbose() {
			fmt.Print(ui.Thinking(chunk.ThinkingDelta))
		}
		fmt.Print(chunk.Delta)
	}

	select {
	case err := <-chatStream.Err:
		if err != nil {
			streamErr = err
		}
	default:
	}

	select {
	case resp := <-chatStream.Final:
		finalResp = resp
	default:
	}

	fmt.Println()

	if streamErr != nil {
		return handleChatError(streamErr)
	}

	if IsVerbose() && finalResp != nil {
		fmt.Fprintln(os.Stderr, ui.Usage(
			finalResp.Usage.PromptTokens,
			finalResp.Usage.CompletionTokens,
			finalResp.Usage.TotalTokens))
	}

	return nil
}

// newProvider builds a CLOVA Studio provider with the API key from
// the environment or the keystore, and config overrides applied.
func newProvider() (*clovastudio.ClovaStudio, error) {
	var opts []clovastudio.Option
	if c := GetConfig(); c != nil {
		if c.BaseURL != "" {
			opts = append(opts, clovastudio.WithBaseURL(c.BaseURL))
		}
		if c.TimeoutSeconds > 0 {
			opts = append(opts, clovastudio.WithTimeout(time.Duration(c.TimeoutSeconds)*time.Second))
		}
	}

	// Environment wins over the keystore.
	if os.Getenv(clovastudio.EnvAPIKey) != "" {
		return clovastudio.NewFromEnv(opts...)
	}

	ks, err := keystore.NewKeystore()
	if err != nil {
		return nil, fmt.Errorf("failed to open keystore: %w", err)
	}

	apiKey, err := ks.Get(keystoreName)
	if err != nil {
		if _, ok := err.(*keystore.ErrKeyNotFound); ok {
			return nil, fmt.Errorf("no API key found: set %s or run 'clova keys set'", clovastudio.EnvAPIKey)
		}
		return nil, fmt.Errorf("failed to get API key: %w", err)
	}

	return clovastudio.New(apiKey, opts...), nil
}

// clientOptions maps config values onto client options.
func clientOptions() []core.ClientOption {
	var opts []core.ClientOption
	if c := GetConfig(); c != nil && c.MaxRetries > 0 {
		opts = append(opts, core.WithRetryPolicy(core.NewRetryPolicy(core.RetryConfig{
			MaxAttempts: c.MaxRetries,
		})))
	}
	return opts
}

func handleChatError(err error) error {
	var apiErr *core.APIError
	if errors.As(err, &apiErr) {
		if IsJSONOutput() {
			outputErrorJSON(apiErr)
		} else {
			fmt.Fprintln(os.Stderr, ui.Error("Error: "+apiErr.Message))
			if apiErr.RequestID != "" {
				fmt.Fprintf(os.Stderr, "  Request ID: %s\n", apiErr.RequestID)
			}
		}

		switch {
		case errors.Is(err, core.ErrConnection) || errors.Is(err, core.ErrTimeout):
			return exitWithCode(ExitConnection, err)
		default:
			return exitWithCode(ExitAPI, err)
		}
	}

	// Validation errors
	if errors.Is(err, core.ErrModelRequired) || errors.Is(err, core.ErrNoMessages) {
		if IsJSONOutput() {
			outputSimpleErrorJSON("validation_error", err.Error())
		} else {
			fmt.Fprintln(os.Stderr, ui.Error(fmt.Sprintf("Error: %v", err)))
		}
		return exitWithCode(ExitValidation, err)
	}

	// Generic error
	if IsJSONOutput() {
		outputSimpleErrorJSON("error", err.Error())
	} else {
		fmt.Fprintln(os.Stderr, ui.Error(fmt.Sprintf("Error: %v", err)))
	}
	return exitWithCode(ExitAPI, err)
}

func outputJSON(resp *core.ChatResponse) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func outputErrorJSON(apiErr *core.APIError) {
	output := map[string]any{
		"error": map[string]any{
			"code":       apiErr.Code,
			"message":    apiErr.Message,
			"status":     apiErr.Status,
			"request_id": apiErr.RequestID,
		},
	}

	enc := json.NewEncoder(os.Stderr)
	enc.SetIndent("", "  ")
	enc.Encode(output)
}

func outputSimpleErrorJSON(errType, message string) {
	output := map[string]any{
		"error": map[string]any{
			"type":    errType,
			"message": message,
		},
	}

	enc := json.NewEncoder(os.Stderr)
	enc.SetIndent("", "  ")
	enc.Encode(output)
}

// exitError wraps an error with an exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) ExitCode() int {
	return e.code
}

func exitWithCode(code int, err error) error {
	return &exitError{code: code, err: err}
}
