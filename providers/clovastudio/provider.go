package clovastudio

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/google/uuid"

	"github.com/ncloud-labs/hyperclova-go/core"
)

// Environment variables consulted by NewFromEnv.
const (
	// EnvAPIKey is the environment variable holding the API key.
	EnvAPIKey = "HYPERCLOVA_API_KEY"

	// EnvBaseURL optionally overrides the API base URL.
	EnvBaseURL = "HYPERCLOVA_BASE_URL"
)

// ErrAPIKeyNotFound is returned when the API key environment variable
// is not set.
var ErrAPIKeyNotFound = fmt.Errorf("clovastudio: %s environment variable not set: %w", EnvAPIKey, core.ErrAuthentication)

// NewFromEnv creates a provider from the HYPERCLOVA_API_KEY and
// HYPERCLOVA_BASE_URL environment variables:
//
//	provider, err := clovastudio.NewFromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := core.NewClient(provider)
func NewFromEnv(opts ...Option) (*ClovaStudio, error) {
	apiKey := os.Getenv(EnvAPIKey)
	if apiKey == "" {
		return nil, ErrAPIKeyNotFound
	}
	if baseURL := os.Getenv(EnvBaseURL); baseURL != "" {
		opts = append([]Option{WithBaseURL(baseURL)}, opts...)
	}
	return New(apiKey, opts...), nil
}

// ClovaStudio is a provider implementation for the Naver CLOVA Studio
// HyperCLOVA X API. ClovaStudio is safe for concurrent use.
type ClovaStudio struct {
	config Config
}

// New creates a new CLOVA Studio provider with the given API key and
// options.
func New(apiKey string, opts ...Option) *ClovaStudio {
	cfg := Config{
		APIKey:     core.NewSecret(apiKey),
		BaseURL:    DefaultBaseURL,
		HTTPClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return &ClovaStudio{config: cfg}
}

// ID returns the provider identifier.
func (p *ClovaStudio) ID() string {
	return providerName
}

// Models returns the list of available models.
func (p *ClovaStudio) Models() []core.ModelInfo {
	// Return a copy to prevent mutation
	result := make([]core.ModelInfo, len(models))
	copy(result, models)
	return result
}

// Supports reports whether the provider supports the given feature.
// Per-model capability differences are enforced at request time.
func (p *ClovaStudio) Supports(feature core.Feature) bool {
	switch feature {
	case core.FeatureChat,
		core.FeatureChatStreaming,
		core.FeatureVision,
		core.FeatureThinking,
		core.FeatureStructuredOutput,
		core.FeatureFunctionCalling,
		core.FeatureEmbeddings:
		return true
	default:
		return false
	}
}

// buildHeaders constructs the HTTP headers for an API request.
// An empty requestID gets a generated UUID so every request is
// traceable.
func (p *ClovaStudio) buildHeaders(requestID string, stream bool) http.Header {
	headers := make(http.Header)

	headers.Set("Authorization", "Bearer "+p.config.APIKey.Expose())
	headers.Set("Content-Type", "application/json")

	if requestID == "" {
		requestID = uuid.NewString()
	}
	headers.Set("X-NCP-CLOVASTUDIO-REQUEST-ID", requestID)

	if stream {
		headers.Set("Accept", "text/event-stream")
	}

	// Copy any extra headers
	for key, values := range p.config.Headers {
		for _, v := range values {
			headers.Add(key, v)
		}
	}

	return headers
}

// Chat sends a non-streaming chat request.
func (p *ClovaStudio) Chat(ctx context.Context, req *core.ChatRequest) (*core.ChatResponse, error) {
	return p.doChat(ctx, req)
}

// StreamChat sends a streaming chat request delivered over channels.
func (p *ClovaStudio) StreamChat(ctx context.Context, req *core.ChatRequest) (*core.ChatStream, error) {
	return p.doStreamChat(ctx, req)
}

// OpenChunkStream sends a streaming chat request and returns a
// pull-based stream.
func (p *ClovaStudio) OpenChunkStream(ctx context.Context, req *core.ChatRequest) (core.ChunkStream, error) {
	return p.doOpenChunkStream(ctx, req)
}

// Compile-time checks that ClovaStudio implements required interfaces.
var (
	_ core.Provider          = (*ClovaStudio)(nil)
	_ core.ChunkStreamer     = (*ClovaStudio)(nil)
	_ core.EmbeddingProvider = (*ClovaStudio)(nil)
)
