package core

import "context"

// EmbeddingRequest represents a request to embed one text.
type EmbeddingRequest struct {
	// Text is the input to embed. The API caps it at 8192 length units;
	// the provider rejects longer inputs before any network I/O.
	Text string

	// RequestID is sent as the X-NCP-CLOVASTUDIO-REQUEST-ID header.
	// Generated when empty.
	RequestID string
}

// EmbeddingResponse contains the generated embedding vector.
type EmbeddingResponse struct {
	Embedding   []float64 `json:"embedding"`
	InputTokens int       `json:"input_tokens"`
}

// Dimension returns the embedding vector dimension.
func (r *EmbeddingResponse) Dimension() int {
	return len(r.Embedding)
}

// EmbeddingProvider is an optional interface for providers that support
// text embeddings.
type EmbeddingProvider interface {
	// CreateEmbedding generates an embedding for the given text.
	CreateEmbedding(ctx context.Context, req *EmbeddingRequest) (*EmbeddingResponse, error)
}
