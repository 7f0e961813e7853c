package clovastudio

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ncloud-labs/hyperclova-go/core"
)

// embeddingPath is the API endpoint for text embeddings.
const embeddingPath = "/v1/api-tools/embedding/v2"

// maxEmbeddingTextLen is the input cap enforced before any network
// I/O.
const maxEmbeddingTextLen = 8192

// CreateEmbedding generates a 1024-dimensional embedding for the given
// text.
func (p *ClovaStudio) CreateEmbedding(ctx context.Context, req *core.EmbeddingRequest) (*core.EmbeddingResponse, error) {
	if req.Text == "" {
		return nil, &core.APIError{
			Provider: providerName,
			Message:  "embedding text must not be empty",
			Err:      core.ErrInvalidRequest,
		}
	}
	if len(req.Text) > maxEmbeddingTextLen {
		return nil, &core.APIError{
			Provider: providerName,
			Message:  fmt.Sprintf("embedding text exceeds %d characters", maxEmbeddingTextLen),
			Err:      core.ErrInvalidRequest,
		}
	}

	url := p.config.BaseURL + embeddingPath
	result, err := p.postEnvelope(ctx, url, req.RequestID, csEmbeddingRequest{Text: req.Text})
	if err != nil {
		return nil, err
	}

	var res csEmbeddingResult
	if err := json.Unmarshal(result, &res); err != nil {
		return nil, newDecodeError(err)
	}

	return &core.EmbeddingResponse{
		Embedding:   res.Embedding,
		InputTokens: res.InputTokens,
	}, nil
}
