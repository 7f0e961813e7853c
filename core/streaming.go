package core

import (
	"context"
	"io"
	"strings"
)

// ChatStream is the push-based streaming delivery mode. The provider
// pumps chunks into the channels from its own goroutine; the caller
// consumes them with select, so awaiting the next chunk suspends only
// the consuming goroutine.
//
// Channel rules:
//   - Providers MUST close Ch, Err, and Final when finished
//   - On context cancellation, providers MUST terminate promptly and close channels
//   - Err emits at most one error
//   - Final emits at most once, after the terminal frame arrives
//   - Chunks are delivered in wire order; nothing is buffered beyond one frame
type ChatStream struct {
	// Ch emits chunks in order. Closed when the stream ends.
	Ch <-chan ChatChunk

	// Err emits at most one error. Closed when the stream ends.
	Err <-chan error

	// Final carries the complete response assembled from the terminal
	// frame, including usage and finish reason.
	Final <-chan *ChatResponse
}

// ChunkStream is the pull-based streaming delivery mode. The caller
// advances one chunk at a time; Recv blocks on the underlying
// transport.
//
// Recv returns io.EOF after the stream ends cleanly. Close releases the
// underlying transport and is safe to call more than once and
// concurrently with Recv; abandoning a stream without draining it only
// requires Close.
type ChunkStream interface {
	Recv() (*ChatChunk, error)
	Close() error
}

// DrainStream accumulates all chunks and returns the final
// ChatResponse. Blocks until the stream completes or ctx cancels.
//
// If no terminal frame arrived, the response is assembled from the
// accumulated deltas.
func DrainStream(ctx context.Context, s *ChatStream) (*ChatResponse, error) {
	if s == nil {
		return nil, ErrInvalidRequest
	}

	var output, thinking strings.Builder
	var streamErr error
	var finalResp *ChatResponse

	ch, errCh, finalCh := s.Ch, s.Err, s.Final
	for ch != nil || errCh != nil || finalCh != nil {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case chunk, ok := <-ch:
			if !ok {
				ch = nil
				continue
			}
			output.WriteString(chunk.Delta)
			thinking.WriteString(chunk.ThinkingDelta)

		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if err != nil {
				streamErr = err
			}

		case resp, ok := <-finalCh:
			if !ok {
				finalCh = nil
				continue
			}
			finalResp = resp
		}
	}

	if streamErr != nil {
		return nil, streamErr
	}

	if finalResp == nil {
		finalResp = &ChatResponse{Role: RoleAssistant}
	}
	if finalResp.Output == "" {
		finalResp.Output = output.String()
	}
	if finalResp.Thinking == "" {
		finalResp.Thinking = thinking.String()
	}

	return finalResp, nil
}

// DrainChunkStream consumes a pull-based stream to completion and
// returns the final ChatResponse. The stream is closed before
// returning.
func DrainChunkStream(s ChunkStream) (*ChatResponse, error) {
	defer s.Close()

	var output, thinking strings.Builder
	resp := &ChatResponse{Role: RoleAssistant}

	for {
		chunk, err := s.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if chunk.Terminal() {
			// The terminal frame repeats the full content rather than a
			// delta, so it replaces the accumulated text.
			resp.FinishReason = chunk.FinishReason
			resp.Created = chunk.Created
			resp.Seed = chunk.Seed
			resp.ToolCalls = chunk.ToolCalls
			resp.AIFilter = chunk.AIFilter
			if chunk.Usage != nil {
				resp.Usage = *chunk.Usage
			}
			if chunk.Delta != "" {
				resp.Output = chunk.Delta
			}
			if chunk.ThinkingDelta != "" {
				resp.Thinking = chunk.ThinkingDelta
			}
			continue
		}

		output.WriteString(chunk.Delta)
		thinking.WriteString(chunk.ThinkingDelta)
	}

	if resp.Output == "" {
		resp.Output = output.String()
	}
	if resp.Thinking == "" {
		resp.Thinking = thinking.String()
	}

	return resp, nil
}
