package clovastudio

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"github.com/ncloud-labs/hyperclova-go/core"
)

// Streaming event types on the wire.
const (
	eventToken  = "token"
	eventResult = "result"
	eventError  = "error"
)

// streamRequest issues the streaming POST and returns the open
// response body. The caller owns closing it.
func (p *ClovaStudio) streamRequest(ctx context.Context, req *core.ChatRequest) (io.ReadCloser, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	body, err := json.Marshal(buildRequest(req))
	if err != nil {
		return nil, newDecodeError(err)
	}

	url := p.config.BaseURL + chatCompletionsPath + string(req.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, newConnectionError(err)
	}

	headers := p.buildHeaders(req.RequestID, true)
	sentRequestID := headers.Get("X-NCP-CLOVASTUDIO-REQUEST-ID")
	for key, values := range headers {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	resp, err := p.config.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, newConnectionError(err)
	}

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		respBody, _ := io.ReadAll(resp.Body)
		return nil, normalizeError(resp.StatusCode, respBody, sentRequestID)
	}

	return resp.Body, nil
}

// frameReader pulls parsed SSE events off a response body one at a
// time, buffering events when a single read completes several frames.
type frameReader struct {
	body    io.ReadCloser
	parser  sseParser
	pending []sseEvent
	readBuf []byte
}

func newFrameReader(body io.ReadCloser) *frameReader {
	return &frameReader{
		body:    body,
		readBuf: make([]byte, 4096),
	}
}

// next returns the next SSE event. io.EOF signals a clean end of
// stream.
func (r *frameReader) next() (sseEvent, error) {
	for {
		if len(r.pending) > 0 {
			ev := r.pending[0]
			r.pending = r.pending[1:]
			return ev, nil
		}

		n, err := r.body.Read(r.readBuf)
		if n > 0 {
			r.pending = r.parser.feed(string(r.readBuf[:n]))
		}
		if err != nil {
			if len(r.pending) > 0 {
				continue
			}
			if err == io.EOF {
				return sseEvent{}, io.EOF
			}
			return sseEvent{}, newConnectionError(err)
		}
	}
}

// decodedEvent is one classified streaming event.
type decodedEvent struct {
	chunk  *core.ChatChunk    // token event
	result *core.ChatResponse // result event (terminal)
}

// decodeEvent classifies and decodes an SSE event. Events with an
// unknown type decode to an empty decodedEvent and are skipped by
// callers. Error events and malformed payloads fail the stream.
func decodeEvent(ev sseEvent) (decodedEvent, error) {
	switch ev.Event {
	case eventError:
		var errEv csErrorEvent
		if err := json.Unmarshal([]byte(ev.Data), &errEv); err != nil {
			return decodedEvent{}, newStreamingError("invalid JSON in SSE error event: "+err.Error(), "")
		}
		msg := errEv.Status.Message
		if msg == "" {
			msg = "unknown streaming error"
		}
		return decodedEvent{}, newStreamingError(msg, errEv.Status.Code)

	case eventToken:
		var res csResult
		if err := json.Unmarshal([]byte(ev.Data), &res); err != nil {
			return decodedEvent{}, newStreamingError("invalid JSON in SSE data: "+err.Error(), "")
		}
		chunk, err := mapChunk(&res)
		if err != nil {
			return decodedEvent{}, newStreamingError(err.Error(), "")
		}
		return decodedEvent{chunk: chunk}, nil

	case eventResult:
		var res csResult
		if err := json.Unmarshal([]byte(ev.Data), &res); err != nil {
			return decodedEvent{}, newStreamingError("invalid JSON in SSE data: "+err.Error(), "")
		}
		resp, err := mapResult(&res)
		if err != nil {
			return decodedEvent{}, newStreamingError(err.Error(), "")
		}
		return decodedEvent{result: resp}, nil

	default:
		return decodedEvent{}, nil
	}
}

// doStreamChat performs a streaming chat completion delivered over
// channels.
func (p *ClovaStudio) doStreamChat(ctx context.Context, req *core.ChatRequest) (*core.ChatStream, error) {
	body, err := p.streamRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	chunkCh := make(chan core.ChatChunk, 100)
	errCh := make(chan error, 1)
	finalCh := make(chan *core.ChatResponse, 1)

	go p.pumpStream(ctx, body, chunkCh, errCh, finalCh)

	return &core.ChatStream{
		Ch:    chunkCh,
		Err:   errCh,
		Final: finalCh,
	}, nil
}

// pumpStream reads SSE events and forwards them on the channels.
// Runs in its own goroutine; the body is closed and all channels are
// closed on every exit path.
func (p *ClovaStudio) pumpStream(
	ctx context.Context,
	body io.ReadCloser,
	chunkCh chan<- core.ChatChunk,
	errCh chan<- error,
	finalCh chan<- *core.ChatResponse,
) {
	defer body.Close()
	defer close(chunkCh)
	defer close(errCh)
	defer close(finalCh)

	reader := newFrameReader(body)
	var final *core.ChatResponse

	for {
		select {
		case <-ctx.Done():
			errCh <- ctx.Err()
			return
		default:
		}

		ev, err := reader.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			errCh <- err
			return
		}

		decoded, err := decodeEvent(ev)
		if err != nil {
			errCh <- err
			return
		}

		switch {
		case decoded.result != nil:
			final = decoded.result
		case decoded.chunk != nil:
			select {
			case chunkCh <- *decoded.chunk:
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			}
		}
	}

	if final != nil {
		finalCh <- final
	}
}

// chunkStream is the pull-based stream over an open response body.
type chunkStream struct {
	reader    *frameReader
	body      io.ReadCloser
	closeOnce sync.Once

	// err is sticky: once the stream fails or ends, Recv keeps
	// returning the same error.
	err error
}

// doOpenChunkStream performs a streaming chat completion consumed by
// pulling chunks.
func (p *ClovaStudio) doOpenChunkStream(ctx context.Context, req *core.ChatRequest) (core.ChunkStream, error) {
	body, err := p.streamRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	return &chunkStream{
		reader: newFrameReader(body),
		body:   body,
	}, nil
}

// Recv returns the next chunk. The terminal frame arrives as a chunk
// carrying the finish reason and usage; the following call returns
// io.EOF.
func (s *chunkStream) Recv() (*core.ChatChunk, error) {
	if s.err != nil {
		return nil, s.err
	}

	for {
		ev, err := s.reader.next()
		if err != nil {
			s.err = err
			s.Close()
			return nil, err
		}

		decoded, err := decodeEvent(ev)
		if err != nil {
			s.err = err
			s.Close()
			return nil, err
		}

		switch {
		case decoded.result != nil:
			// Deliver the terminal frame as a chunk; the stream ends on
			// the next call.
			s.err = io.EOF
			s.Close()
			return resultToChunk(decoded.result), nil
		case decoded.chunk != nil:
			return decoded.chunk, nil
		}
	}
}

// Close releases the underlying transport. Safe to call more than
// once and concurrently with Recv.
func (s *chunkStream) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = s.body.Close()
	})
	return err
}

// resultToChunk converts the terminal result into its chunk form.
func resultToChunk(resp *core.ChatResponse) *core.ChatChunk {
	chunk := &core.ChatChunk{
		Role:          resp.Role,
		Delta:         resp.Output,
		ThinkingDelta: resp.Thinking,
		ToolCalls:     resp.ToolCalls,
		FinishReason:  resp.FinishReason,
		Created:       resp.Created,
		Seed:          resp.Seed,
		AIFilter:      resp.AIFilter,
	}
	usage := resp.Usage
	chunk.Usage = &usage
	return chunk
}
