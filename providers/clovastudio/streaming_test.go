package clovastudio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/ncloud-labs/hyperclova-go/core"
)

func sseHandler(frames []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)

		flusher, _ := w.(http.Flusher)
		for _, frame := range frames {
			fmt.Fprint(w, frame)
			flusher.Flush()
		}
	}
}

func testChatRequest() *core.ChatRequest {
	return &core.ChatRequest{
		Model: ModelHCX005,
		Messages: []core.Message{
			{Role: core.RoleUser, Content: "Test"},
		},
	}
}

func TestStreamChatSuccess(t *testing.T) {
	frames := []string{
		"event: token\ndata: {\"message\":{\"role\":\"assistant\",\"content\":\"Hello\"},\"created\":1700000000000,\"seed\":1}\n\n",
		"event: token\ndata: {\"message\":{\"role\":\"assistant\",\"content\":\" world\"},\"created\":1700000000000,\"seed\":1}\n\n",
		"event: result\ndata: {\"message\":{\"role\":\"assistant\",\"content\":\"Hello world\"},\"finishReason\":\"stop\",\"created\":1700000000000,\"seed\":1,\"usage\":{\"promptTokens\":5,\"completionTokens\":2,\"totalTokens\":7}}\n\n",
	}
	server := httptest.NewServer(sseHandler(frames))
	defer server.Close()

	p := New("test-key", WithBaseURL(server.URL))
	stream, err := p.StreamChat(context.Background(), testChatRequest())
	if err != nil {
		t.Fatalf("StreamChat() error = %v", err)
	}

	var content strings.Builder
	for chunk := range stream.Ch {
		content.WriteString(chunk.Delta)
	}
	if content.String() != "Hello world" {
		t.Errorf("content = %q, want %q", content.String(), "Hello world")
	}

	select {
	case err := <-stream.Err:
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	default:
	}

	select {
	case resp := <-stream.Final:
		if resp == nil {
			t.Fatal("Final response is nil")
		}
		if resp.Output != "Hello world" {
			t.Errorf("Output = %q", resp.Output)
		}
		if resp.FinishReason != core.FinishReasonStop {
			t.Errorf("FinishReason = %q", resp.FinishReason)
		}
		if resp.Usage.TotalTokens != 7 {
			t.Errorf("TotalTokens = %d, want 7", resp.Usage.TotalTokens)
		}
	default:
		t.Error("No final response received")
	}
}

func TestStreamChatErrorEvent(t *testing.T) {
	frames := []string{
		"event: token\ndata: {\"message\":{\"role\":\"assistant\",\"content\":\"part\"},\"created\":1,\"seed\":1}\n\n",
		"event: error\ndata: {\"status\":{\"code\":\"50000\",\"message\":\"internal error\"}}\n\n",
	}
	server := httptest.NewServer(sseHandler(frames))
	defer server.Close()

	p := New("test-key", WithBaseURL(server.URL))
	stream, err := p.StreamChat(context.Background(), testChatRequest())
	if err != nil {
		t.Fatalf("StreamChat() error = %v", err)
	}

	for range stream.Ch {
	}

	err = <-stream.Err
	if err == nil {
		t.Fatal("expected stream error")
	}
	if !errors.Is(err, core.ErrStreaming) {
		t.Errorf("error = %v, want ErrStreaming", err)
	}
	var apiErr *core.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != "50000" {
		t.Errorf("error = %+v, want code 50000", err)
	}

	// No final response after a fatal error.
	if resp := <-stream.Final; resp != nil {
		t.Errorf("Final = %+v, want nil", resp)
	}
}

func TestStreamChatInvalidJSON(t *testing.T) {
	frames := []string{"event: token\ndata: {not json}\n\n"}
	server := httptest.NewServer(sseHandler(frames))
	defer server.Close()

	p := New("test-key", WithBaseURL(server.URL))
	stream, err := p.StreamChat(context.Background(), testChatRequest())
	if err != nil {
		t.Fatalf("StreamChat() error = %v", err)
	}

	for range stream.Ch {
	}
	if err := <-stream.Err; !errors.Is(err, core.ErrStreaming) {
		t.Errorf("error = %v, want ErrStreaming", err)
	}
}

func TestStreamChatHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"status":{"code":"42901","message":"rate limited"}}`)
	}))
	defer server.Close()

	p := New("test-key", WithBaseURL(server.URL))
	_, err := p.StreamChat(context.Background(), testChatRequest())
	if !errors.Is(err, core.ErrRateLimited) {
		t.Errorf("error = %v, want ErrRateLimited", err)
	}
}

func TestStreamChatThinkingDeltas(t *testing.T) {
	frames := []string{
		"event: token\ndata: {\"message\":{\"role\":\"assistant\",\"thinkingContent\":\"hmm\"},\"created\":1,\"seed\":1}\n\n",
		"event: token\ndata: {\"message\":{\"role\":\"assistant\",\"content\":\"answer\"},\"created\":1,\"seed\":1}\n\n",
		"event: result\ndata: {\"message\":{\"role\":\"assistant\",\"content\":\"answer\",\"thinkingContent\":\"hmm\"},\"finishReason\":\"stop\",\"created\":1,\"seed\":1,\"usage\":{\"promptTokens\":1,\"completionTokens\":1,\"totalTokens\":2}}\n\n",
	}
	server := httptest.NewServer(sseHandler(frames))
	defer server.Close()

	p := New("test-key", WithBaseURL(server.URL))
	req := testChatRequest()
	req.Model = ModelHCX007
	req.Thinking = &core.ThinkingConfig{Effort: core.ThinkingEffortLow}

	stream, err := p.StreamChat(context.Background(), req)
	if err != nil {
		t.Fatalf("StreamChat() error = %v", err)
	}

	var thinking, content strings.Builder
	for chunk := range stream.Ch {
		thinking.WriteString(chunk.ThinkingDelta)
		content.WriteString(chunk.Delta)
	}
	if thinking.String() != "hmm" || content.String() != "answer" {
		t.Errorf("thinking = %q, content = %q", thinking.String(), content.String())
	}

	if resp := <-stream.Final; resp == nil || resp.Thinking != "hmm" {
		t.Errorf("Final = %+v", resp)
	}
}

func TestChunkStreamRecv(t *testing.T) {
	frames := []string{
		"event: token\ndata: {\"message\":{\"role\":\"assistant\",\"content\":\"Hel\"},\"created\":1,\"seed\":1}\n\n",
		"event: token\ndata: {\"message\":{\"role\":\"assistant\",\"content\":\"lo\"},\"created\":1,\"seed\":1}\n\n",
		"event: result\ndata: {\"message\":{\"role\":\"assistant\",\"content\":\"Hello\"},\"finishReason\":\"stop\",\"created\":1,\"seed\":1,\"usage\":{\"promptTokens\":1,\"completionTokens\":2,\"totalTokens\":3}}\n\n",
	}
	server := httptest.NewServer(sseHandler(frames))
	defer server.Close()

	p := New("test-key", WithBaseURL(server.URL))
	stream, err := p.OpenChunkStream(context.Background(), testChatRequest())
	if err != nil {
		t.Fatalf("OpenChunkStream() error = %v", err)
	}
	defer stream.Close()

	var deltas []string
	var terminal *core.ChatChunk
	for {
		chunk, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Recv() error = %v", err)
		}
		if chunk.Terminal() {
			terminal = chunk
			continue
		}
		deltas = append(deltas, chunk.Delta)
	}

	if got := strings.Join(deltas, ""); got != "Hello" {
		t.Errorf("deltas = %q, want %q", got, "Hello")
	}
	if terminal == nil {
		t.Fatal("no terminal chunk received")
	}
	if terminal.FinishReason != core.FinishReasonStop {
		t.Errorf("FinishReason = %q", terminal.FinishReason)
	}
	if terminal.Usage == nil || terminal.Usage.TotalTokens != 3 {
		t.Errorf("Usage = %+v", terminal.Usage)
	}

	// Recv after EOF keeps returning EOF.
	if _, err := stream.Recv(); err != io.EOF {
		t.Errorf("Recv() after end = %v, want io.EOF", err)
	}
}

func TestChunkStreamErrorEventIsSticky(t *testing.T) {
	frames := []string{
		"event: error\ndata: {\"status\":{\"code\":\"50000\",\"message\":\"boom\"}}\n\n",
	}
	server := httptest.NewServer(sseHandler(frames))
	defer server.Close()

	p := New("test-key", WithBaseURL(server.URL))
	stream, err := p.OpenChunkStream(context.Background(), testChatRequest())
	if err != nil {
		t.Fatalf("OpenChunkStream() error = %v", err)
	}

	_, err = stream.Recv()
	if !errors.Is(err, core.ErrStreaming) {
		t.Fatalf("Recv() error = %v, want ErrStreaming", err)
	}

	// Subsequent calls return the same error.
	_, err2 := stream.Recv()
	if !errors.Is(err2, core.ErrStreaming) {
		t.Errorf("second Recv() error = %v", err2)
	}
}

// countingReadCloser tracks Close calls on a wrapped body.
type countingReadCloser struct {
	io.Reader
	closes atomic.Int32
}

func (c *countingReadCloser) Close() error {
	c.closes.Add(1)
	return nil
}

func TestChunkStreamCloseExactlyOnce(t *testing.T) {
	body := &countingReadCloser{Reader: strings.NewReader(
		"event: token\ndata: {\"message\":{\"role\":\"assistant\",\"content\":\"x\"},\"created\":1,\"seed\":1}\n\n",
	)}
	s := &chunkStream{reader: newFrameReader(body), body: body}

	if _, err := s.Recv(); err != nil {
		t.Fatalf("Recv() error = %v", err)
	}

	// Abandon the stream: repeated Close only closes once.
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	_ = s.Close()
	_ = s.Close()

	if got := body.closes.Load(); got != 1 {
		t.Errorf("body closed %d times, want 1", got)
	}
}

func TestChunkStreamClosesOnEOF(t *testing.T) {
	body := &countingReadCloser{Reader: strings.NewReader(
		"event: result\ndata: {\"message\":{\"role\":\"assistant\",\"content\":\"done\"},\"finishReason\":\"stop\",\"created\":1,\"seed\":1,\"usage\":{\"promptTokens\":1,\"completionTokens\":1,\"totalTokens\":2}}\n\n",
	)}
	s := &chunkStream{reader: newFrameReader(body), body: body}

	chunk, err := s.Recv()
	if err != nil {
		t.Fatalf("Recv() error = %v", err)
	}
	if !chunk.Terminal() {
		t.Error("result chunk not terminal")
	}
	if _, err := s.Recv(); err != io.EOF {
		t.Errorf("Recv() = %v, want io.EOF", err)
	}
	if got := body.closes.Load(); got != 1 {
		t.Errorf("body closed %d times, want 1", got)
	}
}

func TestStreamRequestSetsAcceptHeader(t *testing.T) {
	var accept, auth, requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept = r.Header.Get("Accept")
		auth = r.Header.Get("Authorization")
		requestID = r.Header.Get("X-NCP-CLOVASTUDIO-REQUEST-ID")
		sseHandler(nil)(w, r)
	}))
	defer server.Close()

	p := New("test-key", WithBaseURL(server.URL))
	stream, err := p.StreamChat(context.Background(), testChatRequest())
	if err != nil {
		t.Fatalf("StreamChat() error = %v", err)
	}
	for range stream.Ch {
	}

	if accept != "text/event-stream" {
		t.Errorf("Accept = %q", accept)
	}
	if auth != "Bearer test-key" {
		t.Errorf("Authorization = %q", auth)
	}
	if requestID == "" {
		t.Error("request ID header not generated")
	}
}
