package core

import (
	"context"
	"fmt"
	"time"
)

// Provider is the interface that API backends must implement.
// Providers SHOULD be safe for concurrent calls.
type Provider interface {
	// ID returns the provider identifier (e.g., "clovastudio").
	ID() string

	// Models returns the list of models available from this provider.
	Models() []ModelInfo

	// Supports reports whether the provider supports the given feature.
	Supports(feature Feature) bool

	// Chat sends a non-streaming chat request.
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	// StreamChat sends a streaming chat request delivered over
	// channels (the push mode).
	StreamChat(ctx context.Context, req *ChatRequest) (*ChatStream, error)
}

// ChunkStreamer is an optional interface for providers that expose the
// pull-based streaming mode.
type ChunkStreamer interface {
	// OpenChunkStream sends a streaming chat request and returns a
	// pull-based stream the caller advances with Recv.
	OpenChunkStream(ctx context.Context, req *ChatRequest) (ChunkStream, error)
}

// Client is the main entry point for interacting with the API.
// Client is safe for concurrent use.
type Client struct {
	provider  Provider
	telemetry TelemetryHook
	retry     RetryPolicy
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new Client with the given provider and options.
func NewClient(p Provider, opts ...ClientOption) *Client {
	c := &Client{
		provider:  p,
		telemetry: NoopTelemetryHook{},
		retry:     DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithTelemetry sets the telemetry hook for the client.
func WithTelemetry(h TelemetryHook) ClientOption {
	return func(c *Client) {
		if h != nil {
			c.telemetry = h
		}
	}
}

// WithRetryPolicy sets the retry policy for the client.
// Retry applies only to non-streaming calls; streams are never
// silently reconnected.
func WithRetryPolicy(r RetryPolicy) ClientOption {
	return func(c *Client) {
		if r != nil {
			c.retry = r
		}
	}
}

// Provider returns the underlying provider.
func (c *Client) Provider() Provider {
	return c.provider
}

// Chat returns a ChatBuilder for constructing and executing a chat
// request.
func (c *Client) Chat(model ModelID) *ChatBuilder {
	return &ChatBuilder{
		client: c,
		req: ChatRequest{
			Model: model,
		},
	}
}

// Embed generates an embedding for one text. Fails with
// ErrNotSupported if the provider has no embedding endpoint.
func (c *Client) Embed(ctx context.Context, text string) (*EmbeddingResponse, error) {
	ep, ok := c.provider.(EmbeddingProvider)
	if !ok {
		return nil, fmt.Errorf("%s: embeddings: %w", c.provider.ID(), ErrNotSupported)
	}

	start := time.Now()
	c.telemetry.OnRequestStart(RequestStartEvent{
		Operation: OperationEmbedding,
		Start:     start,
	})

	resp, err := Do(ctx, c.retry, func() (*EmbeddingResponse, error) {
		return ep.CreateEmbedding(ctx, &EmbeddingRequest{Text: text})
	})

	usage := TokenUsage{}
	if resp != nil {
		usage = TokenUsage{PromptTokens: resp.InputTokens, TotalTokens: resp.InputTokens}
	}
	c.telemetry.OnRequestEnd(RequestEndEvent{
		Operation: OperationEmbedding,
		Start:     start,
		End:       time.Now(),
		Usage:     usage,
		Err:       err,
	})

	return resp, err
}

// EmbedBatch embeds several texts as independently-issued concurrent
// requests. Results are returned in input order; the first failure
// cancels the remaining work and is returned.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([]*EmbeddingResponse, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type indexed struct {
		i    int
		resp *EmbeddingResponse
		err  error
	}

	results := make([]*EmbeddingResponse, len(texts))
	ch := make(chan indexed, len(texts))

	for i, text := range texts {
		go func(i int, text string) {
			resp, err := c.Embed(ctx, text)
			ch <- indexed{i: i, resp: resp, err: err}
		}(i, text)
	}

	var firstErr error
	for range texts {
		r := <-ch
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
				cancel()
			}
			continue
		}
		results[r.i] = r.resp
	}

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

// ChatBuilder provides a fluent API for building chat requests.
// ChatBuilder is NOT thread-safe and should not be shared across
// goroutines.
type ChatBuilder struct {
	client *Client
	req    ChatRequest

	// err holds a deferred construction error (e.g., an image part with
	// no source), surfaced on the next validate.
	err error
}

// System appends a system message.
func (b *ChatBuilder) System(s string) *ChatBuilder {
	b.req.Messages = append(b.req.Messages, Message{Role: RoleSystem, Content: s})
	return b
}

// User appends a user message.
func (b *ChatBuilder) User(s string) *ChatBuilder {
	b.req.Messages = append(b.req.Messages, Message{Role: RoleUser, Content: s})
	return b
}

// Assistant appends an assistant message.
func (b *ChatBuilder) Assistant(s string) *ChatBuilder {
	b.req.Messages = append(b.req.Messages, Message{Role: RoleAssistant, Content: s})
	return b
}

// Messages appends pre-built messages, e.g. a restored conversation.
func (b *ChatBuilder) Messages(msgs ...Message) *ChatBuilder {
	b.req.Messages = append(b.req.Messages, msgs...)
	return b
}

// ToolResult appends a tool result message for the given call ID.
func (b *ChatBuilder) ToolResult(callID, content string) *ChatBuilder {
	b.req.Messages = append(b.req.Messages, Message{
		Role:       RoleTool,
		Content:    content,
		ToolCallID: callID,
	})
	return b
}

// Temperature sets the sampling temperature (0.0-1.0).
func (b *ChatBuilder) Temperature(v float32) *ChatBuilder {
	b.req.Temperature = &v
	return b
}

// TopP sets the nucleus sampling parameter.
func (b *ChatBuilder) TopP(v float32) *ChatBuilder {
	b.req.TopP = &v
	return b
}

// TopK sets the top-k sampling parameter.
func (b *ChatBuilder) TopK(n int) *ChatBuilder {
	b.req.TopK = &n
	return b
}

// MaxTokens sets the legacy token limit. Mutually exclusive with
// MaxCompletionTokens.
func (b *ChatBuilder) MaxTokens(n int) *ChatBuilder {
	b.req.MaxTokens = &n
	return b
}

// MaxCompletionTokens sets the completion token limit used by the
// reasoning model family. Mutually exclusive with MaxTokens.
func (b *ChatBuilder) MaxCompletionTokens(n int) *ChatBuilder {
	b.req.MaxCompletionTokens = &n
	return b
}

// RepetitionPenalty sets the repetition penalty.
func (b *ChatBuilder) RepetitionPenalty(v float32) *ChatBuilder {
	b.req.RepetitionPenalty = &v
	return b
}

// Stop sets the stop sequences.
func (b *ChatBuilder) Stop(sequences ...string) *ChatBuilder {
	b.req.Stop = sequences
	return b
}

// Seed sets the sampling seed for reproducibility.
func (b *ChatBuilder) Seed(n int64) *ChatBuilder {
	b.req.Seed = &n
	return b
}

// IncludeAIFilters requests content-safety filter results on the
// response.
func (b *ChatBuilder) IncludeAIFilters(v bool) *ChatBuilder {
	b.req.IncludeAIFilters = &v
	return b
}

// Thinking sets the hidden-reasoning effort level for models that
// support it.
func (b *ChatBuilder) Thinking(effort ThinkingEffort) *ChatBuilder {
	b.req.Thinking = &ThinkingConfig{Effort: effort}
	return b
}

// Tools sets the tools available for the request.
func (b *ChatBuilder) Tools(ts ...Tool) *ChatBuilder {
	b.req.Tools = ts
	return b
}

// ToolChoice directs how the model chooses among offered tools.
func (b *ChatBuilder) ToolChoice(tc *ToolChoice) *ChatBuilder {
	b.req.ToolChoice = tc
	return b
}

// ResponseFormat requests schema-constrained structured output.
func (b *ChatBuilder) ResponseFormat(rf *ResponseFormat) *ChatBuilder {
	b.req.ResponseFormat = rf
	return b
}

// RequestID sets an explicit request ID for tracing.
func (b *ChatBuilder) RequestID(id string) *ChatBuilder {
	b.req.RequestID = id
	return b
}

// MessageBuilder provides a fluent API for building multimodal
// messages.
type MessageBuilder struct {
	parent *ChatBuilder
	role   Role
	parts  []ContentPart
	err    error
}

// UserMultimodal starts building a multimodal user message.
func (b *ChatBuilder) UserMultimodal() *MessageBuilder {
	return &MessageBuilder{
		parent: b,
		role:   RoleUser,
	}
}

// Text adds a text content part to the message.
func (m *MessageBuilder) Text(s string) *MessageBuilder {
	m.parts = append(m.parts, TextPart{Text: s})
	return m
}

// ImageURL adds an image by HTTPS URL.
func (m *MessageBuilder) ImageURL(url string) *MessageBuilder {
	part, err := NewImageURLPart(url)
	if err != nil && m.err == nil {
		m.err = err
	}
	m.parts = append(m.parts, part)
	return m
}

// ImageData adds an image carried inline as a base64 data URI.
func (m *MessageBuilder) ImageData(data string) *MessageBuilder {
	part, err := NewImageDataPart(data)
	if err != nil && m.err == nil {
		m.err = err
	}
	m.parts = append(m.parts, part)
	return m
}

// Done completes the message and returns to the ChatBuilder.
func (m *MessageBuilder) Done() *ChatBuilder {
	if m.err != nil && m.parent.err == nil {
		m.parent.err = m.err
	}
	m.parent.req.Messages = append(m.parent.req.Messages, Message{
		Role:  m.role,
		Parts: m.parts,
	})
	return m.parent
}

// UserWithImageURL adds a user message with text and an image URL.
// Convenience for common vision use cases.
func (b *ChatBuilder) UserWithImageURL(text, imageURL string) *ChatBuilder {
	return b.UserMultimodal().
		Text(text).
		ImageURL(imageURL).
		Done()
}

// validate checks that the request is well-formed before dispatch.
func (b *ChatBuilder) validate() error {
	if b.err != nil {
		return b.err
	}
	if b.req.Model == "" {
		return ErrModelRequired
	}
	if len(b.req.Messages) == 0 {
		return ErrNoMessages
	}
	for _, msg := range b.req.Messages {
		if msg.Content == "" && len(msg.Parts) == 0 && len(msg.ToolCalls) == 0 {
			return ErrNoMessages
		}
	}
	return nil
}

// GetResponse executes the chat request and returns the response.
// It applies validation, telemetry, and retry logic; the caller's
// goroutine blocks for the duration.
func (b *ChatBuilder) GetResponse(ctx context.Context) (*ChatResponse, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	b.client.telemetry.OnRequestStart(RequestStartEvent{
		Operation: OperationChat,
		Model:     b.req.Model,
		Start:     start,
	})

	resp, err := Do(ctx, b.client.retry, func() (*ChatResponse, error) {
		return b.client.provider.Chat(ctx, &b.req)
	})

	usage := TokenUsage{}
	if resp != nil {
		usage = resp.Usage
	}
	b.client.telemetry.OnRequestEnd(RequestEndEvent{
		Operation: OperationChat,
		Model:     b.req.Model,
		Start:     start,
		End:       time.Now(),
		Usage:     usage,
		Err:       err,
	})

	return resp, err
}

// Stream executes the chat request and returns the push-based stream.
func (b *ChatBuilder) Stream(ctx context.Context) (*ChatStream, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	b.client.telemetry.OnRequestStart(RequestStartEvent{
		Operation: OperationChatStream,
		Model:     b.req.Model,
		Start:     start,
	})

	stream, err := b.client.provider.StreamChat(ctx, &b.req)
	if err != nil {
		b.client.telemetry.OnRequestEnd(RequestEndEvent{
			Operation: OperationChatStream,
			Model:     b.req.Model,
			Start:     start,
			End:       time.Now(),
			Err:       err,
		})
		return nil, err
	}

	return wrapStreamWithTelemetry(stream, b.client.telemetry, b.req.Model, start), nil
}

// StreamReader executes the chat request and returns the pull-based
// stream. Fails with ErrNotSupported if the provider only offers the
// push mode.
func (b *ChatBuilder) StreamReader(ctx context.Context) (ChunkStream, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}

	cs, ok := b.client.provider.(ChunkStreamer)
	if !ok {
		return nil, fmt.Errorf("%s: pull-based streaming: %w", b.client.provider.ID(), ErrNotSupported)
	}
	return cs.OpenChunkStream(ctx, &b.req)
}

// wrapStreamWithTelemetry wraps a ChatStream to emit telemetry on
// completion.
func wrapStreamWithTelemetry(
	stream *ChatStream,
	hook TelemetryHook,
	model ModelID,
	start time.Time,
) *ChatStream {
	finalCh := make(chan *ChatResponse, 1)
	errCh := make(chan error, 1)

	go func() {
		defer close(finalCh)
		defer close(errCh)

		var finalResp *ChatResponse
		var finalErr error

		final, errs := stream.Final, stream.Err
		for final != nil || errs != nil {
			select {
			case resp, ok := <-final:
				if !ok {
					final = nil
					continue
				}
				finalResp = resp
				finalCh <- resp
			case err, ok := <-errs:
				if !ok {
					errs = nil
					continue
				}
				finalErr = err
				errCh <- err
			}
		}

		usage := TokenUsage{}
		if finalResp != nil {
			usage = finalResp.Usage
		}
		hook.OnRequestEnd(RequestEndEvent{
			Operation: OperationChatStream,
			Model:     model,
			Start:     start,
			End:       time.Now(),
			Usage:     usage,
			Err:       finalErr,
		})
	}()

	return &ChatStream{
		Ch:    stream.Ch,
		Err:   errCh,
		Final: finalCh,
	}
}
