package clovastudio

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/ncloud-labs/hyperclova-go/core"
)

// chatCompletionsPath is the API endpoint prefix for chat completions.
// The model ID is appended as the final path segment.
const chatCompletionsPath = "/v3/chat-completions/"

// doChat performs a non-streaming chat completion request.
func (p *ClovaStudio) doChat(ctx context.Context, req *core.ChatRequest) (*core.ChatResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	body := buildRequest(req)
	url := p.config.BaseURL + chatCompletionsPath + string(req.Model)

	result, err := p.postEnvelope(ctx, url, req.RequestID, body)
	if err != nil {
		return nil, err
	}

	var res csResult
	if err := json.Unmarshal(result, &res); err != nil {
		return nil, newDecodeError(err)
	}

	return mapResult(&res)
}

// postEnvelope issues a POST with the envelope protocol: marshal the
// payload, send it, unwrap the status envelope, and return the raw
// result on success.
func (p *ClovaStudio) postEnvelope(ctx context.Context, url, requestID string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, newDecodeError(err)
	}

	if p.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.Timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, newConnectionError(err)
	}

	headers := p.buildHeaders(requestID, false)
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
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newConnectionError(err)
	}

	if resp.StatusCode >= 400 {
		return nil, normalizeError(resp.StatusCode, respBody, sentRequestID)
	}

	var env csEnvelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, newDecodeError(err)
	}

	// The API can report failure through the envelope on an HTTP 200.
	if env.Status.Code != statusCodeOK {
		return nil, normalizeEnvelopeError(&env, respBody, sentRequestID)
	}

	return env.Result, nil
}
