// Package clovastudio provides a CLOVA Studio (HyperCLOVA X) provider
// implementation for the client.
package clovastudio

import (
	"net/http"
	"time"

	"github.com/ncloud-labs/hyperclova-go/core"
)

// DefaultBaseURL is the default base URL for the CLOVA Studio API.
const DefaultBaseURL = "https://clovastudio.stream.ntruss.com"

// Config holds the configuration for the CLOVA Studio provider.
type Config struct {
	// APIKey is the API key for authentication. Wrapped in core.Secret
	// so it never leaks through formatting or marshaling.
	APIKey core.Secret

	// BaseURL is the base URL for the API. Defaults to DefaultBaseURL.
	BaseURL string

	// HTTPClient is the HTTP client to use for requests.
	HTTPClient *http.Client

	// Headers are additional headers to include in requests.
	Headers http.Header

	// Timeout is the per-request timeout for non-streaming calls.
	// Zero means no timeout. Streaming requests ignore it; a stream
	// stays open as long as the server keeps sending.
	Timeout time.Duration
}

// Option is a functional option for configuring the CLOVA Studio
// provider.
type Option func(*Config)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithHeaders sets additional headers to include in requests.
func WithHeaders(headers http.Header) Option {
	return func(c *Config) {
		c.Headers = headers
	}
}

// WithTimeout sets the non-streaming request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Timeout = timeout
	}
}
