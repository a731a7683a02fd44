package llm

import (
	"net/http"
	"time"
)

// Role represents the role of a message
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single conversation message. Content is either a
// plain string (chat) or a []ContentPart (vision).
type Message struct {
	Role    Role        `json:"role"`
	Content interface{} `json:"content"`
}

// ContentPart is one element of a multimodal message content array
type ContentPart struct {
	Type     string    `json:"type"` // "text" or "image_url"
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL wraps a data URL or remote URL for an image part
type ImageURL struct {
	URL string `json:"url"`
}

// RequestBody is the inner payload sent to the completion endpoint
type RequestBody struct {
	Messages      []Message     `json:"messages"`
	MaxTokens     int           `json:"max_tokens"`
	Stop          []string      `json:"stop"`
	Stream        bool          `json:"stream"`
	StreamOptions StreamOptions `json:"stream_options"`
	Model         string        `json:"model"`
	EnvType       string        `json:"env_type"`
	Fingerprint   string        `json:"fingerprint"`
}

// StreamOptions controls streaming behavior on the server side
type StreamOptions struct {
	IncludeUsage bool `json:"include_usage"`
}

// RequestPayload is the wire format: the endpoint expects the body nested
// under a top-level "body" key.
type RequestPayload struct {
	Body RequestBody `json:"body"`
}

// Usage represents token usage information
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// StreamResult is the accumulated outcome of one streamed completion.
// Content grows in arrival order; Usage is nil unless the stream emitted a
// usage fragment. Skipped counts malformed data lines that were dropped.
type StreamResult struct {
	Content string `json:"content"`
	Usage   *Usage `json:"usage,omitempty"`
	Skipped int    `json:"-"`
}

// ClientOptions contains options for creating a client
type ClientOptions struct {
	Cookie     string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Headers    map[string]string
}

// ClientOption is a functional option for configuring clients
type ClientOption func(*ClientOptions)

// WithBaseURL sets the completion endpoint URL
func WithBaseURL(url string) ClientOption {
	return func(o *ClientOptions) {
		o.BaseURL = url
	}
}

// WithTimeout sets the request timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(o *ClientOptions) {
		o.Timeout = timeout
	}
}

// WithHTTPClient sets a custom HTTP client (session/TLS configuration)
func WithHTTPClient(client *http.Client) ClientOption {
	return func(o *ClientOptions) {
		o.HTTPClient = client
	}
}

// WithHeaders sets additional headers sent on every request
func WithHeaders(headers map[string]string) ClientOption {
	return func(o *ClientOptions) {
		if o.Headers == nil {
			o.Headers = make(map[string]string)
		}
		for k, v := range headers {
			o.Headers[k] = v
		}
	}
}

// CallOptions contains per-call options for chat and vision requests
type CallOptions struct {
	Model        string
	SystemPrompt string
	MaxTokens    int
	OnChunk      func(string)
}

// CallOption is a functional option for a single request
type CallOption func(*CallOptions)

// WithModel overrides the default model for a call
func WithModel(model string) CallOption {
	return func(o *CallOptions) {
		o.Model = model
	}
}

// WithSystemPrompt sets the system message for a chat call
func WithSystemPrompt(prompt string) CallOption {
	return func(o *CallOptions) {
		o.SystemPrompt = prompt
	}
}

// WithMaxTokens sets the response token budget
func WithMaxTokens(n int) CallOption {
	return func(o *CallOptions) {
		o.MaxTokens = n
	}
}

// WithChunkHandler registers a callback invoked for each content delta as it
// arrives, for callers wanting incremental display.
func WithChunkHandler(fn func(string)) CallOption {
	return func(o *CallOptions) {
		o.OnChunk = fn
	}
}
