package sambanova

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"sambanova-go/llm"
)

const (
	defaultBaseURL   = "https://cloud.sambanova.ai/api/completion"
	defaultTimeout   = 120 * time.Second
	defaultMaxTokens = 2048
	defaultSystem    = "You are a helpful assistant."
)

// Client talks to the SambaNova cloud completion endpoint using a browser
// session cookie. One Client serves both chat and vision calls; its header
// and cookie configuration is fixed for the Client's lifetime.
type Client struct {
	options    llm.ClientOptions
	httpClient *http.Client
}

// New creates a client for the given session cookie
func New(cookie string, opts ...llm.ClientOption) (*Client, error) {
	options := llm.ClientOptions{
		Cookie:  cookie,
		BaseURL: defaultBaseURL,
		Timeout: defaultTimeout,
		Headers: make(map[string]string),
	}

	// Apply options
	for _, opt := range opts {
		opt(&options)
	}

	if options.Cookie == "" {
		return nil, fmt.Errorf("session cookie not provided")
	}

	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: options.Timeout,
		}
	}

	return &Client{
		options:    options,
		httpClient: httpClient,
	}, nil
}

// Chat sends a text completion request and blocks until the response stream
// has been consumed to completion.
func (c *Client) Chat(ctx context.Context, prompt string, opts ...llm.CallOption) (*llm.StreamResult, error) {
	call := newCallOptions(opts)

	payload, err := buildChatPayload(prompt, callModel(call, llm.DefaultChatModel), call.SystemPrompt, call.MaxTokens)
	if err != nil {
		return nil, err
	}

	return c.complete(ctx, payload, call.OnChunk)
}

// Vision sends an image+text completion request for a local image file and
// blocks until the response stream has been consumed to completion.
func (c *Client) Vision(ctx context.Context, prompt, imagePath string, opts ...llm.CallOption) (*llm.StreamResult, error) {
	call := newCallOptions(opts)

	image, mime, err := loadImage(imagePath)
	if err != nil {
		return nil, err
	}

	payload, err := buildVisionPayload(prompt, image, mime, callModel(call, llm.DefaultVisionModel), call.MaxTokens)
	if err != nil {
		return nil, err
	}

	return c.complete(ctx, payload, call.OnChunk)
}

// ChatStream sends a text completion request and delivers content deltas
// over a channel as they arrive. The channel is closed when the stream ends,
// fails, or ctx is cancelled; unlike Chat, chunks already delivered are not
// withdrawn on a late transport failure.
func (c *Client) ChatStream(ctx context.Context, prompt string, opts ...llm.CallOption) (<-chan string, error) {
	call := newCallOptions(opts)

	payload, err := buildChatPayload(prompt, callModel(call, llm.DefaultChatModel), call.SystemPrompt, call.MaxTokens)
	if err != nil {
		return nil, err
	}

	return c.completeStream(ctx, payload)
}

// VisionStream is the channel-streaming variant of Vision. See ChatStream
// for delivery semantics.
func (c *Client) VisionStream(ctx context.Context, prompt, imagePath string, opts ...llm.CallOption) (<-chan string, error) {
	call := newCallOptions(opts)

	image, mime, err := loadImage(imagePath)
	if err != nil {
		return nil, err
	}

	payload, err := buildVisionPayload(prompt, image, mime, callModel(call, llm.DefaultVisionModel), call.MaxTokens)
	if err != nil {
		return nil, err
	}

	return c.completeStream(ctx, payload)
}

// complete issues the request and decodes the stream to completion
func (c *Client) complete(ctx context.Context, payload *llm.RequestPayload, onChunk func(string)) (*llm.StreamResult, error) {
	resp, err := c.post(ctx, payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return decodeStream(ctx, bufio.NewScanner(resp.Body), onChunk)
}

// completeStream issues the request and forwards content deltas to a channel
func (c *Client) completeStream(ctx context.Context, payload *llm.RequestPayload) (<-chan string, error) {
	resp, err := c.post(ctx, payload)
	if err != nil {
		return nil, err
	}

	chunks := make(chan string)
	go func() {
		defer close(chunks)
		defer resp.Body.Close()

		_, _ = decodeStream(ctx, bufio.NewScanner(resp.Body), func(chunk string) {
			select {
			case chunks <- chunk:
			case <-ctx.Done():
			}
		})
	}()

	return chunks, nil
}

// post serializes the payload, issues the HTTP call and maps the status.
// A 401 is surfaced as AuthenticationError before the body is read; any
// other non-2xx becomes a RequestError carrying the response text.
func (c *Client) post(ctx context.Context, payload *llm.RequestPayload) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &llm.RequestError{Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	if os.Getenv("SAMBANOVA_DEBUG") == "true" {
		fmt.Fprintf(os.Stderr, "\n[sambanova] Request URL: %s\n", c.options.BaseURL)
		fmt.Fprintf(os.Stderr, "[sambanova] Request Body:\n%s\n", string(body))
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.options.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, &llm.RequestError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &llm.RequestError{Err: err}
	}

	if os.Getenv("SAMBANOVA_DEBUG") == "true" {
		fmt.Fprintf(os.Stderr, "[sambanova] Response Status: %d\n", resp.StatusCode)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		return nil, &llm.AuthenticationError{Status: resp.StatusCode}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		text, _ := io.ReadAll(resp.Body)
		return nil, &llm.RequestError{Status: resp.StatusCode, Body: string(text)}
	}

	return resp, nil
}

// setHeaders applies the browser-mimicking header set the endpoint expects
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cookie", c.options.Cookie)
	req.Header.Set("DNT", "1")
	req.Header.Set("Origin", "https://cloud.sambanova.ai")
	req.Header.Set("Referer", "https://cloud.sambanova.ai/")
	req.Header.Set("Sec-Ch-Ua", `"Google Chrome";v="131", "Chromium";v="131", "Not_A Brand";v="24"`)
	req.Header.Set("Sec-Ch-Ua-Mobile", "?0")
	req.Header.Set("Sec-Ch-Ua-Platform", `"Windows"`)
	req.Header.Set("Sec-Fetch-Dest", "empty")
	req.Header.Set("Sec-Fetch-Mode", "cors")
	req.Header.Set("Sec-Fetch-Site", "same-origin")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36")

	// Add custom headers
	for k, v := range c.options.Headers {
		req.Header.Set(k, v)
	}
}

func newCallOptions(opts []llm.CallOption) *llm.CallOptions {
	call := &llm.CallOptions{
		SystemPrompt: defaultSystem,
		MaxTokens:    defaultMaxTokens,
	}
	for _, opt := range opts {
		opt(call)
	}
	return call
}

func callModel(call *llm.CallOptions, fallback string) string {
	if call.Model != "" {
		return call.Model
	}
	return fallback
}
