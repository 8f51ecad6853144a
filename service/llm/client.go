package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/viant/gitroast/tracing"
)

// DefaultBaseURL is the public OpenAI endpoint; any OpenAI-compatible
// provider works with WithBaseURL.
const DefaultBaseURL = "https://api.openai.com/v1"

// DefaultModel is used when none is configured.
const DefaultModel = "gpt-4o-mini"

// DefaultTimeout bounds each generation call.
const DefaultTimeout = 120 * time.Second

// Client generates text through an OpenAI-compatible chat completion API.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// ClientOption customises a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API endpoint (used by tests and alternative
// providers).
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(baseURL, "/") }
}

// WithAPIKey sets the bearer token.
func WithAPIKey(apiKey string) ClientOption {
	return func(c *Client) { c.apiKey = apiKey }
}

// WithModel selects the completion model.
func WithModel(model string) ClientOption {
	return func(c *Client) { c.model = model }
}

// WithTimeout bounds each generation call.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) { c.httpClient.Timeout = timeout }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = client }
}

// NewClient creates a generation client with bounded call timeouts.
func NewClient(options ...ClientOption) *Client {
	ret := &Client{
		baseURL:    DefaultBaseURL,
		model:      DefaultModel,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

// Generate runs one persona-scoped completion. The persona renders as the
// system message, the interpolated instructions as the user message. Every
// failure, including an empty completion, wraps ErrGeneration.
func (c *Client) Generate(ctx context.Context, request *Request) (resp *Response, err error) {
	ctx, span := tracing.StartSpan(ctx, "llm.generate", "CLIENT")
	defer func() { tracing.EndSpan(span, err) }()
	span.WithAttributes(map[string]string{"llm.agent": request.Agent.Name, "llm.model": c.model})

	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: request.Agent.System()},
			{Role: "user", Content: request.Prompt()},
		},
	}
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	defer res.Body.Close()
	span.SetStatusFromHTTPCode(res.StatusCode)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		data, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("%w: status %d: %s", ErrGeneration, res.StatusCode, string(data))
	}
	var payload chatResponse
	if err = json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	if len(payload.Choices) == 0 || strings.TrimSpace(payload.Choices[0].Message.Content) == "" {
		return nil, fmt.Errorf("%w: empty completion", ErrGeneration)
	}
	return &Response{Content: payload.Choices[0].Message.Content}, nil
}
