package openai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/longkey1/askgpt/internal/askgpt"
	"go.uber.org/zap"
)

const (
	// ProviderName is attached to every log entry of a Client.
	ProviderName    = "openai"
	DefaultEndpoint = "https://api.openai.com/v1/chat/completions"

	dataPrefix  = "data: "
	eventPrefix = dataPrefix + "{"
	doneEvent   = dataPrefix + "[DONE]"

	// maxLineSize bounds a single event line of the stream.
	maxLineSize = 1 << 20
)

// Compile-time interface guard.
var _ askgpt.Provider = (*Client)(nil)

// ChatCompletionChunk is one event of a streamed chat completion.
type ChatCompletionChunk struct {
	ID      string    `json:"id"`
	Object  string    `json:"object"`
	Created int64     `json:"created"`
	Error   *APIError `json:"error,omitempty"`
	Choices []Choice  `json:"choices"`
}

// Choice is a single completion choice within a chunk
type Choice struct {
	Index        int             `json:"index"`
	Message      *askgpt.Message `json:"message,omitempty"`
	Delta        *askgpt.Message `json:"delta,omitempty"`
	FinishReason *string         `json:"finish_reason,omitempty"`
}

// DeltaContent returns the content fragment of the first choice, or an
// empty string when the chunk carries none.
func (c *ChatCompletionChunk) DeltaContent() string {
	if len(c.Choices) == 0 || c.Choices[0].Delta == nil {
		return ""
	}
	return c.Choices[0].Delta.Content
}

// Client streams chat completions from an OpenAI-compatible endpoint.
type Client struct {
	endpoint   string
	token      string
	requestID  string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new client for the chat-completion endpoint.
// The HTTP client has no timeout; cancel the context to abort a request.
func NewClient(endpoint, token string, logger *zap.Logger) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint:   endpoint,
		token:      token,
		httpClient: &http.Client{},
		logger:     logger.With(zap.String("provider", ProviderName)),
	}
}

// SetRequestID sets the value sent as X-Client-Request-Id.
func (c *Client) SetRequestID(id string) {
	c.requestID = id
}

// SetHTTPClient replaces the underlying HTTP client, e.g. to trust a
// custom certificate pool.
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

// StreamChat sends the request and copies each content fragment to out as
// soon as its event line arrives. It returns the concatenated reply.
func (c *Client) StreamChat(ctx context.Context, req *askgpt.Request, out io.Writer) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	if c.requestID != "" {
		httpReq.Header.Set("X-Client-Request-Id", c.requestID)
	}

	c.logger.Debug("sending chat request",
		zap.String("endpoint", c.endpoint),
		zap.String("model", req.Model),
		zap.Int("messages", len(req.Messages)))

	// Do returns once headers are read; the body is consumed incrementally.
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("error reading error response: %w", err)
		}
		return "", &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(data)}
	}

	return c.readStream(resp.Body, out)
}

// readStream consumes "data: " event lines until the [DONE] sentinel or
// the end of the body.
func (c *Client) readStream(body io.Reader, out io.Writer) (string, error) {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var reply strings.Builder
	events := 0
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, doneEvent) {
			break
		}
		if !strings.HasPrefix(line, eventPrefix) {
			continue
		}
		events++

		var chunk ChatCompletionChunk
		if err := json.Unmarshal([]byte(line[len(dataPrefix):]), &chunk); err != nil {
			c.logger.Warn("skipping malformed stream event", zap.Int("event", events), zap.Error(err))
			continue
		}
		if chunk.Error != nil {
			return "", chunk.Error
		}

		content := chunk.DeltaContent()
		if content == "" {
			continue
		}
		reply.WriteString(content)
		if _, err := io.WriteString(out, content); err != nil {
			return "", fmt.Errorf("error writing response: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("error reading response stream: %w", err)
	}

	c.logger.Debug("stream complete", zap.Int("events", events), zap.Int("reply_bytes", reply.Len()))
	return reply.String(), nil
}
