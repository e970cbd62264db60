// Package askgpt provides the core types shared by the askgpt command.
// This package defines the Provider interface that the chat-completion client
// implements and the request payload it consumes.
package askgpt

import (
	"context"
	"io"
)

// DefaultModel is the model requested when none is configured.
const DefaultModel = "gpt-3.5-turbo"

// Request is the payload sent to the chat-completion endpoint.
type Request struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

// Provider defines the interface for a streaming chat-completion backend.
//
// Example usage:
//
//	client := openai.NewClient(endpoint, token, logger)
//	reply, err := client.StreamChat(ctx, req, os.Stdout)
type Provider interface {
	// StreamChat sends the request and writes each reply fragment to out as
	// it arrives. It returns the full reply once the stream is complete.
	StreamChat(ctx context.Context, req *Request, out io.Writer) (string, error)
}

// NewRequest builds the request payload for a single prompt.
// Messages are ordered as: priming messages, recent history, then the new
// user prompt. Streaming is always requested.
func NewRequest(model string, priming []Message, recent []HistoricMessage, prompt string) *Request {
	messages := make([]Message, 0, len(priming)+len(recent)+1)
	messages = append(messages, priming...)
	for _, h := range recent {
		messages = append(messages, h.Message)
	}
	messages = append(messages, UserMessage(prompt))

	return &Request{
		Model:    model,
		Messages: messages,
		Stream:   true,
	}
}
