package askgpt

import "time"

// Role identifies the author of a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single turn in a conversation
type Message struct {
	Role    Role   `json:"role" toml:"role"`
	Content string `json:"content" toml:"content"`
}

// HistoricMessage is a message as stored in the history log.
type HistoricMessage struct {
	Timestamp time.Time `json:"timestamp"` // RFC 3339 with offset
	Message   Message   `json:"message"`
}

// UserMessage returns a message authored by the user.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage returns a message authored by the assistant.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}
