package model

// Role represents the role of a message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in the conversation history. Messages are immutable
// once appended; their order defines display order.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
