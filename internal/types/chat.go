package types

type ChatRole string

const (
	ChatRoleSystem    ChatRole = "system"
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

type ChatRequest struct {
	Message      string        `json:"message" example:"What should I see in Lisbon?"`
	Conversation []ChatMessage `json:"conversation,omitempty"`
}

type ChatResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
