package models

// Canonical conversation roles. RoleLegacyAssistant is what older browser
// clients send for model turns.
const (
	RoleUser            = "user"
	RoleAssistant       = "assistant"
	RoleLegacyAssistant = "gemini"
)

// ConversationTurn is a single message exchanged in the conversation.
type ConversationTurn struct {
	Role string `json:"role"` // "user" or "assistant"
	Text string `json:"text"`
}

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	APIKey  string             `json:"api_key"`
	Prompt  string             `json:"prompt"`
	History []ConversationTurn `json:"history"`
}

// ChatResponse is the reply from the AI chat.
type ChatResponse struct {
	Response string `json:"response"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
