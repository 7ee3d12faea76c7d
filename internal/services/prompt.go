package services

import (
	"strings"

	"chat-relay/internal/models"
)

const systemInstruction = "You are a helpful, conversational AI assistant. " +
	"Format your response using Markdown for clarity and visual appeal. " +
	"Use headings, bullet points, and bold where appropriate. " +
	"Use the conversation history to answer follow-up questions naturally."

// roleLabel returns the context-block label for a turn role. ok is false for
// roles that are not rendered.
func roleLabel(role string) (label string, ok bool) {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case models.RoleUser:
		return "User", true
	case models.RoleAssistant, models.RoleLegacyAssistant:
		return "Assistant", true
	default:
		return "", false
	}
}

// BuildContext flattens history plus the new prompt into the single text block
// sent upstream. History order is preserved and the prompt is always the last
// User turn. Nothing is truncated.
func BuildContext(history []models.ConversationTurn, prompt string) string {
	lines := make([]string, 0, len(history)+1)
	for _, turn := range history {
		label, ok := roleLabel(turn.Role)
		if !ok {
			continue
		}
		lines = append(lines, label+": "+turn.Text)
	}
	lines = append(lines, "User: "+prompt)

	return systemInstruction + "\n\n" + strings.Join(lines, "\n\n")
}
