package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"chat-relay/internal/models"
	"chat-relay/internal/services"
)

type chatReplier interface {
	Reply(ctx context.Context, req models.ChatRequest) (string, error)
}

type ChatHandler struct {
	chatService chatReplier
}

func NewChatHandler(chatService chatReplier) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Chat relays one prompt plus client-held history upstream.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleServiceError(w, r, services.NewInvalidBodyError())
		return
	}

	reply, err := h.chatService.Reply(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Response: reply})
}
