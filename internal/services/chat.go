package services

import (
	"context"
	"time"

	"chat-relay/internal/logger"
	"chat-relay/internal/models"
)

// ChatService turns a ChatRequest into one upstream generation call.
// It holds no per-conversation state.
type ChatService struct {
	generator Generator
}

func NewChatService(generator Generator) *ChatService {
	return &ChatService{generator: generator}
}

func (s *ChatService) Reply(ctx context.Context, req models.ChatRequest) (string, error) {
	if req.APIKey == "" || req.Prompt == "" {
		return "", &ValidationError{Message: msgMissingFields}
	}

	contextBlock := BuildContext(req.History, req.Prompt)

	start := time.Now()
	reply, err := s.generator.Generate(ctx, req.APIKey, contextBlock)
	if err != nil {
		return "", err
	}
	logger.Debugw("chat turn relayed",
		"history_turns", len(req.History),
		"context_bytes", len(contextBlock),
		"latency", time.Since(start).String(),
	)
	return reply, nil
}
