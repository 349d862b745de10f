package usecase

import (
	"context"
	"fmt"

	"mindverse/internal/domain"
	"mindverse/internal/port"
)

// ChatUseCase generates free-form assistant replies, outside any document's
// retrieval context.
type ChatUseCase struct {
	llm port.LLM
}

func NewChatUseCase(llm port.LLM) *ChatUseCase {
	return &ChatUseCase{llm: llm}
}

// Reply generates a supportive assistant reply to the user's message.
func (u *ChatUseCase) Reply(ctx context.Context, message string) (string, error) {
	if message == "" {
		return "", fmt.Errorf("message is empty: %w", domain.ErrInvalidConfiguration)
	}

	prompt := fmt.Sprintf(`You are a supportive mental wellness assistant. Respond with empathy
and practical guidance. Do not diagnose; suggest professional help for
anything serious.

User:
%s`, message)

	reply, err := u.llm.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("chat generation: %w", err)
	}
	return reply, nil
}
