package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ayush6624/go-chatgpt"
)

// TextGenerationRepository sends one prompt to a language model and returns
// its reply text.
type TextGenerationRepository interface {
	Complete(ctx context.Context, systemPrompt, prompt string) (string, error)
}

var ErrEmptyCompletion = errors.New("model returned no completion")

type gptRepositoryHandler struct {
	GptClient *chatgpt.Client
}

func NewGptRepository(apiKey string) (TextGenerationRepository, error) {
	client, err := chatgpt.NewClient(apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to construct gpt client: %w", err)
	}

	return gptRepositoryHandler{
		GptClient: client,
	}, nil
}

func (h gptRepositoryHandler) Complete(ctx context.Context, systemPrompt, prompt string) (string, error) {
	res, err := h.GptClient.Send(ctx, &chatgpt.ChatCompletionRequest{
		Model: chatgpt.GPT35Turbo,
		Messages: []chatgpt.ChatMessage{
			{
				Role:    chatgpt.ChatGPTModelRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    chatgpt.ChatGPTModelRoleUser,
				Content: prompt,
			},
		},
		MaxTokens: 300,
	})
	if err != nil {
		return "", fmt.Errorf("failed to get chat completion: %w", err)
	}
	if len(res.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	return res.Choices[0].Message.Content, nil
}
