package repository

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const geminiModel = "gemini-2.0-flash"

type geminiRepositoryHandler struct {
	Client *genai.Client
	Model  string
}

func NewGeminiRepository(ctx context.Context, apiKey string) (TextGenerationRepository, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("failed to construct gemini client: missing api key")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to construct gemini client: %w", err)
	}

	return geminiRepositoryHandler{
		Client: client,
		Model:  geminiModel,
	}, nil
}

func (h geminiRepositoryHandler) Complete(ctx context.Context, systemPrompt, prompt string) (string, error) {
	resp, err := h.Client.Models.GenerateContent(ctx, h.Model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyCompletion
	}

	parts := []string{}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			parts = append(parts, part.Text)
		}
	}
	if len(parts) == 0 {
		return "", ErrEmptyCompletion
	}

	return strings.Join(parts, ""), nil
}
