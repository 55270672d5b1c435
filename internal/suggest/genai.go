package suggest

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

const suggestionModel = "gemini-2.5-flash"

// GenAIProvider generates post suggestions with Google's Gemini API.
type GenAIProvider struct {
	client *genai.Client
}

// NewGenAIProvider creates a new provider. The API key is required.
func NewGenAIProvider(ctx context.Context, apiKey string) (*GenAIProvider, error) {
	if apiKey == "" {
		return nil, errors.New("GenAI API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GenAIProvider{client: client}, nil
}

// Suggest asks the model for a short post about the topic. Every failure
// surfaces as ErrUnavailable.
func (p *GenAIProvider) Suggest(ctx context.Context, topic string) (string, error) {
	prompt := fmt.Sprintf(
		"Write a short, engaging, tweet-style post about %q. Keep it under 280 characters. Use a few relevant hashtags.",
		topic,
	)
	result, err := p.client.Models.GenerateContent(ctx, suggestionModel, genai.Text(prompt), nil)
	if err != nil {
		return "", unavailable(err)
	}
	text := result.Text()
	if text == "" {
		return "", unavailable(errors.New("empty response"))
	}
	return text, nil
}
