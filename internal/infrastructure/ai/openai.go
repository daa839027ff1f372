package ai

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/asoraledecnal/vantage/internal/domain"
)

// openaiTransport calls any OpenAI-compatible chat-completion API.
type openaiTransport struct {
	settings domain.ProviderSettings
	client   *openai.Client
}

func newOpenAITransport(settings domain.ProviderSettings) *openaiTransport {
	cfg := openai.DefaultConfig(os.Getenv(settings.AuthEnvVar))
	if settings.Endpoint != "" {
		cfg.BaseURL = strings.TrimRight(settings.Endpoint, "/")
	}
	return &openaiTransport{settings: settings, client: openai.NewClientWithConfig(cfg)}
}

func (t *openaiTransport) Name() string { return t.settings.Name }

func (t *openaiTransport) Complete(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: t.settings.ModelID,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: float32(t.settings.Temperature),
	}
	if t.settings.MaxOutputTokens > 0 {
		req.MaxCompletionTokens = t.settings.MaxOutputTokens
	}

	resp, err := t.client.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", classifyStatus(t.settings.Name, apiErr.HTTPStatusCode, err)
		}
		return "", &domain.ProviderError{Provider: t.settings.Name, Kind: domain.ErrKindTransient, Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", &domain.ProviderError{
			Provider: t.settings.Name,
			Kind:     domain.ErrKindMalformed,
			Err:      fmt.Errorf("no choices in response"),
		}
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
