// Package ai implements the provider transports and deterministic prompt
// construction for the assistant gateway.
//
// Each transport performs exactly one network call per invocation; retry,
// backoff, and circuit-breaking policy live in the resilience layer above.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/asoraledecnal/vantage/internal/domain"
)

// geminiTransport calls the generateContent endpoint of a Gemini-format API.
type geminiTransport struct {
	settings   domain.ProviderSettings
	httpClient *http.Client
}

func newGeminiTransport(settings domain.ProviderSettings, client *http.Client) *geminiTransport {
	return &geminiTransport{settings: settings, httpClient: client}
}

func (t *geminiTransport) Name() string { return t.settings.Name }

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (t *geminiTransport) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     t.settings.Temperature,
			MaxOutputTokens: t.settings.MaxOutputTokens,
		},
	})
	if err != nil {
		return "", t.malformed(fmt.Errorf("encode request: %w", err))
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimRight(t.settings.Endpoint, "/"),
		t.settings.ModelID,
		os.Getenv(t.settings.AuthEnvVar),
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", t.malformed(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", &domain.ProviderError{Provider: t.settings.Name, Kind: domain.ErrKindTransient, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", classifyStatus(t.settings.Name, resp.StatusCode, fmt.Errorf("%s", resp.Status))
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", t.malformed(fmt.Errorf("decode response: %w", err))
	}
	if len(parsed.Candidates) == 0 {
		return "", t.malformed(fmt.Errorf("no candidates in response"))
	}

	var text strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	out := strings.TrimSpace(text.String())
	if out == "" {
		return "", t.malformed(fmt.Errorf("empty candidate text"))
	}
	return out, nil
}

func (t *geminiTransport) malformed(err error) error {
	return &domain.ProviderError{Provider: t.settings.Name, Kind: domain.ErrKindMalformed, Err: err}
}

// classifyStatus maps an HTTP status onto the provider error taxonomy.
// Server-side statuses and throttling are transient (retried, counted by the
// breaker); everything else in 4xx is a caller error.
func classifyStatus(provider string, status int, err error) *domain.ProviderError {
	kind := domain.ErrKindClient
	if status >= 500 || status == http.StatusTooManyRequests {
		kind = domain.ErrKindTransient
	}
	return &domain.ProviderError{Provider: provider, Kind: kind, Status: status, Err: err}
}
