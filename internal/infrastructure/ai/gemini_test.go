package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/asoraledecnal/vantage/internal/domain"
)

func geminiSettings(endpoint string) domain.ProviderSettings {
	return domain.ProviderSettings{
		Name:            "gemini-test",
		Kind:            domain.ProviderKindGemini,
		Endpoint:        endpoint,
		AuthEnvVar:      "GEMINI_TEST_KEY",
		ModelID:         "gemini-2.5-flash",
		MaxOutputTokens: 128,
		Temperature:     0.4,
	}
}

func geminiBody(texts ...string) map[string]any {
	parts := make([]map[string]string, 0, len(texts))
	for _, text := range texts {
		parts = append(parts, map[string]string{"text": text})
	}
	return map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": parts}},
		},
	}
}

func TestGeminiCompleteSuccess(t *testing.T) {
	t.Setenv("GEMINI_TEST_KEY", "sk-test")

	var gotPath, gotKey string
	var gotReq geminiRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_ = json.NewEncoder(w).Encode(geminiBody("Hello ", "from Gemini"))
	}))
	defer server.Close()

	transport := newGeminiTransport(geminiSettings(server.URL), server.Client())
	got, err := transport.Complete(context.Background(), "the prompt")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "Hello from Gemini" {
		t.Errorf("text = %q, want concatenated parts", got)
	}
	if gotPath != "/models/gemini-2.5-flash:generateContent" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "sk-test" {
		t.Errorf("key = %q, want value from env", gotKey)
	}
	if len(gotReq.Contents) != 1 || gotReq.Contents[0].Parts[0].Text != "the prompt" {
		t.Errorf("request contents = %+v", gotReq.Contents)
	}
	if gotReq.GenerationConfig.MaxOutputTokens != 128 {
		t.Errorf("maxOutputTokens = %d", gotReq.GenerationConfig.MaxOutputTokens)
	}
}

func TestGeminiCompleteStatusClassification(t *testing.T) {
	cases := []struct {
		name   string
		status int
		want   domain.ProviderErrorKind
	}{
		{"server error", http.StatusInternalServerError, domain.ErrKindTransient},
		{"bad gateway", http.StatusBadGateway, domain.ErrKindTransient},
		{"throttled", http.StatusTooManyRequests, domain.ErrKindTransient},
		{"bad request", http.StatusBadRequest, domain.ErrKindClient},
		{"unauthorized", http.StatusUnauthorized, domain.ErrKindClient},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer server.Close()

			transport := newGeminiTransport(geminiSettings(server.URL), server.Client())
			_, err := transport.Complete(context.Background(), "prompt")

			var perr *domain.ProviderError
			if !errors.As(err, &perr) {
				t.Fatalf("err = %v, want *domain.ProviderError", err)
			}
			if perr.Kind != tc.want {
				t.Errorf("kind = %s, want %s", perr.Kind, tc.want)
			}
			if perr.Status != tc.status {
				t.Errorf("status = %d, want %d", perr.Status, tc.status)
			}
		})
	}
}

func TestGeminiCompleteMalformedResponses(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"not json", "this is not json"},
		{"no candidates", `{"candidates": []}`},
		{"blank text", `{"candidates":[{"content":{"parts":[{"text":"   "}]}}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			transport := newGeminiTransport(geminiSettings(server.URL), server.Client())
			_, err := transport.Complete(context.Background(), "prompt")

			var perr *domain.ProviderError
			if !errors.As(err, &perr) {
				t.Fatalf("err = %v, want *domain.ProviderError", err)
			}
			if perr.Kind != domain.ErrKindMalformed {
				t.Errorf("kind = %s, want malformed", perr.Kind)
			}
			if perr.Retriable() {
				t.Error("malformed responses must not be retriable")
			}
		})
	}
}

func TestGeminiCompleteTransportErrorIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	endpoint := server.URL
	server.Close() // connection refused from here on

	transport := newGeminiTransport(geminiSettings(endpoint), &http.Client{})
	_, err := transport.Complete(context.Background(), "prompt")

	var perr *domain.ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *domain.ProviderError", err)
	}
	if perr.Kind != domain.ErrKindTransient {
		t.Errorf("kind = %s, want transient", perr.Kind)
	}
}

func TestFactoryRejectsUnknownKind(t *testing.T) {
	factory := NewFactory(testLogger{})
	_, err := factory.ForProvider(domain.ProviderSettings{Name: "mystery", Kind: "anthropic"})
	if err == nil {
		t.Fatal("expected error for unsupported provider kind")
	}
}

func TestFactoryBuildsKnownKinds(t *testing.T) {
	factory := NewFactory(testLogger{})
	for _, kind := range []string{domain.ProviderKindGemini, domain.ProviderKindOpenAI} {
		provider, err := factory.ForProvider(domain.ProviderSettings{
			Name:             "p-" + kind,
			Kind:             kind,
			FailureThreshold: 5,
			MaxRetries:       3,
		})
		if err != nil {
			t.Fatalf("ForProvider(%s): %v", kind, err)
		}
		if provider.Name() != "p-"+kind {
			t.Errorf("name = %q", provider.Name())
		}
		if !provider.Available() {
			t.Errorf("fresh provider %s must be available", kind)
		}
	}
}

type testLogger struct{}

func (testLogger) Debug(string, map[string]interface{})        {}
func (testLogger) Info(string, map[string]interface{})         {}
func (testLogger) Warn(string, map[string]interface{})         {}
func (testLogger) Error(string, error, map[string]interface{}) {}
