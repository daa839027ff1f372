package ai

import (
	"fmt"
	"net/http"

	"github.com/asoraledecnal/vantage/internal/domain"
	"github.com/asoraledecnal/vantage/internal/infrastructure/resilience"
	"github.com/asoraledecnal/vantage/internal/ports"
)

// Factory builds resilient provider clients from configuration. A single
// HTTP client is shared across all raw-HTTP transports; per-attempt
// deadlines come from the request context, not the client.
type Factory struct {
	httpClient *http.Client
	logger     ports.Logger
}

// NewFactory creates a provider factory.
func NewFactory(logger ports.Logger) *Factory {
	return &Factory{httpClient: &http.Client{}, logger: logger}
}

// ForProvider wraps the transport selected by the settings' kind in the
// retry/circuit policy. The breaker is created here, once per provider, and
// lives as long as the returned client.
func (f *Factory) ForProvider(settings domain.ProviderSettings) (ports.Provider, error) {
	var transport resilience.Transport
	switch settings.Kind {
	case domain.ProviderKindGemini:
		transport = newGeminiTransport(settings, f.httpClient)
	case domain.ProviderKindOpenAI:
		transport = newOpenAITransport(settings)
	default:
		return nil, fmt.Errorf("unsupported provider kind: %s", settings.Kind)
	}

	breaker := resilience.NewBreaker(settings.FailureThreshold, settings.Cooldown())
	return resilience.NewClient(transport, settings, breaker, f.logger), nil
}

var _ ports.ProviderFactory = (*Factory)(nil)
