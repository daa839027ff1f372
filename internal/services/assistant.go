package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/asoraledecnal/vantage/internal/domain"
	"github.com/asoraledecnal/vantage/internal/ports"
)

const (
	confidenceToolAnswer    = "92%"
	confidenceGeneralAnswer = "90%"
	confidenceUnavailable   = "0%"

	unavailableText = "I'm having trouble reaching the assistant right now. Please try again in a moment."

	// introQuestion is sent to providers when the caller asks nothing.
	introQuestion = "Briefly introduce how you can help with IT, systems, and networking questions."
)

var defaultActions = []string{
	"Review /api/tool-guidance?tool=whois to learn how the WHOIS lookup works.",
	"Use /api/domain with a `fields` array to combine multiple tools in one request.",
	"Check the FAQ or documentation panels inside the dashboard for more tips.",
}

// AssistantService orchestrates answering a user question: resolve the tool,
// consult the cache, walk the providers in priority order, and degrade to
// deterministic guidance text when every provider is unavailable.
//
// The service itself is stateless per call; all durable state lives in the
// cache and the providers' circuit breakers, so concurrent calls need no
// coordination here.
type AssistantService struct {
	Guidance  ports.GuidanceRegistry
	Cache     ports.ResponseCache
	Providers []ports.Provider
	Prompts   ports.PromptBuilder
	Logger    ports.Logger
}

// Answer processes one question end-to-end. It never fails: provider errors
// escalate to the next provider and finally to a deterministic answer.
func (s *AssistantService) Answer(req domain.AssistantRequest) domain.Answer {
	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return s.introAnswer(ctx, req.Recent)
	}

	tool := ResolveTool(s.Guidance, question, req.ToolHint)
	if tool == "" && req.Recent != nil {
		if g, ok := s.Guidance.Lookup(req.Recent.Tool); ok {
			tool = g.Key
		}
	}

	if cached, ok := s.Cache.Get(tool, req.Recent, question); ok {
		s.Logger.Debug("cache hit", map[string]interface{}{"tool": tool})
		return s.buildCachedAnswer(tool, cached, req.Recent)
	}

	if answer, ok := s.tryProviders(ctx, question, tool, req.Recent, true); ok {
		return answer
	}

	if tool != "" {
		return s.buildGuidanceAnswer(tool, req.Recent)
	}
	return s.unavailableAnswer(req.Recent)
}

// tryProviders walks the providers in priority order. For each provider the
// prompt variants rotate tool-tailored, general, tool-tailored again; the
// first nonempty completion wins and, when cacheable, is stored.
func (s *AssistantService) tryProviders(ctx context.Context, question, tool string, recent *domain.RecentActivity, cacheable bool) (domain.Answer, bool) {
	variants := []string{""}
	if tool != "" {
		variants = []string{tool, "", tool}
	}

	for _, provider := range s.Providers {
		if !provider.Available() {
			s.Logger.Info("provider skipped, circuit open", map[string]interface{}{
				"provider": provider.Name(),
			})
			continue
		}

		for _, variantTool := range variants {
			prompt := s.buildPrompt(question, variantTool, recent)
			text, err := provider.Complete(ctx, prompt)
			if err != nil {
				if ctx.Err() != nil {
					// Caller is gone; stop burning provider budget.
					return domain.Answer{}, false
				}
				if errors.Is(err, domain.ErrCircuitOpen) || !provider.Available() {
					// Opened mid-walk: abandon the remaining variants.
					break
				}
				continue
			}
			if text == "" {
				continue
			}
			if cacheable {
				s.Cache.Set(tool, recent, question, text)
			}
			return s.buildProviderAnswer(provider.Name(), variantTool, text, recent), true
		}
	}
	return domain.Answer{}, false
}

func (s *AssistantService) buildPrompt(question, tool string, recent *domain.RecentActivity) string {
	if tool != "" {
		if g, ok := s.Guidance.Lookup(tool); ok {
			return s.Prompts.ToolPrompt(question, g, s.suggestedActions(g), recent)
		}
	}
	return s.Prompts.GeneralPrompt(question, recent)
}

func (s *AssistantService) introAnswer(ctx context.Context, recent *domain.RecentActivity) domain.Answer {
	if len(s.Providers) > 0 {
		if answer, ok := s.tryProviders(ctx, introQuestion, "", recent, false); ok {
			return answer
		}
	}
	return s.unavailableAnswer(recent)
}

func (s *AssistantService) buildProviderAnswer(provider, tool, text string, recent *domain.RecentActivity) domain.Answer {
	if g, ok := s.Guidance.Lookup(tool); ok {
		return domain.Answer{
			Text:             text,
			Tool:             g.Key,
			Tips:             g.Usage,
			Example:          g.Example,
			SuggestedActions: s.suggestedActions(g),
			Confidence:       confidenceToolAnswer,
			Provider:         provider,
			Recent:           recent,
		}
	}
	return domain.Answer{
		Text:             text,
		SuggestedActions: defaultActions,
		Confidence:       confidenceGeneralAnswer,
		Provider:         provider,
		Recent:           recent,
	}
}

func (s *AssistantService) buildCachedAnswer(tool, text string, recent *domain.RecentActivity) domain.Answer {
	answer := s.buildProviderAnswer(domain.ProviderCache, tool, text, recent)
	answer.Provider = domain.ProviderCache
	return answer
}

// buildGuidanceAnswer is the deterministic degradation path: a templated
// sentence assembled from the catalog, no provider involved.
func (s *AssistantService) buildGuidanceAnswer(tool string, recent *domain.RecentActivity) domain.Answer {
	g, ok := s.Guidance.Lookup(tool)
	if !ok {
		return s.unavailableAnswer(recent)
	}

	text := fmt.Sprintf("%s helps with %s Ask for more details or use %s.",
		g.Title, strings.ToLower(g.Description), g.Example)
	if line := recent.Line(); line != "" {
		text = line + " " + text
	}

	confidence := 50 + len(g.Usage)*10
	if confidence > 95 {
		confidence = 95
	}

	return domain.Answer{
		Text:             text,
		Tool:             g.Key,
		Tips:             g.Usage,
		Example:          g.Example,
		SuggestedActions: s.suggestedActions(g),
		Confidence:       fmt.Sprintf("%d%%", confidence),
		Provider:         domain.ProviderDeterministic,
		Recent:           recent,
	}
}

func (s *AssistantService) unavailableAnswer(recent *domain.RecentActivity) domain.Answer {
	return domain.Answer{
		Text:             unavailableText,
		SuggestedActions: defaultActions,
		Confidence:       confidenceUnavailable,
		Provider:         domain.ProviderDeterministic,
		Recent:           recent,
		AvailableTools:   s.Guidance.SupportedTools(),
	}
}

func (s *AssistantService) suggestedActions(g domain.ToolGuidance) []string {
	actions := []string{fmt.Sprintf("Call `/api/tool-guidance?tool=%s` for step-by-step usage.", g.Key)}
	if g.Example != "" {
		actions = append(actions, g.Example)
	}
	if g.Key == "domain" {
		actions = append(actions, "Include the `fields` payload to filter the diagnostics you need.")
	}
	return actions
}

// Compile-time interface compliance check
var _ domain.AssistantService = (*AssistantService)(nil)
