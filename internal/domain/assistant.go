// Package domain defines core business entities and value objects for Vantage.
//
// The domain layer is independent of infrastructure concerns and represents
// pure business data structures: assistant questions and answers, tool
// guidance, configuration, and conversation history.
package domain

import (
	"context"
	"strings"
	"time"
)

// AssistantRequest captures a user question arriving from the HTTP API or CLI.
type AssistantRequest struct {
	Context   context.Context
	Question  string
	ToolHint  string
	SessionID string
	// Recent carries the caller's prior diagnostic action, when known.
	// Nil means no recent activity.
	Recent *RecentActivity
}

// RecentActivity summarizes the user's most recent diagnostic action.
// It scopes cache keys and enriches prompts; it is read-only input.
type RecentActivity struct {
	Tool      string    `json:"tool,omitempty"`
	Target    string    `json:"target,omitempty"`
	Summary   string    `json:"summary,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// Line renders the activity as a short human sentence fragment, e.g.
// "Latest port scan on example.com (443 open)". Empty when nothing is known.
func (r *RecentActivity) Line() string {
	if r == nil {
		return ""
	}
	parts := make([]string, 0, 3)
	if r.Tool != "" {
		parts = append(parts, "Latest "+strings.ReplaceAll(r.Tool, "_", " "))
	}
	if r.Target != "" {
		parts = append(parts, "on "+r.Target)
	}
	if r.Summary != "" {
		parts = append(parts, "("+r.Summary+")")
	}
	return strings.Join(parts, " ")
}

// Answer is the canonical assistant response. It is produced fresh per
// request and never stored beyond the response and the optional cache entry.
type Answer struct {
	Text             string          `json:"answer"`
	Tool             string          `json:"tool,omitempty"`
	Tips             []string        `json:"tips,omitempty"`
	Example          string          `json:"example,omitempty"`
	SuggestedActions []string        `json:"suggested_actions,omitempty"`
	Confidence       string          `json:"confidence"`
	Provider         string          `json:"provider,omitempty"`
	Recent           *RecentActivity `json:"context,omitempty"`
	// AvailableTools is populated only on the static unavailable answer.
	AvailableTools []string `json:"available_tools,omitempty"`
}

// Provenance labels for Answer.Provider beyond real provider names.
const (
	ProviderDeterministic = "deterministic"
	ProviderCache         = "cache"
)

// AssistantService exposes the use-case boundary for answering a question.
type AssistantService interface {
	Answer(AssistantRequest) Answer
}
