// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and
// external adapters (infrastructure). Following the Ports and Adapters
// pattern, these interfaces keep the assistant core independent of specific
// implementations like HTTP clients, SQLite, or the CLI framework.
package ports

import (
	"context"

	"github.com/asoraledecnal/vantage/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.vantage/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// GuidanceRegistry is the read-only catalog of diagnostic tool guidance.
// Iteration order over All is stable for the process lifetime; tool
// resolution tie-breaking depends on it.
type GuidanceRegistry interface {
	All() []domain.ToolGuidance
	Lookup(key string) (domain.ToolGuidance, bool)
	SupportedTools() []string
}

// Provider is one external text-completion backend as seen by the
// orchestrator: a single call that either yields answer text or reports the
// provider unavailable. Implementations carry their own retry, backoff, and
// circuit-breaking policy.
type Provider interface {
	Name() string
	// Available reports whether the provider may be called right now.
	// False means the circuit is open and the call must be skipped without
	// network I/O.
	Available() bool
	Complete(ctx context.Context, prompt string) (string, error)
}

// PromptBuilder renders the deterministic prompt variants sent to
// providers. Determinism given the same inputs is part of the contract:
// cache-key stability depends on it.
type PromptBuilder interface {
	ToolPrompt(question string, tool domain.ToolGuidance, suggested []string, recent *domain.RecentActivity) string
	GeneralPrompt(question string, recent *domain.RecentActivity) string
}

// ProviderFactory builds provider instances from configuration.
type ProviderFactory interface {
	ForProvider(domain.ProviderSettings) (Provider, error)
}

// ResponseCache stores answer text keyed by (tool, recent activity,
// normalized question). Entries expire after a TTL and the cache holds a
// bounded number of entries.
type ResponseCache interface {
	Get(tool string, recent *domain.RecentActivity, question string) (string, bool)
	Set(tool string, recent *domain.RecentActivity, question, answer string)
}

// HistoryRepository persists answered assistant turns. It is the
// session/history collaborator: the core never touches it directly, the
// serving layer reads prior-turn context from it and writes answers into it.
type HistoryRepository interface {
	Save(domain.ConversationRecord) error
	Recent(sessionID string, limit int) ([]domain.ConversationRecord, error)
	Latest(sessionID string) (domain.ConversationRecord, bool, error)
	Healthy() error
	Close() error
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external
// services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
