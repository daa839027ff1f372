package domain

import (
	"fmt"
	"os"
	"time"
)

// FindProvider searches for a provider by name.
func (c *Config) FindProvider(name string) (ProviderSettings, bool) {
	for _, p := range c.Providers {
		if p.Name == name {
			return p, true
		}
	}
	return ProviderSettings{}, false
}

// EnabledProviders returns the providers eligible for calls, in priority
// order: not disabled and holding a resolvable API key.
func (c *Config) EnabledProviders() []ProviderSettings {
	var out []ProviderSettings
	for _, p := range c.Providers {
		if p.Disabled {
			continue
		}
		if p.AuthEnvVar != "" && os.Getenv(p.AuthEnvVar) == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// CacheTTL returns the cache entry lifetime.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// RecentHistoryLimit bounds the recent-turn list served to callers.
func (c *Config) RecentHistoryLimit() int {
	const defaultLimit = 20
	if c.History.RecentLimit <= 0 {
		return defaultLimit
	}
	return c.History.RecentLimit
}

// Timeout returns the per-attempt deadline for a provider call.
func (p ProviderSettings) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// Backoff returns the base retry backoff for a provider.
func (p ProviderSettings) Backoff() time.Duration {
	return time.Duration(p.BackoffSeconds) * time.Second
}

// Cooldown returns the breaker open window for a provider.
func (p ProviderSettings) Cooldown() time.Duration {
	return time.Duration(p.CooldownSeconds) * time.Second
}

// Validate checks the configuration for fatal misconfiguration. It is run
// once at startup; a non-nil error aborts the process rather than being
// degraded around.
func (c *Config) Validate() error {
	if c.Cache.MaxEntries <= 0 {
		return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
	}
	if c.Cache.TTLSeconds <= 0 {
		return fmt.Errorf("cache.ttl_seconds must be positive, got %d", c.Cache.TTLSeconds)
	}
	seen := make(map[string]bool, len(c.Providers))
	for _, p := range c.Providers {
		if p.Name == "" {
			return fmt.Errorf("provider with empty name")
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate provider name %q", p.Name)
		}
		seen[p.Name] = true
		switch p.Kind {
		case ProviderKindGemini, ProviderKindOpenAI:
		default:
			return fmt.Errorf("provider %s: unsupported kind %q", p.Name, p.Kind)
		}
		if p.MaxRetries <= 0 {
			return fmt.Errorf("provider %s: max_retries must be positive", p.Name)
		}
		if p.FailureThreshold <= 0 {
			return fmt.Errorf("provider %s: circuit_failure_threshold must be positive", p.Name)
		}
		if p.CooldownSeconds <= 0 {
			return fmt.Errorf("provider %s: circuit_cooldown_seconds must be positive", p.Name)
		}
		if p.TimeoutSeconds <= 0 {
			return fmt.Errorf("provider %s: timeout_seconds must be positive", p.Name)
		}
	}
	return nil
}
