package domain

// Config mirrors ~/.vantage/config.yaml.
type Config struct {
	ConfigFormatVersion string             `yaml:"config_format_version"`
	Providers           []ProviderSettings `yaml:"providers"`
	Cache               CacheSettings      `yaml:"cache"`
	Server              ServerSettings     `yaml:"server"`
	History             HistorySettings    `yaml:"history"`
	Guidance            GuidanceSettings   `yaml:"guidance"`
}

// ProviderSettings describes one generative-AI backend declared in the
// config file. List order is fallback priority order.
type ProviderSettings struct {
	Name             string  `yaml:"name"`
	Kind             string  `yaml:"kind"`
	Endpoint         string  `yaml:"endpoint"`
	AuthEnvVar       string  `yaml:"auth_env_var"`
	ModelID          string  `yaml:"model_id"`
	MaxRetries       int     `yaml:"max_retries"`
	BackoffSeconds   int     `yaml:"retry_backoff_seconds"`
	FailureThreshold int     `yaml:"circuit_failure_threshold"`
	CooldownSeconds  int     `yaml:"circuit_cooldown_seconds"`
	TimeoutSeconds   int     `yaml:"timeout_seconds"`
	MaxOutputTokens  int     `yaml:"max_output_tokens"`
	Temperature      float64 `yaml:"temperature"`
	// Disabled force-skips the provider regardless of key presence.
	Disabled bool `yaml:"disabled"`
}

// Provider kinds select the transport implementation.
const (
	ProviderKindGemini = "gemini"
	ProviderKindOpenAI = "openai"
)

// CacheSettings bounds the response cache.
type CacheSettings struct {
	TTLSeconds int `yaml:"ttl_seconds"`
	MaxEntries int `yaml:"max_entries"`
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	ListenAddr string `yaml:"listen_addr"`
}

// HistorySettings controls conversation history storage.
type HistorySettings struct {
	Path        string `yaml:"path"`
	RecentLimit int    `yaml:"recent_limit"`
}

// GuidanceSettings allows operators to override the embedded catalog.
type GuidanceSettings struct {
	CatalogFile string `yaml:"catalog_file"`
}
