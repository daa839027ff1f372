package domain

// ToolGuidance describes one diagnostic tool: what it does, how to call it,
// and which keywords map free-text questions onto it. Entries are loaded
// once at process start and never mutated.
type ToolGuidance struct {
	Key         string   `yaml:"key" json:"key"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Keywords    []string `yaml:"keywords" json:"keywords,omitempty"`
	Usage       []string `yaml:"usage" json:"usage"`
	Example     string   `yaml:"example" json:"example"`
}
