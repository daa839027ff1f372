// Package guidance holds the static catalog of diagnostic tool guidance.
//
// The catalog is loaded once at process start from the embedded defaults
// (or an operator-supplied YAML file) and never mutated afterwards. Catalog
// order is declaration order; tool resolution tie-breaking relies on it.
package guidance

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/asoraledecnal/vantage/assets"
	"github.com/asoraledecnal/vantage/internal/domain"
	"github.com/asoraledecnal/vantage/internal/ports"
)

type catalogFile struct {
	Tools []domain.ToolGuidance `yaml:"tools"`
}

// Registry is an immutable, ordered tool guidance catalog.
type Registry struct {
	tools  []domain.ToolGuidance
	byKey  map[string]domain.ToolGuidance
	sorted []string
}

// NewRegistry loads the catalog from path, or from the embedded defaults
// when path is empty.
func NewRegistry(path string) (*Registry, error) {
	raw := assets.DefaultGuidanceYAML
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read guidance catalog: %w", err)
		}
		raw = data
	}

	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse guidance catalog: %w", err)
	}
	if len(file.Tools) == 0 {
		return nil, fmt.Errorf("guidance catalog is empty")
	}

	byKey := make(map[string]domain.ToolGuidance, len(file.Tools))
	keys := make([]string, 0, len(file.Tools))
	for _, tool := range file.Tools {
		key := strings.ToLower(strings.TrimSpace(tool.Key))
		if key == "" {
			return nil, fmt.Errorf("guidance entry %q has no key", tool.Title)
		}
		if _, dup := byKey[key]; dup {
			return nil, fmt.Errorf("duplicate guidance key %q", key)
		}
		tool.Key = key
		byKey[key] = tool
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return &Registry{tools: file.Tools, byKey: byKey, sorted: keys}, nil
}

// All returns the catalog in declaration order. Callers must not mutate the
// returned slice.
func (r *Registry) All() []domain.ToolGuidance {
	return r.tools
}

// Lookup finds a tool by key, case-insensitively.
func (r *Registry) Lookup(key string) (domain.ToolGuidance, bool) {
	tool, ok := r.byKey[strings.ToLower(strings.TrimSpace(key))]
	return tool, ok
}

// SupportedTools returns the sorted tool keys.
func (r *Registry) SupportedTools() []string {
	return r.sorted
}

var _ ports.GuidanceRegistry = (*Registry)(nil)
