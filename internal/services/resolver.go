package services

import (
	"strings"

	"github.com/asoraledecnal/vantage/internal/ports"
)

// ResolveTool matches a free-text question to a known diagnostic tool.
//
// An explicit hint always wins when it names a known tool
// (case-insensitively). Otherwise every tool is scored against the
// lowercased question: +3 when the tool key appears as a substring, +1 per
// configured keyword that appears. The strictly highest nonzero score wins;
// ties keep the earlier tool in registry order. Empty string means no match.
func ResolveTool(registry ports.GuidanceRegistry, question, hint string) string {
	if hint != "" {
		if tool, ok := registry.Lookup(hint); ok {
			return tool.Key
		}
	}

	text := strings.ToLower(question)
	best := ""
	bestScore := 0
	for _, tool := range registry.All() {
		score := 0
		if strings.Contains(text, tool.Key) {
			score += 3
		}
		for _, keyword := range tool.Keywords {
			if strings.Contains(text, strings.ToLower(keyword)) {
				score++
			}
		}
		if score > bestScore {
			best = tool.Key
			bestScore = score
		}
	}
	return best
}
