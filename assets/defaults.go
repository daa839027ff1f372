package assets

import (
	_ "embed"
)

// DefaultConfigYAML contains the embedded default configuration.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte

// DefaultGuidanceYAML contains the embedded diagnostic tool catalog.
//
//go:embed defaults/guidance.yaml
var DefaultGuidanceYAML []byte
