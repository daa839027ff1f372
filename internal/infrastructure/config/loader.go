// Package config loads the Vantage YAML configuration.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/asoraledecnal/vantage/assets"
	"github.com/asoraledecnal/vantage/internal/domain"
	"github.com/asoraledecnal/vantage/internal/pkg/filesystem"
	"github.com/asoraledecnal/vantage/internal/ports"
)

// FileLoader loads YAML configuration from ~/.vantage/config.yaml
// (overridable via VANTAGE_CONFIG). On first run the embedded defaults are
// written out so operators have a file to edit.
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. Configuration is validated here;
// fatal misconfiguration (for example a non-positive cache capacity) fails
// the load rather than being degraded around later.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if err := os.WriteFile(path, assets.DefaultConfigYAML, 0o600); err != nil {
				return domain.Config{}, err
			}
			data = assets.DefaultConfigYAML
		} else {
			return domain.Config{}, err
		}
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg = hydrateDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Path exposes the resolved config file location.
func (l *FileLoader) Path() string {
	return l.resolvePath()
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("VANTAGE_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".vantage", "config.yaml")
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.Cache.TTLSeconds == 0 {
		cfg.Cache.TTLSeconds = 300
	}
	if cfg.Cache.MaxEntries == 0 {
		cfg.Cache.MaxEntries = 256
	}
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":8080"
	}
	if cfg.History.Path == "" {
		cfg.History.Path = filepath.Join(filesystem.UserHomeDir(), ".vantage", "history", "conversations.db")
	}
	for i := range cfg.Providers {
		p := &cfg.Providers[i]
		if p.MaxRetries == 0 {
			p.MaxRetries = 3
		}
		if p.FailureThreshold == 0 {
			p.FailureThreshold = 5
		}
		if p.CooldownSeconds == 0 {
			p.CooldownSeconds = 60
		}
		if p.TimeoutSeconds == 0 {
			p.TimeoutSeconds = 15
		}
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
