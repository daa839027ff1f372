// Package app wires the dependency graph for the CLI and HTTP entrypoints.
package app

import (
	"context"
	"fmt"

	"github.com/asoraledecnal/vantage/internal/domain"
	"github.com/asoraledecnal/vantage/internal/infrastructure/ai"
	"github.com/asoraledecnal/vantage/internal/infrastructure/cache"
	"github.com/asoraledecnal/vantage/internal/infrastructure/config"
	"github.com/asoraledecnal/vantage/internal/infrastructure/guidance"
	"github.com/asoraledecnal/vantage/internal/infrastructure/history"
	"github.com/asoraledecnal/vantage/internal/pkg/logger"
	"github.com/asoraledecnal/vantage/internal/ports"
	"github.com/asoraledecnal/vantage/internal/services"
)

// Container aggregates the application dependencies.
type Container struct {
	Config         domain.Config
	ConfigProvider ports.ConfigProvider
	ConfigPath     string
	Logger         ports.Logger
	Guidance       ports.GuidanceRegistry
	Cache          ports.ResponseCache
	Providers      []ports.Provider
	History        ports.HistoryRepository
	Assistant      *services.AssistantService
	Doctor         *services.DoctorService
}

// BuildContainer assembles all dependencies from configuration.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	log := logger.New(verbose)

	loader := config.NewFileLoader("")
	cfg, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	registry, err := guidance.NewRegistry(cfg.Guidance.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("load guidance catalog: %w", err)
	}

	responseCache := cache.NewMemoryCache(cfg.CacheTTL(), cfg.Cache.MaxEntries)

	factory := ai.NewFactory(log)
	var providers []ports.Provider
	for _, settings := range cfg.EnabledProviders() {
		provider, err := factory.ForProvider(settings)
		if err != nil {
			log.Warn("provider not wired", map[string]interface{}{
				"provider": settings.Name,
				"reason":   err.Error(),
			})
			continue
		}
		providers = append(providers, provider)
	}
	if len(providers) == 0 {
		log.Warn("no providers available, answers will be deterministic", nil)
	}

	historyStore := buildHistoryStore(cfg, log)

	assistant := &services.AssistantService{
		Guidance:  registry,
		Cache:     responseCache,
		Providers: providers,
		Prompts:   ai.Prompts{},
		Logger:    log,
	}

	doctor := &services.DoctorService{
		ConfigProvider: loader,
		Guidance:       registry,
		History:        historyStore,
	}

	return &Container{
		Config:         cfg,
		ConfigProvider: loader,
		ConfigPath:     loader.Path(),
		Logger:         log,
		Guidance:       registry,
		Cache:          responseCache,
		Providers:      providers,
		History:        historyStore,
		Assistant:      assistant,
		Doctor:         doctor,
	}, nil
}

func buildHistoryStore(cfg domain.Config, log ports.Logger) ports.HistoryRepository {
	store, err := history.NewSQLiteStore(cfg.History.Path)
	if err != nil {
		log.Warn("history database unavailable, falling back to memory", map[string]interface{}{
			"path":   cfg.History.Path,
			"reason": err.Error(),
		})
		return history.NewMemoryStore()
	}
	return store
}

// Close releases held resources.
func (c *Container) Close() error {
	if c.History != nil {
		return c.History.Close()
	}
	return nil
}
