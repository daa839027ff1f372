package services

import (
	"context"
	"fmt"
	"os"

	"github.com/asoraledecnal/vantage/internal/domain"
	"github.com/asoraledecnal/vantage/internal/ports"
)

// DoctorService runs environment diagnostics.
type DoctorService struct {
	ConfigProvider ports.ConfigProvider
	Guidance       ports.GuidanceRegistry
	History        ports.HistoryRepository
}

// Run executes checks and returns a report.
func (s *DoctorService) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("loaded version %s", cfg.ConfigFormatVersion)))

	if err := cfg.Validate(); err != nil {
		checks = append(checks, fail("Config validation", err.Error()))
	} else {
		checks = append(checks, ok("Config validation", "consistent"))
	}

	checks = append(checks, providerChecks(cfg)...)

	if s.Guidance != nil {
		checks = append(checks, ok("Guidance catalog", fmt.Sprintf("%d tools registered", len(s.Guidance.All()))))
	} else {
		checks = append(checks, fail("Guidance catalog", "not initialized"))
	}

	if s.History != nil {
		if err := s.History.Healthy(); err != nil {
			checks = append(checks, warn("History store", err.Error()))
		} else {
			checks = append(checks, ok("History store", "reachable"))
		}
	} else {
		checks = append(checks, warn("History store", "not configured"))
	}

	return domain.HealthReport{Checks: checks}, nil
}

func providerChecks(cfg domain.Config) []domain.HealthCheck {
	if len(cfg.Providers) == 0 {
		return []domain.HealthCheck{warn("Providers", "none configured; assistant will answer deterministically")}
	}
	var checks []domain.HealthCheck
	for _, p := range cfg.Providers {
		name := fmt.Sprintf("Provider %s", p.Name)
		switch {
		case p.Disabled:
			checks = append(checks, warn(name, "disabled by configuration"))
		case p.AuthEnvVar != "" && os.Getenv(p.AuthEnvVar) == "":
			checks = append(checks, warn(name, fmt.Sprintf("%s not set; provider will be skipped", p.AuthEnvVar)))
		default:
			checks = append(checks, ok(name, fmt.Sprintf("%s via %s", p.ModelID, p.Kind)))
		}
	}
	return checks
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
