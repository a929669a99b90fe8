package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/eufat/snapshell/internal/domain"
	"github.com/eufat/snapshell/internal/ports"
)

// DoctorService runs environment diagnostics.
type DoctorService struct {
	ConfigProvider ports.ConfigProvider
	History        ports.HistoryRepository
	Cache          ports.CacheRepository
	Clipboard      ports.Clipboard
}

// Run executes checks and returns a report.
func (s *DoctorService) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("loaded, format %s", cfg.ConfigFormatVersion)))

	if cfg.APIKey == "" {
		checks = append(checks, fail("API key", "SNAPSHELL_OPENROUTER_API_KEY is not set"))
	} else {
		checks = append(checks, ok("API key", "present"))
	}

	if cfg.Model != "" {
		checks = append(checks, ok("Model", cfg.Model))
	} else {
		checks = append(checks, warn("Model", "no model configured, using default"))
	}

	if s.History != nil {
		checks = append(checks, checkWritableDir("History", filepath.Dir(s.History.Path())))
	}
	if s.Cache != nil {
		checks = append(checks, checkWritableDir("Cache", s.Cache.Dir()))
	}

	if s.Clipboard != nil && s.Clipboard.Enabled() {
		checks = append(checks, ok("Clipboard", "available"))
	} else {
		checks = append(checks, warn("Clipboard", "not available on this platform"))
	}

	return domain.HealthReport{Checks: checks}, nil
}

func checkWritableDir(name, dir string) domain.HealthCheck {
	if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
		return fail(name, fmt.Sprintf("cannot create %s: %v", dir, err))
	}
	probe := filepath.Join(dir, ".doctor-probe")
	if err := os.WriteFile(probe, nil, domain.SecureFilePermissions); err != nil {
		return fail(name, fmt.Sprintf("not writable: %v", err))
	}
	_ = os.Remove(probe)
	return ok(name, dir)
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
