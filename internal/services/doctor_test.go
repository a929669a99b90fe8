package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/eufat/snapshell/internal/domain"
)

type stubConfigProvider struct {
	cfg domain.Config
	err error
}

func (s *stubConfigProvider) Load(context.Context) (domain.Config, error) {
	return s.cfg, s.err
}

type pathHistory struct {
	recordingHistory
	path string
}

func (p *pathHistory) Path() string { return p.path }

type dirCache struct {
	stubCache
	dir string
}

func (d *dirCache) Dir() string { return d.dir }

type unavailableClipboard struct{}

func (unavailableClipboard) Copy(string) error { return errors.New("unsupported") }

func (unavailableClipboard) Enabled() bool { return false }

func statusOf(t *testing.T, report domain.HealthReport, name string) domain.HealthStatus {
	t.Helper()
	for _, check := range report.Checks {
		if check.Name == name {
			return check.Status
		}
	}
	t.Fatalf("check %q missing from report", name)
	return ""
}

func TestDoctorHealthyEnvironment(t *testing.T) {
	dir := t.TempDir()
	svc := &DoctorService{
		ConfigProvider: &stubConfigProvider{cfg: domain.Config{
			ConfigFormatVersion: "1",
			Model:               domain.DefaultModel,
			APIKey:              "sk-or-test",
		}},
		History:   &pathHistory{path: filepath.Join(dir, "history", "history.jsonl")},
		Cache:     &dirCache{dir: filepath.Join(dir, "cache", "responses")},
		Clipboard: &stubClipboard{},
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, name := range []string{"Config file", "API key", "Model", "History", "Cache", "Clipboard"} {
		if got := statusOf(t, report, name); got != domain.HealthOK {
			t.Errorf("%s status = %s, want ok", name, got)
		}
	}
}

func TestDoctorMissingAPIKey(t *testing.T) {
	svc := &DoctorService{
		ConfigProvider: &stubConfigProvider{cfg: domain.Config{Model: domain.DefaultModel}},
		Clipboard:      &stubClipboard{},
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := statusOf(t, report, "API key"); got != domain.HealthError {
		t.Fatalf("API key status = %s, want error", got)
	}
}

func TestDoctorConfigLoadFailure(t *testing.T) {
	loadErr := domain.NewError(domain.KindConfiguration, "config", errors.New("yaml: bad"))
	svc := &DoctorService{ConfigProvider: &stubConfigProvider{err: loadErr}}

	report, err := svc.Run(context.Background())
	if err == nil {
		t.Fatal("Run() error = nil, want load failure")
	}
	if got := statusOf(t, report, "Config file"); got != domain.HealthError {
		t.Fatalf("Config file status = %s, want error", got)
	}
}

func TestDoctorClipboardUnavailableIsWarning(t *testing.T) {
	svc := &DoctorService{
		ConfigProvider: &stubConfigProvider{cfg: domain.Config{APIKey: "k", Model: "m"}},
		Clipboard:      unavailableClipboard{},
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := statusOf(t, report, "Clipboard"); got != domain.HealthWarn {
		t.Fatalf("Clipboard status = %s, want warn", got)
	}
}
