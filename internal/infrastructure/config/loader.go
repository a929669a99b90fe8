// Package config loads YAML configuration and applies environment
// overrides.
package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/eufat/snapshell/internal/domain"
	"github.com/eufat/snapshell/internal/ports"
)

// Environment variables recognized by the loader. The API key is env-only
// and never written to the config file.
const (
	EnvAPIKey          = "SNAPSHELL_OPENROUTER_API_KEY"
	EnvConfigPath      = "SNAPSHELL_CONFIG"
	EnvModel           = "SNAPSHELL_MODEL"
	EnvSystem          = "SNAPSHELL_SYSTEM"
	EnvSystemSingle    = "SNAPSHELL_SYSTEM_SINGLE"
	EnvSystemMultiline = "SNAPSHELL_SYSTEM_MULTILINE"
)

// FileLoader loads ~/.snapshell/config.yaml (overridable via
// SNAPSHELL_CONFIG), writing the defaults on first run.
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader. An empty path resolves via
// SNAPSHELL_CONFIG and the home directory.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return domain.Config{}, domain.NewError(domain.KindConfiguration, "config", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return domain.Config{}, domain.NewError(domain.KindConfiguration, "config", err)
		}
		cfg := defaultConfig()
		if err := writeDefault(path, cfg); err != nil {
			return domain.Config{}, domain.NewError(domain.KindConfiguration, "config", err)
		}
		return applyEnv(cfg), nil
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, domain.NewError(domain.KindConfiguration, "config", err)
	}
	return applyEnv(hydrateDefaults(cfg)), nil
}

// Path returns the resolved config file location.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(userHomeDir(), ".snapshell", "config.yaml")
}

func writeDefault(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

func defaultConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Model:               domain.DefaultModel,
		Endpoint:            domain.DefaultEndpoint,
		TimeoutSeconds:      int(domain.DefaultHTTPClientTimeout.Seconds()),
		Reasoning:           string(domain.ReasoningLow),
		CopyToClipboard:     true,
		Cache: domain.CacheSettings{
			Enabled:    true,
			TTLMinutes: domain.DefaultCacheTTLMinutes,
			MaxEntries: domain.DefaultMaxCacheEntries,
		},
	}
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.Model == "" {
		cfg.Model = domain.DefaultModel
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = domain.DefaultEndpoint
	}
	if cfg.TimeoutSeconds == 0 {
		cfg.TimeoutSeconds = int(domain.DefaultHTTPClientTimeout.Seconds())
	}
	if cfg.Reasoning == "" {
		cfg.Reasoning = string(domain.ReasoningLow)
	}
	if cfg.Cache.TTLMinutes == 0 {
		cfg.Cache.TTLMinutes = domain.DefaultCacheTTLMinutes
	}
	if cfg.Cache.MaxEntries == 0 {
		cfg.Cache.MaxEntries = domain.DefaultMaxCacheEntries
	}
	return cfg
}

// applyEnv layers environment overrides on top of file values.
func applyEnv(cfg domain.Config) domain.Config {
	cfg.APIKey = os.Getenv(EnvAPIKey)
	if model := os.Getenv(EnvModel); model != "" {
		cfg.Model = model
	}
	if system := os.Getenv(EnvSystem); system != "" {
		cfg.System.Generic = system
	}
	if single := os.Getenv(EnvSystemSingle); single != "" {
		cfg.System.SingleLine = single
	}
	if multi := os.Getenv(EnvSystemMultiline); multi != "" {
		cfg.System.Multiline = multi
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(userHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
