package domain

// Config mirrors ~/.snapshell/config.yaml plus environment overrides. It is
// resolved once at startup and passed into the session, never read from
// ambient globals afterwards.
type Config struct {
	ConfigFormatVersion string          `yaml:"config_format_version"`
	Model               string          `yaml:"model"`
	Endpoint            string          `yaml:"endpoint"`
	TimeoutSeconds      int             `yaml:"timeout"`
	Reasoning           string          `yaml:"reasoning"`
	CopyToClipboard     bool            `yaml:"copy_to_clipboard"`
	System              SystemOverrides `yaml:"system"`
	Cache               CacheSettings   `yaml:"cache"`

	// APIKey comes from SNAPSHELL_OPENROUTER_API_KEY only and is never
	// written back to the config file.
	APIKey string `yaml:"-"`
}

// SystemOverrides holds user-supplied system instructions replacing the
// built-in defaults.
type SystemOverrides struct {
	Generic    string `yaml:"generic"`
	SingleLine string `yaml:"single_line"`
	Multiline  string `yaml:"multiline"`
}

// CacheSettings configures the one-shot response cache.
type CacheSettings struct {
	Enabled    bool `yaml:"enabled"`
	TTLMinutes int  `yaml:"ttl_minutes"`
	MaxEntries int  `yaml:"max_entries"`
}

// ResolveSystemOverride picks the effective system instruction override for
// a mode. Priority: CLI generic > CLI mode-specific > config/env
// mode-specific > config/env generic. An empty result means the built-in
// default instruction applies.
func (c Config) ResolveSystemOverride(mode Mode, cliGeneric, cliSingle, cliMulti string) string {
	if cliGeneric != "" {
		return cliGeneric
	}
	if mode == ModeMultiline {
		if cliMulti != "" {
			return cliMulti
		}
		if c.System.Multiline != "" {
			return c.System.Multiline
		}
	} else {
		if cliSingle != "" {
			return cliSingle
		}
		if c.System.SingleLine != "" {
			return c.System.SingleLine
		}
	}
	return c.System.Generic
}
