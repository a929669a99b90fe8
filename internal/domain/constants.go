package domain

import "time"

// File permission constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
	// HistoryFilePermissions is the permission for the history log (rw-r--r--)
	HistoryFilePermissions = 0o644
)

// Timeout constants
const (
	// DefaultHTTPClientTimeout bounds one chat completion request
	DefaultHTTPClientTimeout = 60 * time.Second
)

// Model defaults
const (
	// DefaultModel is the OpenRouter model used when nothing is configured
	DefaultModel = "openai/gpt-oss-20b"
	// DefaultEndpoint is the OpenRouter chat completions endpoint
	DefaultEndpoint = "https://openrouter.ai/api/v1/chat/completions"
)

// Cache defaults
const (
	// DefaultCacheTTLMinutes is how long a cached completion stays valid
	DefaultCacheTTLMinutes = 60
	// DefaultMaxCacheEntries caps the response cache size
	DefaultMaxCacheEntries = 100
)

// History defaults
const (
	// DefaultHistoryLimit is the default number of records to display
	DefaultHistoryLimit = 20
	// DefaultHistorySearchLimit bounds search results
	DefaultHistorySearchLimit = 50
)
