// Package ports defines the interfaces between the application core and
// external adapters.
//
// Following the Ports and Adapters pattern, the session logic in
// internal/services depends only on these abstractions; concrete
// implementations live in the infrastructure layer (HTTP provider, JSONL
// history file, clipboard, file cache).
package ports

import (
	"context"

	"github.com/eufat/snapshell/internal/domain"
)

// ConfigProvider loads the resolved configuration (file plus environment
// overrides).
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// CompletionRequest carries one full-transcript chat request to a provider.
type CompletionRequest struct {
	Model    string
	Messages []domain.Message
	Effort   domain.ReasoningLevel
	// IncludeReasoning asks the provider to surface model reasoning as a
	// trailing JSON line on the completion text.
	IncludeReasoning bool
}

// Provider is the remote model boundary. Complete sends the transcript and
// returns the raw completion text. It must honor context cancellation and
// must not retry on its own.
type Provider interface {
	Name() string
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// HistoryRepository owns the append-only history log and is its sole writer
// within the process.
type HistoryRepository interface {
	// Append writes one record as a single line.
	Append(domain.HistoryRecord) error
	// Records returns entries oldest first along with the number of
	// malformed lines that were skipped.
	Records(limit int, search string) ([]domain.HistoryRecord, int, error)
	Clear() error
	ExportJSON(dest string) error
	Path() string
}

// CacheRepository stores raw completions for identical one-shot requests.
type CacheRepository interface {
	Get(key string) (domain.CacheEntry, bool, error)
	Set(domain.CacheEntry) error
	Clear() error
	Dir() string
}

// Clipboard provides cross-platform clipboard integration for copying
// generated commands.
type Clipboard interface {
	Copy(text string) error
	Enabled() bool
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
