package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/eufat/snapshell/internal/domain"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStoreAt(filepath.Join(t.TempDir(), "history.jsonl"))

	want := domain.HistoryRecord{
		Timestamp: time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
		Prompt:    "list files modified today",
		Command:   "ls -lt",
	}
	if err := store.Append(want); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	records, skipped, err := store.Records(0, "")
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if skipped != 0 {
		t.Fatalf("skipped = %d, want 0", skipped)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	got := records[0]
	if got.Prompt != want.Prompt || got.Command != want.Command {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if !got.Timestamp.Equal(want.Timestamp) {
		t.Fatalf("timestamp changed instant: got %v, want %v", got.Timestamp, want.Timestamp)
	}
}

func TestFileStorePreservesAppendOrder(t *testing.T) {
	store := NewFileStoreAt(filepath.Join(t.TempDir(), "history.jsonl"))

	prompts := []string{"first", "second", "third"}
	for _, p := range prompts {
		if err := store.Append(domain.HistoryRecord{Timestamp: time.Now().UTC(), Prompt: p, Command: "ls"}); err != nil {
			t.Fatalf("Append(%q) error = %v", p, err)
		}
	}

	records, _, err := store.Records(0, "")
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(records) != len(prompts) {
		t.Fatalf("records = %d, want %d", len(records), len(prompts))
	}
	for i, p := range prompts {
		if records[i].Prompt != p {
			t.Fatalf("record %d prompt = %q, want %q (oldest first)", i, records[i].Prompt, p)
		}
	}
}

func TestFileStoreSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	content := `{"timestamp":"2024-05-01T12:00:00Z","prompt":"ok","command":"ls"}
this line is not json
{"timestamp":"2024-05-01T12:01:00Z","prompt":"also ok","command":"pwd"}
{"broken":
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	store := NewFileStoreAt(path)

	records, skipped, err := store.Records(0, "")
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if skipped != 2 {
		t.Fatalf("skipped = %d, want 2", skipped)
	}
}

func TestFileStoreSearchAndLimit(t *testing.T) {
	store := NewFileStoreAt(filepath.Join(t.TempDir(), "history.jsonl"))
	entries := []domain.HistoryRecord{
		{Timestamp: time.Now().UTC(), Prompt: "archive logs", Command: "tar -czf logs.tar.gz /var/log"},
		{Timestamp: time.Now().UTC(), Prompt: "disk usage", Command: "df -h"},
		{Timestamp: time.Now().UTC(), Prompt: "archive home", Command: "tar -czf home.tar.gz ~"},
	}
	for _, e := range entries {
		if err := store.Append(e); err != nil {
			t.Fatal(err)
		}
	}

	matches, _, err := store.Records(0, "archive")
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 2 {
		t.Fatalf("search matches = %d, want 2", len(matches))
	}

	limited, _, err := store.Records(1, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 || limited[0].Prompt != "archive logs" {
		t.Fatalf("limited = %+v", limited)
	}
}

func TestFileStoreReadMissingFileIsEmpty(t *testing.T) {
	store := NewFileStoreAt(filepath.Join(t.TempDir(), "missing.jsonl"))
	records, skipped, err := store.Records(0, "")
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(records) != 0 || skipped != 0 {
		t.Fatalf("expected empty read, got %d records, %d skipped", len(records), skipped)
	}
}

func TestFileStoreClear(t *testing.T) {
	store := NewFileStoreAt(filepath.Join(t.TempDir(), "history.jsonl"))
	if err := store.Append(domain.HistoryRecord{Timestamp: time.Now().UTC(), Prompt: "p", Command: "c"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	records, _, err := store.Records(0, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Fatalf("records after clear = %d", len(records))
	}
	// Clearing an already-missing file is not an error.
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear() error = %v", err)
	}
}

func TestFileStoreExportJSON(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStoreAt(filepath.Join(dir, "history.jsonl"))
	if err := store.Append(domain.HistoryRecord{Timestamp: time.Now().UTC(), Prompt: "p", Command: "c"}); err != nil {
		t.Fatal(err)
	}

	dest := filepath.Join(dir, "export.jsonl")
	if err := store.ExportJSON(dest); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	orig, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatal(err)
	}
	exported, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(orig) != string(exported) {
		t.Fatal("export differs from source log")
	}
}
