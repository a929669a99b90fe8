// Package history persists the append-only interaction log.
package history

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/eufat/snapshell/internal/domain"
	"github.com/eufat/snapshell/internal/ports"
)

// FileStore appends history records to a jsonl file, one compact JSON
// object per line. The file is shared across process runs; each record is
// written with a single write in append mode so concurrent appends never
// interleave partial lines.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store under ~/.snapshell/history/history.jsonl.
func NewFileStore() *FileStore {
	return &FileStore{
		path: filepath.Join(userHome(), ".snapshell", "history", "history.jsonl"),
	}
}

// NewFileStoreAt creates a store backed by an explicit path.
func NewFileStoreAt(path string) *FileStore {
	return &FileStore{path: path}
}

// Append implements ports.HistoryRepository.
func (f *FileStore) Append(record domain.HistoryRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirectoryPermissions); err != nil {
		return domain.NewError(domain.KindPersistence, "history", err)
	}
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, domain.HistoryFilePermissions)
	if err != nil {
		return domain.NewError(domain.KindPersistence, "history", err)
	}
	defer file.Close()
	data, err := json.Marshal(record)
	if err != nil {
		return domain.NewError(domain.KindPersistence, "history", err)
	}
	data = append(data, '\n')
	if _, err := file.Write(data); err != nil {
		return domain.NewError(domain.KindPersistence, "history", err)
	}
	return nil
}

// Records loads entries oldest first. Malformed lines are skipped, not
// fatal; the count of skipped lines is returned for reporting.
func (f *FileStore) Records(limit int, search string) ([]domain.HistoryRecord, int, error) {
	file, err := os.Open(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, nil
		}
		return nil, 0, domain.NewError(domain.KindPersistence, "history", err)
	}
	defer file.Close()

	var (
		records []domain.HistoryRecord
		skipped int
	)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec domain.HistoryRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			skipped++
			continue
		}
		if search != "" && !strings.Contains(rec.Prompt, search) && !strings.Contains(rec.Command, search) {
			continue
		}
		records = append(records, rec)
		if limit > 0 && len(records) >= limit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return records, skipped, domain.NewError(domain.KindPersistence, "history", err)
	}
	return records, skipped, nil
}

// Clear removes the history file.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return domain.NewError(domain.KindPersistence, "history", err)
	}
	return nil
}

// ExportJSON copies the raw jsonl log to the given destination.
func (f *FileStore) ExportJSON(dest string) error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return domain.NewError(domain.KindPersistence, "history", err)
	}
	if err := os.WriteFile(dest, data, domain.HistoryFilePermissions); err != nil {
		return domain.NewError(domain.KindPersistence, "history", err)
	}
	return nil
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

func userHome() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.HistoryRepository = (*FileStore)(nil)
