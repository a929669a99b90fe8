package domain

import "time"

// HistoryRecord is one durably persisted (timestamp, prompt, command)
// triple. Reasoning text is never persisted.
type HistoryRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Prompt    string    `json:"prompt"`
	Command   string    `json:"command"`
}

// CacheEntry stores a cached raw completion keyed by the request hash.
type CacheEntry struct {
	Key        string    `json:"key"`
	Model      string    `json:"model"`
	Completion string    `json:"completion"`
	CreatedAt  time.Time `json:"created_at"`
}
