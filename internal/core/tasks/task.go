package tasks

import (
	"encoding/json"
	"time"
)

// completedAtLayout renders UTC timestamps with millisecond precision
// ("2026-10-19T08:30:00.000Z").
const completedAtLayout = "2006-01-02T15:04:05.000Z07:00"

// Task is one entry of the active list. ID identifies the task for the
// lifetime of the process and is not persisted.
type Task struct {
	ID        int    `json:"-"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// HistoryEntry is an archived completed task.
type HistoryEntry struct {
	Text        string
	CompletedAt time.Time
}

type historyRecord struct {
	Text        string `json:"text"`
	CompletedAt string `json:"completedAt"`
}

// MarshalJSON stores the completion time as an ISO-8601 UTC string.
func (entry HistoryEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(historyRecord{
		Text:        entry.Text,
		CompletedAt: entry.CompletedAt.UTC().Format(completedAtLayout),
	})
}

// UnmarshalJSON accepts any RFC 3339 timestamp. An unparseable timestamp
// leaves CompletedAt zero rather than dropping the entry.
func (entry *HistoryEntry) UnmarshalJSON(data []byte) error {
	var record historyRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return err
	}
	entry.Text = record.Text
	entry.CompletedAt = time.Time{}
	if parsed, err := time.Parse(time.RFC3339Nano, record.CompletedAt); err == nil {
		entry.CompletedAt = parsed
	}
	return nil
}
