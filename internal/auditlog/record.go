package auditlog

import "time"

// CycleEntry records one completed dashboard fetch cycle.
type CycleEntry struct {
	ID            int64     `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Tab           string    `json:"tab"`
	Organization  string    `json:"organization,omitempty"`
	Sequence      uint64    `json:"sequence"`
	Status        string    `json:"status"`
	Queries       int       `json:"queries"`
	FailedQueries []string  `json:"failed_queries,omitempty"`
	Synthetic     bool      `json:"synthetic"`
	Message       string    `json:"message,omitempty"`
	DurationMs    int64     `json:"duration_ms"`
}

// Recorder receives completed fetch cycles.
type Recorder interface {
	Record(entry *CycleEntry) error
}
