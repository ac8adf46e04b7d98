package models

import (
	"time"
)

// SyncDirection says which way a sync run moved records
type SyncDirection string

const (
	SyncDump    SyncDirection = "dump"
	SyncRestore SyncDirection = "restore"
)

// SyncReport summarizes one dump or restore run for a single list
type SyncReport struct {
	RunID           string            `json:"run_id"`
	Direction       SyncDirection     `json:"direction"`
	Resource        string            `json:"resource"`
	TotalRecords    int               `json:"total_records"`
	SuccessfulCount int               `json:"successful"`
	FailedCount     int               `json:"failed"`
	DurationMs      int64             `json:"duration_ms"`
	RowsPerSec      float64           `json:"rows_per_sec,omitempty"`
	Errors          []ValidationError `json:"errors,omitempty"`
	StartedAt       time.Time         `json:"started_at"`
	CompletedAt     time.Time         `json:"completed_at"`
}

// ValidationError represents a single validation error. Index is the
// 1-based position of the record in its list.
type ValidationError struct {
	Index   int         `json:"index"`
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Finish stamps completion time and throughput
func (r *SyncReport) Finish() {
	r.CompletedAt = time.Now()
	duration := r.CompletedAt.Sub(r.StartedAt)
	r.DurationMs = duration.Milliseconds()
	if r.TotalRecords > 0 && duration.Seconds() > 0 {
		r.RowsPerSec = float64(r.TotalRecords) / duration.Seconds()
	}
}
