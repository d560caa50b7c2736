package ledger

import "time"

// Entry is one processed work order.
type Entry struct {
	ID         int64
	RunID      string
	SourcePath string
	Minutes    float64
	RecordedAt time.Time
}

// Totals aggregates the whole ledger for reporting.
type Totals struct {
	Processed int64
	Minutes   float64
	Runs      int64
}
