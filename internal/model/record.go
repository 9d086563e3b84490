package model

import "time"

// TotalUnknown marks a total count that could not be read from the report,
// i.e. the summary line was absent.
const TotalUnknown = -1

// CleanRecord is one persisted clean run. The history database stores a row
// per run so operators can audit which reports were filtered, when, and how
// many blocks each run removed.
type CleanRecord struct {
	// ID is the database row ID, assigned on insert.
	ID int64

	// RunID uniquely identifies the run across databases (UUID string).
	RunID string

	// InputPath is the report file that was read.
	InputPath string

	// OutputPath is the file the filtered report was written to.
	OutputPath string

	// RemovedCount is the number of issue blocks removed by the run.
	RemovedCount int

	// OriginalTotal is the issue count read from the summary line before
	// filtering, or TotalUnknown when the line was absent.
	OriginalTotal int

	// NewTotal is the issue count written back to the summary line, or
	// TotalUnknown when the line was absent.
	NewTotal int

	// SummaryUpdated reports whether the summary line was found and rewritten.
	SummaryUpdated bool

	// Timestamp is when the run completed.
	Timestamp time.Time
}
