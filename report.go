package wixport

import "time"

// MigrationReport summarizes one migration run.
type MigrationReport struct {
	StartedAt  time.Time     `json:"startedAt"`
	FinishedAt time.Time     `json:"finishedAt"`
	DryRun     bool          `json:"dryRun"`
	OK         []ReportEntry `json:"ok"`
	Skipped    []ReportEntry `json:"skipped"`
	Failed     []ReportEntry `json:"failed"`
}

// ReportEntry records the outcome for a single post.
type ReportEntry struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Status  string `json:"status"`
	PostURL string `json:"postUrl,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ReportWriter persists a migration report.
type ReportWriter interface {
	// WriteReport writes the report to path as JSON.
	WriteReport(path string, report *MigrationReport) error
}
