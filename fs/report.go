package fs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fwojciec/wixport"
)

// Ensure ReportWriter implements wixport.ReportWriter at compile time.
var _ wixport.ReportWriter = (*ReportWriter)(nil)

// ReportWriter writes migration reports as JSON files.
type ReportWriter struct{}

// NewReportWriter creates a new ReportWriter.
func NewReportWriter() *ReportWriter {
	return &ReportWriter{}
}

// WriteReport writes the report to path as indented JSON. The report is
// staged under a temporary name and renamed into place.
func (w *ReportWriter) WriteReport(path string, report *wixport.MigrationReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0644); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}
