package mock

import (
	"github.com/fwojciec/wixport"
)

var _ wixport.ReportWriter = (*ReportWriter)(nil)

// ReportWriter is a mock implementation of wixport.ReportWriter.
type ReportWriter struct {
	WriteReportFn func(path string, report *wixport.MigrationReport) error
}

func (w *ReportWriter) WriteReport(path string, report *wixport.MigrationReport) error {
	return w.WriteReportFn(path, report)
}
