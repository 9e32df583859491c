package fs

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/fwojciec/wixport"
)

// Ensure RedirectWriter implements wixport.RedirectWriter at compile time.
var _ wixport.RedirectWriter = (*RedirectWriter)(nil)

// RedirectWriter writes redirect maps as CSV files.
type RedirectWriter struct{}

// NewRedirectWriter creates a new RedirectWriter.
func NewRedirectWriter() *RedirectWriter {
	return &RedirectWriter{}
}

// WriteRedirects writes the redirects to path as CSV, one OldURL,NewURL
// row per redirect under a header row.
func (w *RedirectWriter) WriteRedirects(path string, redirects []wixport.Redirect) error {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write([]string{"OldURL", "NewURL"}); err != nil {
		return err
	}
	for _, r := range redirects {
		if err := cw.Write([]string{r.OldURL, r.NewURL}); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	return os.WriteFile(path, buf.Bytes(), 0644)
}
