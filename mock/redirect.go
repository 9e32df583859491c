package mock

import (
	"github.com/fwojciec/wixport"
)

var _ wixport.RedirectWriter = (*RedirectWriter)(nil)

// RedirectWriter is a mock implementation of wixport.RedirectWriter.
type RedirectWriter struct {
	WriteRedirectsFn func(path string, redirects []wixport.Redirect) error
}

func (w *RedirectWriter) WriteRedirects(path string, redirects []wixport.Redirect) error {
	return w.WriteRedirectsFn(path, redirects)
}
