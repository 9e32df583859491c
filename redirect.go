package wixport

// Redirect maps a WordPress permalink to the URL of the migrated post.
// The redirect list is handed to whoever manages the site's URL rules.
type Redirect struct {
	OldURL string `json:"oldUrl"`
	NewURL string `json:"newUrl"`
}

// RedirectWriter persists a redirect list.
type RedirectWriter interface {
	// WriteRedirects writes the redirects to path in CSV form.
	WriteRedirects(path string, redirects []Redirect) error
}
