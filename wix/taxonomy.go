package wix

import (
	"context"
	"net/http"
	"strings"

	"github.com/fwojciec/wixport"
)

func termPath(kind wixport.TermKind) (string, error) {
	switch kind {
	case wixport.TermTag:
		return "/blog/v3/tags", nil
	case wixport.TermCategory:
		return "/blog/v3/categories", nil
	default:
		return "", wixport.Errorf(wixport.EINVALID, "unknown term kind %q", kind)
	}
}

// FindTerms retrieves all terms of the given kind.
func (c *Client) FindTerms(ctx context.Context, kind wixport.TermKind) ([]*wixport.Term, error) {
	path, err := termPath(kind)
	if err != nil {
		return nil, err
	}
	var out struct {
		Tags       []*wixport.Term `json:"tags"`
		Categories []*wixport.Term `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if kind == wixport.TermTag {
		return out.Tags, nil
	}
	return out.Categories, nil
}

// CreateTerm creates a term of the given kind. The tag and category
// endpoints take differently shaped payloads.
func (c *Client) CreateTerm(ctx context.Context, kind wixport.TermKind, label string) (*wixport.Term, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, wixport.Errorf(wixport.EINVALID, "term label required")
	}
	path, err := termPath(kind)
	if err != nil {
		return nil, err
	}

	var body any
	if kind == wixport.TermTag {
		body = struct {
			Label string `json:"label"`
		}{Label: label}
	} else {
		body = struct {
			Category *wixport.Term `json:"category"`
		}{Category: &wixport.Term{Label: label}}
	}

	var out struct {
		Tag      *wixport.Term `json:"tag"`
		Category *wixport.Term `json:"category"`
	}
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	term := out.Tag
	if kind == wixport.TermCategory {
		term = out.Category
	}
	if term == nil || term.ID == "" {
		return nil, wixport.Errorf(wixport.EINTERNAL, "wix api returned no %s", kind)
	}
	return term, nil
}

// EnsureTerms resolves labels to term IDs, creating terms that do not
// exist yet. Matching against existing terms is case-insensitive and the
// returned IDs preserve input order without duplicates.
func (c *Client) EnsureTerms(ctx context.Context, kind wixport.TermKind, labels []string) ([]string, error) {
	cleaned := make([]string, 0, len(labels))
	for _, label := range labels {
		if label = strings.TrimSpace(label); label != "" {
			cleaned = append(cleaned, label)
		}
	}
	if len(cleaned) == 0 {
		return nil, nil
	}

	existing, err := c.FindTerms(ctx, kind)
	if err != nil {
		return nil, err
	}
	byLabel := make(map[string]string, len(existing))
	for _, term := range existing {
		byLabel[strings.ToLower(term.Label)] = term.ID
	}

	var ids []string
	seen := make(map[string]bool)
	for _, label := range cleaned {
		key := strings.ToLower(label)
		id, ok := byLabel[key]
		if !ok {
			term, err := c.createOrFetchTerm(ctx, kind, label)
			if err != nil {
				return nil, err
			}
			id = term.ID
			byLabel[key] = id
		}
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// createOrFetchTerm creates a term, falling back to a fresh listing when
// creation conflicts with a term created since the last read.
func (c *Client) createOrFetchTerm(ctx context.Context, kind wixport.TermKind, label string) (*wixport.Term, error) {
	term, err := c.CreateTerm(ctx, kind, label)
	if err == nil {
		return term, nil
	}
	if wixport.ErrorCode(err) != wixport.ECONFLICT {
		return nil, err
	}
	existing, listErr := c.FindTerms(ctx, kind)
	if listErr != nil {
		return nil, listErr
	}
	for _, t := range existing {
		if strings.EqualFold(t.Label, label) {
			return t, nil
		}
	}
	return nil, err
}
