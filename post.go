package wixport

import (
	"regexp"
	"strings"
	"time"
)

// Post statuses as exported by WordPress. Only published posts are
// migrated by default.
const (
	PostStatusPublish = "publish"
	PostStatusDraft   = "draft"
)

// Post is a normalized WordPress post extracted from an export dump.
type Post struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	ContentHTML      string    `json:"contentHtml"`
	Excerpt          string    `json:"excerpt"`
	Status           string    `json:"status"`
	Permalink        string    `json:"permalink"`
	FeaturedImageURL string    `json:"featuredImageUrl"`
	AuthorEmail      string    `json:"authorEmail"`
	Categories       []string  `json:"categories"`
	Tags             []string  `json:"tags"`
	SEOTitle         string    `json:"seoTitle"`
	SEODescription   string    `json:"seoDescription"`
	PublishedAt      time.Time `json:"publishedAt"`
}

// Validate returns an error if the post contains invalid fields.
func (p *Post) Validate() error {
	if p.Title == "" {
		return Errorf(EINVALID, "post title required")
	}
	if p.Slug == "" {
		return Errorf(EINVALID, "post slug required")
	}
	return nil
}

// PostSource provides posts parsed from a WordPress export.
type PostSource interface {
	Posts() ([]*Post, error)
}

var slugInvalidRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a title: accents are folded to ASCII,
// anything that is not a lowercase letter or digit becomes a dash, runs of
// dashes collapse and the result is capped at 200 characters.
func Slugify(s string) string {
	s = stripAccents(strings.ToLower(strings.TrimSpace(s)))
	s = slugInvalidRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > 200 {
		s = strings.Trim(s[:200], "-")
	}
	return s
}

// MergePosts combines two post sets, deduplicating by slug. Posts from
// primary win over secondary; secondary posts keep their relative order
// after the primary ones.
func MergePosts(primary, secondary []*Post) []*Post {
	out := make([]*Post, 0, len(primary)+len(secondary))
	seen := make(map[string]bool, len(primary))
	for _, p := range primary {
		key := mergeKey(p)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	for _, p := range secondary {
		key := mergeKey(p)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

func mergeKey(p *Post) string {
	if p.Slug != "" {
		return p.Slug
	}
	return Slugify(p.Title)
}
