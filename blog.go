package wixport

import (
	"context"
	"time"
	"unicode/utf8"
)

// Field limits enforced by the Wix blog API.
const (
	MaxExcerptLen        = 3000
	MaxSEODescriptionLen = 156
	MaxRichContentBytes  = 50_000
)

// DraftPost is a Wix blog draft post. Revision implements optimistic
// concurrency: updates must carry the revision last read from the API and
// fail with ECONFLICT when it is stale.
type DraftPost struct {
	ID               string       `json:"id"`
	Revision         string       `json:"revision"`
	Title            string       `json:"title"`
	Slug             string       `json:"slug"`
	Excerpt          string       `json:"excerpt"`
	MemberID         string       `json:"memberId"`
	RichContent      *RichContent `json:"richContent"`
	CategoryIDs      []string     `json:"categoryIds"`
	TagIDs           []string     `json:"tagIds"`
	CoverMediaID     string       `json:"coverMediaId"`
	SEOTitle         string       `json:"seoTitle"`
	SEODescription   string       `json:"seoDescription"`
	FirstPublishedAt time.Time    `json:"firstPublishedAt"`
}

// Validate returns an error if the draft violates a Wix API limit.
func (d *DraftPost) Validate() error {
	if d.Title == "" {
		return Errorf(EINVALID, "draft post title required")
	}
	if utf8.RuneCountInString(d.Excerpt) > MaxExcerptLen {
		return Errorf(EINVALID, "draft post excerpt exceeds %d characters", MaxExcerptLen)
	}
	if utf8.RuneCountInString(d.SEODescription) > MaxSEODescriptionLen {
		return Errorf(EINVALID, "draft post SEO description exceeds %d characters", MaxSEODescriptionLen)
	}
	if len(d.TagIDs) > MaxTags {
		return Errorf(EINVALID, "draft post has more than %d tags", MaxTags)
	}
	return nil
}

// PublishedPost is a live post on the Wix blog.
type PublishedPost struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	URL              string    `json:"url"`
	FirstPublishedAt time.Time `json:"firstPublishedAt"`
}

// TermKind distinguishes the two blog taxonomies.
type TermKind string

// Taxonomy kinds.
const (
	TermTag      TermKind = "tag"
	TermCategory TermKind = "category"
)

// Term is a blog tag or category.
type Term struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Slug  string `json:"slug"`
}

// PostListFilter represents a filter for FindPosts.
type PostListFilter struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// BlogService represents the remote blog API.
type BlogService interface {
	// CreateDraft creates a new draft post and returns it with its
	// assigned ID and revision.
	CreateDraft(ctx context.Context, draft *DraftPost) (*DraftPost, error)

	// UpdateDraft updates an existing draft post. The draft must carry the
	// current revision.
	// Returns ENOTFOUND if the draft does not exist and ECONFLICT if the
	// revision is stale.
	UpdateDraft(ctx context.Context, draft *DraftPost) (*DraftPost, error)

	// GetDraft retrieves a draft post by ID.
	// Returns ENOTFOUND if the draft does not exist.
	GetDraft(ctx context.Context, id string) (*DraftPost, error)

	// Publish publishes a draft post and returns the live post ID.
	// Returns ENOTFOUND if the draft does not exist.
	Publish(ctx context.Context, draftID string) (string, error)

	// FindPosts retrieves published posts matching the filter.
	FindPosts(ctx context.Context, filter PostListFilter) ([]*PublishedPost, error)

	// FindTerms retrieves all terms of the given kind.
	FindTerms(ctx context.Context, kind TermKind) ([]*Term, error)

	// CreateTerm creates a term of the given kind.
	// Returns ECONFLICT if a term with the same label already exists.
	CreateTerm(ctx context.Context, kind TermKind, label string) (*Term, error)

	// EnsureTerms resolves labels to term IDs, creating missing terms.
	// Matching is case-insensitive; IDs are returned in input order.
	EnsureTerms(ctx context.Context, kind TermKind, labels []string) ([]string, error)
}

// MediaService imports external media into the site's media manager.
type MediaService interface {
	// ImportImage imports the image at url and returns its media ID.
	ImportImage(ctx context.Context, url string) (string, error)
}
