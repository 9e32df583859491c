package wixport

import (
	"context"
	"time"
)

// Preview is a Markdown rendering of a converted post, written to disk
// so the post body can be proofread before a migration run.
type Preview struct {
	Slug       string        `json:"slug"`
	Title      string        `json:"title"`
	Categories []string      `json:"categories"`
	Tags       []string      `json:"tags"`
	ReadTime   time.Duration `json:"readTime"`
	Markdown   string        `json:"markdown"`
}

// Validate returns an error if the preview contains invalid fields.
func (p *Preview) Validate() error {
	if p.Slug == "" {
		return Errorf(EINVALID, "preview slug required")
	}
	if p.Markdown == "" {
		return Errorf(EINVALID, "preview markdown required")
	}
	return nil
}

// PreviewStore persists post previews with atomic replace semantics:
// previews accumulate in a staging area until Commit swaps them in as
// the new preview directory.
type PreviewStore interface {
	// SavePreview stages a preview for the output directory.
	SavePreview(ctx context.Context, preview *Preview) error

	// Commit atomically replaces the output directory with the staged
	// previews.
	Commit() error

	// Abort discards the staged previews.
	Abort() error
}
