package migrate

import (
	"context"
	"strings"

	"github.com/fwojciec/wixport"
	"golang.org/x/sync/errgroup"
)

// PreviewResult holds the outcome of a preview run.
type PreviewResult struct {
	Saved  int
	Failed int
}

// previewOutcome holds the outcome of converting a single post.
type previewOutcome struct {
	slug    string
	preview *wixport.Preview
	err     error
}

// Preview renders every publishable post as a Markdown preview and swaps
// the staged files into the output directory on success. Conversion is
// local work, so unlike the migration path it fans out to a bounded worker
// pool; files are saved from a single collector.
func (m *Migrator) Preview(ctx context.Context, progress ProgressFunc) (*PreviewResult, error) {
	posts, err := m.publishablePosts()
	if err != nil {
		return nil, err
	}
	if m.Limit > 0 && len(posts) > m.Limit {
		posts = posts[:m.Limit]
	}
	total := len(posts)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	workers := m.Workers
	if workers <= 0 {
		workers = 4
	}

	outcomes := make(chan previewOutcome, total)

	var g errgroup.Group
	g.SetLimit(workers)
	go func() {
		for _, post := range posts {
			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				preview, err := m.buildPreview(post)
				outcomes <- previewOutcome{slug: post.Slug, preview: preview, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(outcomes)
	}()

	result := &PreviewResult{}
	completed := 0
	for outcome := range outcomes {
		completed++
		if outcome.err != nil {
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, Completed: completed, Total: total, Slug: outcome.slug, Error: outcome.err})
			}
			continue
		}
		if err := m.Previews.SavePreview(ctx, outcome.preview); err != nil {
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, Completed: completed, Total: total, Slug: outcome.slug, Error: err})
			}
			continue
		}
		result.Saved++
		if progress != nil {
			progress(ProgressEvent{Type: ProgressCompleted, Completed: completed, Total: total, Slug: outcome.slug})
		}
	}

	if err := ctx.Err(); err != nil {
		if aerr := m.Previews.Abort(); aerr != nil {
			m.logger().Error("discarding staged previews failed", "err", aerr)
		}
		return nil, err
	}
	if err := m.Previews.Commit(); err != nil {
		return nil, err
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
	return result, nil
}

// buildPreview converts one post body to Markdown and assembles the
// preview with its taxonomy and read time.
func (m *Migrator) buildPreview(post *wixport.Post) (*wixport.Preview, error) {
	markdown, err := m.Markdown.Convert(post.ContentHTML)
	if err != nil {
		return nil, err
	}
	return &wixport.Preview{
		Slug:       post.Slug,
		Title:      post.Title,
		Categories: m.CategoryMap.CanonicalAll(post.Categories),
		Tags:       post.Tags,
		ReadTime:   wixport.ReadTimeForWords(len(strings.Fields(markdown))),
		Markdown:   markdown,
	}, nil
}
