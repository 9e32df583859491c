// Package fs writes migration artifacts (post previews, redirect maps,
// run reports) to the local filesystem.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fwojciec/wixport"
)

// Ensure PreviewStore implements wixport.PreviewStore at compile time.
var _ wixport.PreviewStore = (*PreviewStore)(nil)

// PreviewStore implements wixport.PreviewStore with atomic update semantics.
// Previews are saved to a temporary directory, then moved atomically on Commit.
type PreviewStore struct {
	baseDir string
	name    string
}

// NewPreviewStore creates a new PreviewStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewPreviewStore(baseDir, name string) *PreviewStore {
	return &PreviewStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *PreviewStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *PreviewStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// SavePreview stages a preview for the output directory.
func (s *PreviewStore) SavePreview(ctx context.Context, preview *wixport.Preview) error {
	if err := preview.Validate(); err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), PreviewFilename(preview.Slug))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	return os.WriteFile(fullPath, []byte(FormatPreview(preview)), 0644)
}

// Commit atomically replaces the output directory with the staged previews.
func (s *PreviewStore) Commit() error {
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}

	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards the staged previews.
func (s *PreviewStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// filenameRe matches runs of characters that are unsafe in a file name.
var filenameRe = regexp.MustCompile(`[^a-z0-9._-]+`)

// PreviewFilename converts a post slug into a Markdown file name, for
// example "hello-world.md".
func PreviewFilename(slug string) string {
	name := strings.ToLower(strings.TrimSpace(slug))
	name = filenameRe.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-.")
	if name == "" {
		name = "post"
	}
	return name + ".md"
}

// FormatPreview formats a preview with YAML frontmatter.
func FormatPreview(preview *wixport.Preview) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("title: ")
	b.WriteString(preview.Title)
	b.WriteString("\nslug: ")
	b.WriteString(preview.Slug)
	if len(preview.Categories) > 0 {
		b.WriteString("\ncategories: ")
		b.WriteString(strings.Join(preview.Categories, ", "))
	}
	if len(preview.Tags) > 0 {
		b.WriteString("\ntags: ")
		b.WriteString(strings.Join(preview.Tags, ", "))
	}
	if preview.ReadTime > 0 {
		b.WriteString("\nreadtime: ")
		b.WriteString(preview.ReadTime.String())
	}
	b.WriteString("\n---\n\n")
	b.WriteString(preview.Markdown)
	return b.String()
}
