package wixport

import "context"

// RichTextConverter converts WordPress post HTML into a rich content tree.
type RichTextConverter interface {
	// Convert parses the HTML fragment and maps it onto the Ricos node
	// grammar. The returned document is normalized and valid.
	// Returns EINVALID if the input is empty or unparseable.
	Convert(ctx context.Context, html string) (*RichContent, error)
}

// MarkdownConverter converts HTML to Markdown. Used to render readable
// previews of post bodies before a migration run.
type MarkdownConverter interface {
	// Convert transforms HTML content into Markdown.
	Convert(html string) (string, error)
}
