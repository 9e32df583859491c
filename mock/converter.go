package mock

import (
	"context"

	"github.com/fwojciec/wixport"
)

var _ wixport.RichTextConverter = (*RichTextConverter)(nil)

// RichTextConverter is a mock implementation of wixport.RichTextConverter.
type RichTextConverter struct {
	ConvertFn func(ctx context.Context, html string) (*wixport.RichContent, error)
}

func (c *RichTextConverter) Convert(ctx context.Context, html string) (*wixport.RichContent, error) {
	return c.ConvertFn(ctx, html)
}

var _ wixport.MarkdownConverter = (*MarkdownConverter)(nil)

// MarkdownConverter is a mock implementation of wixport.MarkdownConverter.
type MarkdownConverter struct {
	ConvertFn func(html string) (string, error)
}

func (c *MarkdownConverter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
