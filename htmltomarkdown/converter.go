// Package htmltomarkdown renders WordPress post HTML as Markdown for
// pre-migration previews.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/wixport"
)

// Ensure Converter implements wixport.MarkdownConverter at compile time.
var _ wixport.MarkdownConverter = (*Converter)(nil)

// shortcodeRe matches caption and gallery shortcode wrappers, which
// carry no previewable content of their own.
var shortcodeRe = regexp.MustCompile(`(?i)\[/?(?:caption|gallery)[^\]]*\]`)

// Converter wraps html-to-markdown to convert post HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", wixport.Errorf(wixport.EINVALID, "empty HTML input")
	}

	html = shortcodeRe.ReplaceAllString(html, "")

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return result, nil
}
