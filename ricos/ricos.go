// Package ricos converts WordPress post HTML into the Wix Ricos rich
// content node tree. The conversion is a recursive descent over the
// parsed DOM with a fixed tag-to-node mapping; anything the grammar
// cannot express is flattened to text or carried as a raw HTML node.
package ricos

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wixport"
	"golang.org/x/net/html"
)

// TableMode selects how <table> elements are converted.
type TableMode string

// Table conversion modes.
const (
	// TableModeNodes builds a native TABLE node tree.
	TableModeNodes TableMode = "nodes"
	// TableModeHTML carries the table as a raw HTML node.
	TableModeHTML TableMode = "html"
	// TableModeParagraphs flattens the table to its cell text.
	TableModeParagraphs TableMode = "paragraphs"
)

// ImageImporter uploads an external image and returns its media ID.
// Returning an error or an empty ID keeps the original URL in place.
type ImageImporter func(ctx context.Context, src string) (string, error)

// Converter converts HTML to rich content.
type Converter struct {
	tableMode     TableMode
	imageImporter ImageImporter
	newID         func() string
}

var _ wixport.RichTextConverter = (*Converter)(nil)

// Option configures a Converter.
type Option func(*Converter)

// WithTableMode sets the table conversion mode.
func WithTableMode(mode TableMode) Option {
	return func(c *Converter) { c.tableMode = mode }
}

// WithImageImporter sets the importer used to move images into the media
// manager during conversion.
func WithImageImporter(importer ImageImporter) Option {
	return func(c *Converter) { c.imageImporter = importer }
}

// WithIDs sets the node ID generator. Used by tests to get deterministic
// output.
func WithIDs(newID func() string) Option {
	return func(c *Converter) { c.newID = newID }
}

// NewConverter creates a Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		tableMode: TableModeNodes,
		newID:     wixport.NewNodeID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var shortcodeRe = regexp.MustCompile(`(?i)\[/?(?:caption|gallery)[^\]]*\]`)

// Convert parses the HTML fragment and maps it onto the Ricos grammar.
// The returned document is normalized and valid. Returns EINVALID if the
// input is empty.
func (c *Converter) Convert(ctx context.Context, input string) (*wixport.RichContent, error) {
	if strings.TrimSpace(input) == "" {
		return nil, wixport.Errorf(wixport.EINVALID, "empty HTML input")
	}

	cleaned := shortcodeRe.ReplaceAllString(input, "")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(cleaned))
	if err != nil {
		return nil, wixport.Errorf(wixport.EINVALID, "failed to parse HTML: %v", err)
	}
	doc.Find("script, style, noscript").Remove()

	var nodes []*wixport.Node
	for _, body := range doc.Find("body").Nodes {
		nodes = append(nodes, c.container(ctx, body)...)
	}

	rc := &wixport.RichContent{Nodes: nodes}
	rc.Normalize(c.newID)
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	return rc, nil
}

// container walks the children of parent, coalescing runs of inline
// content into paragraphs and dispatching block elements. It is used for
// the document body and for every element that holds block content
// (div, li, blockquote, td).
func (c *Converter) container(ctx context.Context, parent *html.Node) []*wixport.Node {
	var out []*wixport.Node
	var run []*html.Node

	flush := func() {
		if len(run) == 0 {
			return
		}
		var deferred []*wixport.Node
		parts := c.inlineRun(ctx, run, &deferred)
		if len(parts) > 0 {
			out = append(out, paragraph(parts))
		}
		out = append(out, deferred...)
		run = nil
	}

	for n := parent.FirstChild; n != nil; n = n.NextSibling {
		switch {
		case n.Type == html.TextNode:
			run = append(run, n)
		case n.Type == html.ElementNode && inlineTags[n.Data]:
			run = append(run, n)
		case n.Type == html.ElementNode:
			flush()
			out = append(out, c.block(ctx, n)...)
		}
	}
	flush()
	return out
}

// block converts a single block-level element. Images and embeds found
// inside inline content are hoisted after their enclosing paragraph.
func (c *Converter) block(ctx context.Context, n *html.Node) []*wixport.Node {
	switch n.Data {
	case "p":
		var deferred []*wixport.Node
		parts := c.inlineRun(ctx, childNodes(n), &deferred)
		var out []*wixport.Node
		if len(parts) > 0 {
			out = append(out, paragraph(parts))
		}
		return append(out, deferred...)

	case "div", "section", "article", "main", "header", "footer", "aside":
		return c.container(ctx, n)

	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := int(n.Data[1] - '0')
		var deferred []*wixport.Node
		parts := c.inlineRun(ctx, childNodes(n), &deferred)
		var out []*wixport.Node
		if len(parts) > 0 {
			out = append(out, heading(level, parts))
		}
		return append(out, deferred...)

	case "ul", "ol":
		if list := c.list(ctx, n); list != nil {
			return []*wixport.Node{list}
		}
		return nil

	case "blockquote":
		if children := c.container(ctx, n); len(children) > 0 {
			return []*wixport.Node{blockquote(children)}
		}
		return nil

	case "hr":
		return []*wixport.Node{divider()}

	case "pre":
		src := n
		if codeEl := findFirst(n, "code"); codeEl != nil {
			src = codeEl
		}
		text := preText(src)
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []*wixport.Node{codeBlock(text)}

	case "figure":
		return c.figure(ctx, n)

	case "table":
		return c.table(ctx, n)

	case "iframe":
		if embed := c.embed(n); embed != nil {
			return []*wixport.Node{embed}
		}
		return nil
	}

	// Unknown blocks keep their text.
	if txt := flatText(n); txt != "" {
		return []*wixport.Node{paragraph([]*wixport.Node{textNode(txt, nil)})}
	}
	return nil
}

// list converts ul/ol. Each direct li becomes a LIST_ITEM holding block
// content, so nested lists and images inside items survive.
func (c *Converter) list(ctx context.Context, n *html.Node) *wixport.Node {
	var items []*wixport.Node
	for li := n.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.Data != "li" {
			continue
		}
		if children := c.container(ctx, li); len(children) > 0 {
			items = append(items, listItem(children))
		}
	}
	if len(items) == 0 {
		return nil
	}
	return listContainer(n.Data == "ol", items)
}

// figure prefers an image child, then an embed, then the caption text.
func (c *Converter) figure(ctx context.Context, n *html.Node) []*wixport.Node {
	caption := flatText(findFirst(n, "figcaption"))
	if img := findFirst(n, "img"); img != nil {
		if node := c.image(ctx, img, caption); node != nil {
			return []*wixport.Node{node}
		}
	}
	if iframe := findFirst(n, "iframe"); iframe != nil {
		if embed := c.embed(iframe); embed != nil {
			return []*wixport.Node{embed}
		}
	}
	if txt := flatText(n); txt != "" {
		return []*wixport.Node{paragraph([]*wixport.Node{textNode(txt, nil)})}
	}
	return nil
}

// image builds an IMAGE node, importing the source into the media manager
// when an importer is configured. Import failures fall back to the
// original URL; conversion never fails because of an image.
func (c *Converter) image(ctx context.Context, n *html.Node, caption string) *wixport.Node {
	src := attr(n, "src")
	if src == "" {
		return nil
	}
	alt := attr(n, "alt")
	if caption == "" {
		caption = attr(n, "title")
	}
	media := &wixport.MediaSrc{URL: src}
	if c.imageImporter != nil {
		if id, err := c.imageImporter(ctx, src); err == nil && id != "" {
			media = &wixport.MediaSrc{ID: id}
		}
	}
	return imageNode(media, intAttr(n, "width"), intAttr(n, "height"), alt, caption)
}

// embed converts an iframe to a VIDEO node when the source is a known
// video host, otherwise to a raw HTML node.
func (c *Converter) embed(n *html.Node) *wixport.Node {
	src := attr(n, "src")
	if src == "" {
		return nil
	}
	if url, ok := CanonicalVideoURL(src); ok {
		return videoNode(url)
	}
	markup, err := renderHTML(n)
	if err != nil {
		return nil
	}
	return htmlNode(markup)
}

func (c *Converter) table(ctx context.Context, n *html.Node) []*wixport.Node {
	switch c.tableMode {
	case TableModeHTML:
		markup, err := renderHTML(n)
		if err != nil {
			return nil
		}
		return []*wixport.Node{htmlNode(markup)}

	case TableModeParagraphs:
		if txt := flatText(n); txt != "" {
			return []*wixport.Node{paragraph([]*wixport.Node{textNode(txt, nil)})}
		}
		return nil
	}

	trs := tableRowElements(n)
	var rows []*wixport.Node
	cols := 0
	for _, tr := range trs {
		var cells []*wixport.Node
		for td := tr.FirstChild; td != nil; td = td.NextSibling {
			if td.Type != html.ElementNode || (td.Data != "td" && td.Data != "th") {
				continue
			}
			cells = append(cells, tableCell(c.container(ctx, td)))
		}
		if len(cells) == 0 {
			continue
		}
		if len(cells) > cols {
			cols = len(cells)
		}
		rows = append(rows, tableRow(cells))
	}
	if len(rows) == 0 {
		return nil
	}
	return []*wixport.Node{tableNode(rows, cols, findFirst(trs[0], "th") != nil)}
}

// tableRowElements collects tr elements directly under the table or under
// its thead/tbody/tfoot sections.
func tableRowElements(table *html.Node) []*html.Node {
	var rows []*html.Node
	for ch := table.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type != html.ElementNode {
			continue
		}
		switch ch.Data {
		case "tr":
			rows = append(rows, ch)
		case "thead", "tbody", "tfoot":
			for tr := ch.FirstChild; tr != nil; tr = tr.NextSibling {
				if tr.Type == html.ElementNode && tr.Data == "tr" {
					rows = append(rows, tr)
				}
			}
		}
	}
	return rows
}

func childNodes(n *html.Node) []*html.Node {
	var out []*html.Node
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		out = append(out, ch)
	}
	return out
}

// findFirst returns the first descendant element with the given tag, or
// nil. The search includes n itself.
func findFirst(n *html.Node, tag string) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if found := findFirst(ch, tag); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

func intAttr(n *html.Node, key string) int {
	v, err := strconv.Atoi(attr(n, key))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func renderHTML(n *html.Node) (string, error) {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return "", err
	}
	return b.String(), nil
}
