package ricos

import (
	"context"
	"regexp"
	"strings"

	"github.com/fwojciec/wixport"
	"golang.org/x/net/html"
)

// inlineTags are coalesced into the surrounding paragraph instead of
// starting a new block.
var inlineTags = map[string]bool{
	"span": true, "a": true, "strong": true, "b": true, "em": true,
	"i": true, "u": true, "s": true, "strike": true, "del": true,
	"code": true, "img": true, "br": true,
}

// inlineRun converts a run of inline nodes into TEXT nodes for a single
// paragraph. Images and embeds encountered in the run are appended to
// deferred so the caller can hoist them to block level.
func (c *Converter) inlineRun(ctx context.Context, nodes []*html.Node, deferred *[]*wixport.Node) []*wixport.Node {
	var parts []*wixport.Node
	for _, n := range nodes {
		parts = append(parts, c.inlineNode(ctx, n, nil, deferred)...)
	}
	return cleanInline(parts)
}

func (c *Converter) inlineChildren(ctx context.Context, n *html.Node, active []*wixport.Decoration, deferred *[]*wixport.Node) []*wixport.Node {
	var parts []*wixport.Node
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		parts = append(parts, c.inlineNode(ctx, ch, active, deferred)...)
	}
	return parts
}

func (c *Converter) inlineNode(ctx context.Context, n *html.Node, active []*wixport.Decoration, deferred *[]*wixport.Node) []*wixport.Node {
	switch n.Type {
	case html.TextNode:
		if s := collapseSpace(n.Data); s != "" {
			return []*wixport.Node{textNode(s, active)}
		}
		return nil
	case html.ElementNode:
	default:
		return nil
	}

	switch n.Data {
	case "br":
		return []*wixport.Node{textNode("\n", active)}
	case "img":
		if node := c.image(ctx, n, ""); node != nil {
			*deferred = append(*deferred, node)
		}
		return nil
	case "iframe":
		if node := c.embed(n); node != nil {
			*deferred = append(*deferred, node)
		}
		return nil
	}

	if d := decorationFor(n); d != nil && !hasDecoration(active, d.Type) {
		active = append(append([]*wixport.Decoration{}, active...), d)
	}
	return c.inlineChildren(ctx, n, active, deferred)
}

// decorationFor maps an inline tag to its decoration, or nil for tags
// that carry no formatting.
func decorationFor(n *html.Node) *wixport.Decoration {
	switch n.Data {
	case "strong", "b":
		return &wixport.Decoration{Type: wixport.DecorationBold}
	case "em", "i":
		return &wixport.Decoration{Type: wixport.DecorationItalic}
	case "u":
		return &wixport.Decoration{Type: wixport.DecorationUnderline}
	case "s", "strike", "del":
		return &wixport.Decoration{Type: wixport.DecorationStrikethrough}
	case "code":
		return &wixport.Decoration{Type: wixport.DecorationCode}
	case "a":
		href := attr(n, "href")
		if href == "" {
			return nil
		}
		link := &wixport.Link{URL: href}
		if strings.EqualFold(attr(n, "target"), "_blank") {
			link.Target = "BLANK"
		}
		return &wixport.Decoration{
			Type:     wixport.DecorationLink,
			LinkData: &wixport.LinkData{Link: link},
		}
	}
	return nil
}

func hasDecoration(decorations []*wixport.Decoration, t wixport.DecorationType) bool {
	for _, d := range decorations {
		if d.Type == t {
			return true
		}
	}
	return false
}

// cleanInline collapses redundant whitespace parts and trims the edges of
// the run: leading and trailing spaces and line breaks carry no meaning
// at paragraph boundaries.
func cleanInline(parts []*wixport.Node) []*wixport.Node {
	var out []*wixport.Node
	for _, p := range parts {
		switch p.TextData.Text {
		case " ":
			if len(out) == 0 {
				continue
			}
			if prev := out[len(out)-1].TextData.Text; strings.HasSuffix(prev, " ") || strings.HasSuffix(prev, "\n") {
				continue
			}
		case "\n":
			if len(out) == 0 {
				continue
			}
			if out[len(out)-1].TextData.Text == " " {
				out[len(out)-1] = p
				continue
			}
		default:
			if len(out) > 0 {
				if prev := out[len(out)-1].TextData.Text; strings.HasSuffix(prev, " ") || strings.HasSuffix(prev, "\n") {
					p.TextData.Text = strings.TrimLeft(p.TextData.Text, " ")
				}
			}
		}
		out = append(out, p)
	}

	for len(out) > 0 {
		if t := out[len(out)-1].TextData.Text; t == " " || t == "\n" {
			out = out[:len(out)-1]
			continue
		}
		break
	}
	if len(out) > 0 {
		out[0].TextData.Text = strings.TrimLeft(out[0].TextData.Text, " ")
		out[len(out)-1].TextData.Text = strings.TrimRight(out[len(out)-1].TextData.Text, " ")
	}
	return out
}

var spaceRe = regexp.MustCompile(`[\s\x{00a0}]+`)

// collapseSpace folds runs of whitespace, including non-breaking spaces,
// into a single space without trimming the edges.
func collapseSpace(s string) string {
	return spaceRe.ReplaceAllString(s, " ")
}

// flatText returns the collapsed, trimmed text content of the subtree.
func flatText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(m *html.Node) {
		if m.Type == html.TextNode {
			b.WriteString(m.Data)
			b.WriteString(" ")
			return
		}
		for ch := m.FirstChild; ch != nil; ch = ch.NextSibling {
			walk(ch)
		}
	}
	walk(n)
	return strings.TrimSpace(collapseSpace(b.String()))
}

// preText returns the raw text of a preformatted subtree, keeping line
// structure and translating br to a newline.
func preText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(m *html.Node) {
		if m.Type == html.TextNode {
			b.WriteString(m.Data)
			return
		}
		if m.Type == html.ElementNode && m.Data == "br" {
			b.WriteString("\n")
			return
		}
		for ch := m.FirstChild; ch != nil; ch = ch.NextSibling {
			walk(ch)
		}
	}
	walk(n)
	return strings.ReplaceAll(strings.Trim(b.String(), "\n"), "\u00a0", " ")
}
