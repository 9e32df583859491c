package ricos

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wixport"
)

// supportedTags is every tag the converter maps to a node, a decoration
// or a structural role. Tags outside this set flatten to plain text.
var supportedTags = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true,
	"h6": true, "ul": true, "ol": true, "li": true, "blockquote": true,
	"pre": true, "code": true, "hr": true, "table": true, "thead": true,
	"tbody": true, "tfoot": true, "tr": true, "td": true, "th": true,
	"figure": true, "figcaption": true, "iframe": true, "img": true,
	"a": true, "strong": true, "b": true, "em": true, "i": true, "u": true,
	"s": true, "strike": true, "del": true, "span": true, "div": true,
	"section": true, "article": true, "main": true, "header": true,
	"footer": true, "aside": true, "br": true,
}

// structural tags added by the parser itself; never worth reporting.
var skippedTags = map[string]bool{"html": true, "head": true, "body": true}

// TagCount pairs a tag with its occurrence count.
type TagCount struct {
	Tag   string
	Count int
}

// Census summarizes HTML tag usage across a post corpus against the
// converter's tag table.
type Census struct {
	Posts       int
	Counts      map[string]int
	Unsupported map[string]int
}

// TagCensus counts every HTML tag in the post bodies. It answers the
// pre-migration question of which content will survive conversion
// structurally and which will flatten to text.
func TagCensus(posts []*wixport.Post) (*Census, error) {
	census := &Census{
		Counts:      map[string]int{},
		Unsupported: map[string]int{},
	}
	for _, p := range posts {
		if strings.TrimSpace(p.ContentHTML) == "" {
			continue
		}
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(p.ContentHTML))
		if err != nil {
			return nil, wixport.Errorf(wixport.EINVALID, "failed to parse HTML for post %q: %v", p.Slug, err)
		}
		census.Posts++
		doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
			tag := goquery.NodeName(sel)
			if skippedTags[tag] {
				return
			}
			census.Counts[tag]++
			if !supportedTags[tag] {
				census.Unsupported[tag]++
			}
		})
	}
	return census, nil
}

// Sorted returns the tag counts ordered by descending count, ties broken
// alphabetically.
func (c *Census) Sorted() []TagCount {
	return sortCounts(c.Counts)
}

// SortedUnsupported returns the unsupported tag counts ordered by
// descending count, ties broken alphabetically.
func (c *Census) SortedUnsupported() []TagCount {
	return sortCounts(c.Unsupported)
}

func sortCounts(m map[string]int) []TagCount {
	out := make([]TagCount, 0, len(m))
	for tag, count := range m {
		out = append(out, TagCount{Tag: tag, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}
