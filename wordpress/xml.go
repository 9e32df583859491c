package wordpress

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/wixport"
)

// Ensure XMLSource implements wixport.PostSource.
var _ wixport.PostSource = (*XMLSource)(nil)

// XMLSource reads posts from a WordPress WXR export file. It also
// accepts the simplified <posts><post> format some export plugins
// produce.
type XMLSource struct {
	path     string
	statuses map[string]bool
}

// XMLOption configures an XMLSource.
type XMLOption func(*XMLSource)

// WithStatuses replaces the default publish-only status filter. Items
// without a status always pass.
func WithStatuses(statuses ...string) XMLOption {
	return func(s *XMLSource) {
		s.statuses = make(map[string]bool, len(statuses))
		for _, status := range statuses {
			s.statuses[strings.ToLower(status)] = true
		}
	}
}

// NewXMLSource creates an XMLSource for the export file at path.
func NewXMLSource(path string, opts ...XMLOption) *XMLSource {
	s := &XMLSource{
		path:     path,
		statuses: map[string]bool{wixport.PostStatusPublish: true},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Posts parses the export file and returns the posts that pass the
// status filter.
func (s *XMLSource) Posts() ([]*wixport.Post, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, wixport.Errorf(wixport.ENOTFOUND, "failed to open export file: %v", err)
	}
	defer f.Close()
	return s.parse(f)
}

// ParseXML parses a WXR or simplified XML export from r.
func ParseXML(r io.Reader, opts ...XMLOption) ([]*wixport.Post, error) {
	return NewXMLSource("", opts...).parse(r)
}

func (s *XMLSource) parse(r io.Reader) ([]*wixport.Post, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, wixport.Errorf(wixport.EINVALID, "failed to parse export XML: %v", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, wixport.Errorf(wixport.EINVALID, "empty export XML")
	}

	// Simplified exports carry <post> elements instead of RSS items.
	if simplified := doc.FindElements("//post"); len(simplified) > 0 {
		posts := make([]*wixport.Post, 0, len(simplified))
		for _, el := range simplified {
			if post := parseSimplified(el); post != nil {
				posts = append(posts, post)
			}
		}
		return posts, nil
	}

	items := doc.FindElements("//item")
	authors := authorEmails(doc)
	attachments := attachmentURLs(items)

	var posts []*wixport.Post
	for _, item := range items {
		if post := s.parseItem(item, authors, attachments); post != nil {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

// parseItem converts a WXR <item> to a post. It returns nil for
// attachments, pages and items filtered out by status.
func (s *XMLSource) parseItem(item *etree.Element, authors, attachments map[string]string) *wixport.Post {
	if typ := strings.ToLower(childText(item, "wp:post_type")); typ != "" && typ != "post" {
		return nil
	}
	status := strings.ToLower(childText(item, "wp:status"))
	if status != "" && !s.statuses[status] {
		return nil
	}
	if status == "" {
		status = wixport.PostStatusPublish
	}

	permalink := childText(item, "link")
	slug := childText(item, "wp:post_name")
	if slug == "" {
		slug = slugFromPermalink(permalink)
	}

	var categories, tags []string
	for _, cat := range item.SelectElements("category") {
		label := strings.TrimSpace(cat.Text())
		if label == "" {
			continue
		}
		switch cat.SelectAttrValue("domain", "") {
		case "category":
			categories = append(categories, label)
		case "post_tag":
			tags = append(tags, label)
		}
	}

	post := &wixport.Post{
		ID:             childText(item, "wp:post_id"),
		Title:          childText(item, "title"),
		Slug:           slug,
		ContentHTML:    childText(item, "content:encoded"),
		Excerpt:        childText(item, "excerpt:encoded"),
		Status:         status,
		Permalink:      permalink,
		AuthorEmail:    authors[strings.ToLower(childText(item, "dc:creator"))],
		Categories:     categories,
		Tags:           tags,
		SEOTitle:       metaValue(item, "_yoast_wpseo_title"),
		SEODescription: metaValue(item, "_yoast_wpseo_metadesc"),
		PublishedAt:    itemDate(item),
	}
	if id := metaValue(item, "_thumbnail_id"); id != "" {
		post.FeaturedImageURL = attachments[id]
	}
	return post
}

// parseSimplified converts a <post> element. Tag lookup is
// case-insensitive because exports are inconsistent about casing.
func parseSimplified(el *etree.Element) *wixport.Post {
	title := foldText(el, "title")
	if title == "" {
		return nil
	}
	permalink := foldText(el, "permalink", "link")
	slug := foldText(el, "slug")
	if slug == "" {
		slug = slugFromPermalink(permalink)
	}
	return &wixport.Post{
		Title:            title,
		Slug:             slug,
		ContentHTML:      foldText(el, "content", "content_html"),
		Excerpt:          foldText(el, "excerpt"),
		Status:           wixport.PostStatusPublish,
		Permalink:        permalink,
		FeaturedImageURL: foldText(el, "featuredimage", "featured_image"),
		AuthorEmail:      foldText(el, "author_email"),
		Categories:       wixport.ParseTerms(foldText(el, "categorias", "categories")),
		Tags:             wixport.ParseTerms(foldText(el, "tags")),
		SEOTitle:         foldText(el, "seo_title"),
		SEODescription:   foldText(el, "seo_description"),
		PublishedAt:      parseExportDate(foldText(el, "date", "post_date")),
	}
}

// authorEmails maps lowercased author logins to emails using the
// channel-level wp:author blocks.
func authorEmails(doc *etree.Document) map[string]string {
	authors := make(map[string]string)
	for _, el := range doc.FindElements("//wp:author") {
		login := strings.ToLower(childText(el, "wp:author_login"))
		email := childText(el, "wp:author_email")
		if login != "" && email != "" {
			authors[login] = email
		}
	}
	return authors
}

// attachmentURLs maps attachment post IDs to their file URLs so that
// _thumbnail_id references can be resolved to featured images.
func attachmentURLs(items []*etree.Element) map[string]string {
	attachments := make(map[string]string)
	for _, item := range items {
		if strings.ToLower(childText(item, "wp:post_type")) != "attachment" {
			continue
		}
		id := childText(item, "wp:post_id")
		if id == "" {
			continue
		}
		url := childText(item, "wp:attachment_url")
		if url == "" {
			url = childText(item, "guid")
		}
		if url != "" {
			attachments[id] = url
		}
	}
	return attachments
}

// metaValue returns the wp:postmeta value for key, or "".
func metaValue(item *etree.Element, key string) string {
	for _, meta := range item.SelectElements("wp:postmeta") {
		if childText(meta, "wp:meta_key") == key {
			return childText(meta, "wp:meta_value")
		}
	}
	return ""
}

func itemDate(item *etree.Element) time.Time {
	if v := childText(item, "wp:post_date_gmt"); v != "" {
		if t := parseExportDate(v); !t.IsZero() {
			return t
		}
	}
	if v := childText(item, "pubDate"); v != "" {
		return parseExportDate(v)
	}
	return time.Time{}
}

// childText returns the trimmed text of the first child with the given
// tag, which may carry a namespace prefix.
func childText(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}

// foldText returns the trimmed text of the first child whose tag
// matches any of the names, ignoring case.
func foldText(el *etree.Element, names ...string) string {
	for _, child := range el.ChildElements() {
		for _, name := range names {
			if strings.EqualFold(child.Tag, name) {
				if v := strings.TrimSpace(child.Text()); v != "" {
					return v
				}
			}
		}
	}
	return ""
}
