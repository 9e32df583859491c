package wordpress

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/wixport"
)

// Ensure CSVSource implements wixport.PostSource.
var _ wixport.PostSource = (*CSVSource)(nil)

// CSVSource reads posts from a spreadsheet-style WordPress export. The
// column mapping is header-driven and case-insensitive, covering the
// aliases the common export plugins emit.
type CSVSource struct {
	path string
}

// NewCSVSource creates a CSVSource for the export file at path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Posts parses the export file.
func (s *CSVSource) Posts() ([]*wixport.Post, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, wixport.Errorf(wixport.ENOTFOUND, "failed to open export file: %v", err)
	}
	defer f.Close()
	return ParseCSV(f)
}

// ParseCSV parses a CSV export from r. Rows without a title are
// skipped.
func ParseCSV(r io.Reader) ([]*wixport.Post, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, wixport.Errorf(wixport.EINVALID, "empty CSV export")
	}
	if err != nil {
		return nil, wixport.Errorf(wixport.EINVALID, "failed to read CSV header: %v", err)
	}
	columns := headerIndex(header)
	if len(columns) == 0 {
		return nil, wixport.Errorf(wixport.EINVALID, "CSV export has no recognizable header")
	}

	var posts []*wixport.Post
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wixport.Errorf(wixport.EINVALID, "failed to read CSV row: %v", err)
		}
		row := csvRow{columns: columns, record: record}
		if post := parseRow(row); post != nil {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

func parseRow(row csvRow) *wixport.Post {
	title := row.get("title", "post_title")
	if title == "" {
		return nil
	}
	permalink := row.get("permalink", "link")
	slug := row.get("slug", "post_name")
	if slug == "" {
		slug = slugFromPermalink(permalink)
	}
	status := strings.ToLower(row.get("status", "post_status"))
	if status == "" {
		status = wixport.PostStatusPublish
	}
	return &wixport.Post{
		ID:               row.get("id", "post_id"),
		Title:            title,
		Slug:             slug,
		ContentHTML:      row.get("content", "content_html", "post_content"),
		Excerpt:          row.get("excerpt", "post_excerpt"),
		Status:           status,
		Permalink:        permalink,
		FeaturedImageURL: row.get("featuredimage", "featured_image", "image_url"),
		AuthorEmail:      row.get("author_email", "email"),
		Categories:       wixport.ParseTerms(row.get("categorias", "categories")),
		Tags:             wixport.ParseTerms(row.get("tags", "post_tag")),
		SEOTitle:         row.get("seo_title", "meta_title"),
		SEODescription:   row.get("seo_description", "meta_description"),
		PublishedAt:      parseExportDate(row.get("date", "post_date")),
	}
}

// headerIndex maps normalized column names to their positions. The
// first column may carry a UTF-8 BOM.
func headerIndex(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = normalizeColumn(name)
		if name == "" {
			continue
		}
		if _, ok := columns[name]; !ok {
			columns[name] = i
		}
	}
	return columns
}

func normalizeColumn(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(name, " ", "_")
}

type csvRow struct {
	columns map[string]int
	record  []string
}

// get returns the first non-empty value among the aliased columns.
func (r csvRow) get(names ...string) string {
	for _, name := range names {
		i, ok := r.columns[name]
		if !ok || i >= len(r.record) {
			continue
		}
		if v := strings.TrimSpace(r.record[i]); v != "" {
			return v
		}
	}
	return ""
}
