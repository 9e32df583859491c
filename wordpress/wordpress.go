// Package wordpress parses WordPress export files into posts.
//
// Two export flavors are supported: the standard WXR XML dump and the
// spreadsheet-style CSV export. Open picks the parser by file extension.
package wordpress

import (
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/wixport"
)

// Open returns a post source for the export file at path. The parser is
// chosen by extension: .xml for WXR dumps, .csv for spreadsheet exports.
func Open(path string) (wixport.PostSource, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		return NewXMLSource(path), nil
	case ".csv":
		return NewCSVSource(path), nil
	default:
		return nil, wixport.Errorf(wixport.EINVALID, "unsupported export format %q", filepath.Ext(path))
	}
}

// slugFromPermalink extracts the last non-empty path segment of a post
// permalink.
func slugFromPermalink(permalink string) string {
	if permalink == "" {
		return ""
	}
	u, err := url.Parse(permalink)
	if err != nil {
		return ""
	}
	segments := strings.Split(u.Path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if seg := strings.TrimSpace(segments[i]); seg != "" {
			return seg
		}
	}
	return ""
}

// parseExportDate accepts the date formats WordPress exports use.
func parseExportDate(value string) time.Time {
	for _, layout := range []string{
		"2006-01-02 15:04:05",
		time.RFC3339,
		time.RFC1123Z,
		"2006-01-02",
	} {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
