package wixport

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxTags is the maximum number of tags the Wix blog accepts on a post.
const MaxTags = 30

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeLabel unescapes HTML entities, trims the label and collapses
// inner whitespace while preserving casing.
func NormalizeLabel(s string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(html.UnescapeString(s)), " ")
}

// ParseTerms splits a raw taxonomy cell from an export into clean labels.
// The export uses "|" as the separator with "," as a legacy fallback;
// ampersands are part of labels and never split. Labels are deduplicated
// case-insensitively, keeping the first-seen casing.
func ParseTerms(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	sep := ","
	if strings.Contains(raw, "|") {
		sep = "|"
	}
	seen := map[string]bool{}
	var out []string
	for _, part := range strings.Split(raw, sep) {
		label := NormalizeLabel(part)
		if label == "" {
			continue
		}
		key := strings.ToLower(label)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, label)
	}
	return out
}

// CategoryMap maps category slugs to canonical display names. Lookups
// match either the slug or the display name, case- and accent-insensitively.
type CategoryMap map[string]string

// Lookup maps a raw category value to its canonical display name and
// reports whether the map recognized the value. Unrecognized values come
// back cleaned (entities unescaped, whitespace collapsed).
func (m CategoryMap) Lookup(label string) (string, bool) {
	cleaned := NormalizeLabel(label)
	if cleaned == "" {
		return "", false
	}
	key := foldTerm(cleaned)
	for slug, name := range m {
		if key == foldTerm(slug) || key == foldTerm(name) {
			return name, true
		}
	}
	return cleaned, false
}

// Canonical maps a raw category value to its canonical display name.
// Unrecognized values pass through cleaned.
func (m CategoryMap) Canonical(label string) string {
	name, _ := m.Lookup(label)
	return name
}

// CanonicalAll maps a list of raw category values, dropping empties and
// deduplicating while preserving order.
func (m CategoryMap) CanonicalAll(labels []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, label := range labels {
		name := m.Canonical(label)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// foldTerm produces the comparison key for category matching: lowercase,
// accent-free, whitespace collapsed, with the Portuguese " e " conjunction
// normalized to an ampersand as seen in legacy exports.
func foldTerm(s string) string {
	s = strings.ToLower(NormalizeLabel(s))
	s = stripAccents(s)
	s = strings.ReplaceAll(s, " e ", " & ")
	s = strings.ReplaceAll(s, "-", " ")
	return s
}

// stripAccents removes combining marks after canonical decomposition.
func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
