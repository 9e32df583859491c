package wixport

import (
	"context"
	"strings"
	"unicode"
)

// Summarizer produces a short editorial excerpt for a post that has none.
type Summarizer interface {
	// Summarize writes an excerpt for the post text, in the language of
	// the text. The result fits within MaxExcerptLen.
	Summarize(ctx context.Context, title, text string) (string, error)
}

// TruncateAtWord shortens s to at most max runes. The cut lands on a word
// boundary and an ellipsis marks the removal; a single word longer than the
// limit is cut mid-word. The ellipsis counts toward max.
func TruncateAtWord(s string, max int) string {
	if max <= 0 {
		return ""
	}
	all := []rune(s)
	if len(all) <= max {
		return s
	}
	cut := all[:max-1]
	if !unicode.IsSpace(all[max-1]) && !unicode.IsSpace(cut[len(cut)-1]) {
		i := len(cut) - 1
		for i >= 0 && !unicode.IsSpace(cut[i]) {
			i--
		}
		if i > 0 {
			cut = cut[:i]
		}
	}
	return strings.TrimRightFunc(string(cut), unicode.IsSpace) + "…"
}
