// Package gemini generates post excerpts with Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/wixport"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Ensure Summarizer implements wixport.Summarizer at compile time.
var _ wixport.Summarizer = (*Summarizer)(nil)

// Summarizer implements wixport.Summarizer using Google Gemini.
type Summarizer struct {
	client *genai.Client
}

// NewSummarizer creates a new Summarizer.
func NewSummarizer(client *genai.Client) *Summarizer {
	return &Summarizer{client: client}
}

// Summarize writes an editorial excerpt for the post text, in the
// language of the text.
func (s *Summarizer) Summarize(ctx context.Context, title, text string) (string, error) {
	if title == "" {
		return "", wixport.Errorf(wixport.EINVALID, "post title required")
	}
	if strings.TrimSpace(text) == "" {
		return "", wixport.Errorf(wixport.EINVALID, "post text required")
	}

	prompt := BuildUserPrompt(title, text)
	config := BuildConfig()

	result, err := s.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", wixport.Errorf(wixport.EINTERNAL, "gemini returned nil result")
	}

	excerpt := strings.TrimSpace(result.Text())
	if excerpt == "" {
		return "", wixport.Errorf(wixport.EINTERNAL, "gemini returned an empty excerpt")
	}

	return truncateRunes(excerpt, wixport.MaxExcerptLen), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are an editor writing blog post excerpts. Write one or two plain sentences that summarize the post for a listing page, in the same language as the post. Return only the excerpt, with no quotes, markdown or preamble.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt containing the post.
func BuildUserPrompt(title, text string) string {
	var sb strings.Builder
	sb.WriteString("<post>\n")
	fmt.Fprintf(&sb, "<title>%s</title>\n", title)
	fmt.Fprintf(&sb, "<content>%s</content>\n", text)
	sb.WriteString("</post>\n\n")
	sb.WriteString("Write the excerpt for this post.")
	return sb.String()
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
