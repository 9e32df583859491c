package mock

import (
	"context"

	"github.com/fwojciec/wixport"
)

var _ wixport.Summarizer = (*Summarizer)(nil)

// Summarizer is a mock implementation of wixport.Summarizer.
type Summarizer struct {
	SummarizeFn func(ctx context.Context, title, text string) (string, error)
}

func (s *Summarizer) Summarize(ctx context.Context, title, text string) (string, error) {
	return s.SummarizeFn(ctx, title, text)
}
