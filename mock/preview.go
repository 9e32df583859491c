package mock

import (
	"context"

	"github.com/fwojciec/wixport"
)

var _ wixport.PreviewStore = (*PreviewStore)(nil)

// PreviewStore is a mock implementation of wixport.PreviewStore.
type PreviewStore struct {
	SavePreviewFn func(ctx context.Context, preview *wixport.Preview) error
	CommitFn      func() error
	AbortFn       func() error
}

func (s *PreviewStore) SavePreview(ctx context.Context, preview *wixport.Preview) error {
	return s.SavePreviewFn(ctx, preview)
}

func (s *PreviewStore) Commit() error {
	return s.CommitFn()
}

func (s *PreviewStore) Abort() error {
	return s.AbortFn()
}
