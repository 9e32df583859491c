package mock

import (
	"context"

	"github.com/fwojciec/wixport"
)

var _ wixport.MediaService = (*MediaService)(nil)

// MediaService is a mock implementation of wixport.MediaService.
type MediaService struct {
	ImportImageFn func(ctx context.Context, url string) (string, error)
}

func (s *MediaService) ImportImage(ctx context.Context, url string) (string, error) {
	return s.ImportImageFn(ctx, url)
}
