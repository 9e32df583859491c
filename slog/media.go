package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wixport"
)

// Ensure LoggingMediaService implements wixport.MediaService.
var _ wixport.MediaService = (*LoggingMediaService)(nil)

// LoggingMediaService wraps a MediaService with request logging.
type LoggingMediaService struct {
	next   wixport.MediaService
	logger *slog.Logger
}

// NewLoggingMediaService creates a new LoggingMediaService.
func NewLoggingMediaService(next wixport.MediaService, logger *slog.Logger) *LoggingMediaService {
	return &LoggingMediaService{next: next, logger: logger}
}

// ImportImage delegates to the wrapped service and logs the operation.
func (s *LoggingMediaService) ImportImage(ctx context.Context, url string) (mediaID string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("import image",
			"url", url,
			"media_id", mediaID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ImportImage(ctx, url)
}
