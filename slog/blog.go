package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wixport"
)

// Ensure LoggingBlogService implements wixport.BlogService.
var _ wixport.BlogService = (*LoggingBlogService)(nil)

// LoggingBlogService wraps a BlogService with request logging.
type LoggingBlogService struct {
	next   wixport.BlogService
	logger *slog.Logger
}

// NewLoggingBlogService creates a new LoggingBlogService.
func NewLoggingBlogService(next wixport.BlogService, logger *slog.Logger) *LoggingBlogService {
	return &LoggingBlogService{next: next, logger: logger}
}

// CreateDraft delegates to the wrapped service and logs the operation.
func (s *LoggingBlogService) CreateDraft(ctx context.Context, draft *wixport.DraftPost) (created *wixport.DraftPost, err error) {
	defer func(begin time.Time) {
		s.logger.Info("create draft",
			"slug", draft.Slug,
			"draft_id", draftID(created),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateDraft(ctx, draft)
}

// UpdateDraft delegates to the wrapped service and logs the operation.
func (s *LoggingBlogService) UpdateDraft(ctx context.Context, draft *wixport.DraftPost) (updated *wixport.DraftPost, err error) {
	defer func(begin time.Time) {
		s.logger.Info("update draft",
			"draft_id", draft.ID,
			"revision", draft.Revision,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.UpdateDraft(ctx, draft)
}

// GetDraft delegates to the wrapped service and logs the operation.
func (s *LoggingBlogService) GetDraft(ctx context.Context, id string) (draft *wixport.DraftPost, err error) {
	defer func(begin time.Time) {
		s.logger.Info("get draft",
			"draft_id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.GetDraft(ctx, id)
}

// Publish delegates to the wrapped service and logs the operation.
func (s *LoggingBlogService) Publish(ctx context.Context, draftID string) (postID string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("publish draft",
			"draft_id", draftID,
			"post_id", postID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Publish(ctx, draftID)
}

// FindPosts delegates to the wrapped service and logs the operation.
func (s *LoggingBlogService) FindPosts(ctx context.Context, filter wixport.PostListFilter) (posts []*wixport.PublishedPost, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find posts",
			"offset", filter.Offset,
			"count", len(posts),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindPosts(ctx, filter)
}

// FindTerms delegates to the wrapped service and logs the operation.
func (s *LoggingBlogService) FindTerms(ctx context.Context, kind wixport.TermKind) (terms []*wixport.Term, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find terms",
			"kind", string(kind),
			"count", len(terms),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindTerms(ctx, kind)
}

// CreateTerm delegates to the wrapped service and logs the operation.
func (s *LoggingBlogService) CreateTerm(ctx context.Context, kind wixport.TermKind, label string) (term *wixport.Term, err error) {
	defer func(begin time.Time) {
		s.logger.Info("create term",
			"kind", string(kind),
			"label", label,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateTerm(ctx, kind, label)
}

// EnsureTerms delegates to the wrapped service and logs the operation.
func (s *LoggingBlogService) EnsureTerms(ctx context.Context, kind wixport.TermKind, labels []string) (ids []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("ensure terms",
			"kind", string(kind),
			"labels", len(labels),
			"count", len(ids),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.EnsureTerms(ctx, kind, labels)
}

func draftID(d *wixport.DraftPost) string {
	if d == nil {
		return ""
	}
	return d.ID
}
