package mock

import (
	"context"

	"github.com/fwojciec/wixport"
)

var _ wixport.BlogService = (*BlogService)(nil)

// BlogService is a mock implementation of wixport.BlogService.
type BlogService struct {
	CreateDraftFn func(ctx context.Context, draft *wixport.DraftPost) (*wixport.DraftPost, error)
	UpdateDraftFn func(ctx context.Context, draft *wixport.DraftPost) (*wixport.DraftPost, error)
	GetDraftFn    func(ctx context.Context, id string) (*wixport.DraftPost, error)
	PublishFn     func(ctx context.Context, draftID string) (string, error)
	FindPostsFn   func(ctx context.Context, filter wixport.PostListFilter) ([]*wixport.PublishedPost, error)
	FindTermsFn   func(ctx context.Context, kind wixport.TermKind) ([]*wixport.Term, error)
	CreateTermFn  func(ctx context.Context, kind wixport.TermKind, label string) (*wixport.Term, error)
	EnsureTermsFn func(ctx context.Context, kind wixport.TermKind, labels []string) ([]string, error)
}

func (s *BlogService) CreateDraft(ctx context.Context, draft *wixport.DraftPost) (*wixport.DraftPost, error) {
	return s.CreateDraftFn(ctx, draft)
}

func (s *BlogService) UpdateDraft(ctx context.Context, draft *wixport.DraftPost) (*wixport.DraftPost, error) {
	return s.UpdateDraftFn(ctx, draft)
}

func (s *BlogService) GetDraft(ctx context.Context, id string) (*wixport.DraftPost, error) {
	return s.GetDraftFn(ctx, id)
}

func (s *BlogService) Publish(ctx context.Context, draftID string) (string, error) {
	return s.PublishFn(ctx, draftID)
}

func (s *BlogService) FindPosts(ctx context.Context, filter wixport.PostListFilter) ([]*wixport.PublishedPost, error) {
	return s.FindPostsFn(ctx, filter)
}

func (s *BlogService) FindTerms(ctx context.Context, kind wixport.TermKind) ([]*wixport.Term, error) {
	return s.FindTermsFn(ctx, kind)
}

func (s *BlogService) CreateTerm(ctx context.Context, kind wixport.TermKind, label string) (*wixport.Term, error) {
	return s.CreateTermFn(ctx, kind, label)
}

func (s *BlogService) EnsureTerms(ctx context.Context, kind wixport.TermKind, labels []string) ([]string, error) {
	return s.EnsureTermsFn(ctx, kind, labels)
}
