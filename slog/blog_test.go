package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/wixport"
	"github.com/fwojciec/wixport/mock"
	wixslog "github.com/fwojciec/wixport/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingBlogService_CreateDraft(t *testing.T) {
	t.Parallel()

	t.Run("logs creation with slug and assigned ID", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.BlogService{
			CreateDraftFn: func(ctx context.Context, draft *wixport.DraftPost) (*wixport.DraftPost, error) {
				return &wixport.DraftPost{ID: "d1", Title: draft.Title, Slug: draft.Slug}, nil
			},
		}

		svc := wixslog.NewLoggingBlogService(inner, logger)
		created, err := svc.CreateDraft(context.Background(), &wixport.DraftPost{Title: "Hello", Slug: "hello"})

		require.NoError(t, err)
		assert.Equal(t, "d1", created.ID)
		output := buf.String()
		assert.Contains(t, output, "create draft")
		assert.Contains(t, output, "slug=hello")
		assert.Contains(t, output, "draft_id=d1")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.BlogService{
			CreateDraftFn: func(ctx context.Context, draft *wixport.DraftPost) (*wixport.DraftPost, error) {
				return nil, errors.New("quota exceeded")
			},
		}

		svc := wixslog.NewLoggingBlogService(inner, logger)
		_, err := svc.CreateDraft(context.Background(), &wixport.DraftPost{Title: "Hello", Slug: "hello"})

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "create draft")
		assert.Contains(t, output, "err=\"quota exceeded\"")
	})
}

func TestLoggingBlogService_Publish(t *testing.T) {
	t.Parallel()

	t.Run("logs draft and post IDs", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.BlogService{
			PublishFn: func(ctx context.Context, draftID string) (string, error) {
				return "p9", nil
			},
		}

		svc := wixslog.NewLoggingBlogService(inner, logger)
		postID, err := svc.Publish(context.Background(), "d1")

		require.NoError(t, err)
		assert.Equal(t, "p9", postID)
		output := buf.String()
		assert.Contains(t, output, "publish draft")
		assert.Contains(t, output, "draft_id=d1")
		assert.Contains(t, output, "post_id=p9")
		assert.Contains(t, output, "duration=")
	})
}

func TestLoggingBlogService_EnsureTerms(t *testing.T) {
	t.Parallel()

	t.Run("logs kind with label and ID counts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.BlogService{
			EnsureTermsFn: func(ctx context.Context, kind wixport.TermKind, labels []string) ([]string, error) {
				return []string{"t1", "t2"}, nil
			},
		}

		svc := wixslog.NewLoggingBlogService(inner, logger)
		ids, err := svc.EnsureTerms(context.Background(), wixport.TermTag, []string{"go", "sourdough"})

		require.NoError(t, err)
		assert.Len(t, ids, 2)
		output := buf.String()
		assert.Contains(t, output, "ensure terms")
		assert.Contains(t, output, "kind=tag")
		assert.Contains(t, output, "labels=2")
		assert.Contains(t, output, "count=2")
	})
}

func TestLoggingBlogService_FindPosts(t *testing.T) {
	t.Parallel()

	t.Run("logs result count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.BlogService{
			FindPostsFn: func(ctx context.Context, filter wixport.PostListFilter) ([]*wixport.PublishedPost, error) {
				return []*wixport.PublishedPost{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}}, nil
			},
		}

		svc := wixslog.NewLoggingBlogService(inner, logger)
		posts, err := svc.FindPosts(context.Background(), wixport.PostListFilter{Offset: 50})

		require.NoError(t, err)
		assert.Len(t, posts, 3)
		output := buf.String()
		assert.Contains(t, output, "find posts")
		assert.Contains(t, output, "offset=50")
		assert.Contains(t, output, "count=3")
	})
}
