package migrate_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/wixport"
	"github.com/fwojciec/wixport/migrate"
	"github.com/fwojciec/wixport/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrator_Migrate(t *testing.T) {
	t.Parallel()

	t.Run("returns an empty report for an empty export", func(t *testing.T) {
		t.Parallel()

		f := newFixture()

		report, err := f.m.Migrate(context.Background(), nil)

		require.NoError(t, err)
		assert.Empty(t, report.OK)
		assert.Empty(t, report.Skipped)
		assert.Empty(t, report.Failed)
		assert.False(t, report.StartedAt.IsZero())
		assert.False(t, report.FinishedAt.IsZero())
	})

	t.Run("fails when the export cannot be read", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		f.source.PostsFn = func() ([]*wixport.Post, error) {
			return nil, wixport.Errorf(wixport.EINVALID, "malformed csv header")
		}

		report, err := f.m.Migrate(context.Background(), nil)

		require.Error(t, err)
		assert.Nil(t, report)
		assert.Contains(t, err.Error(), "reading export")
	})

	t.Run("publishes a new post end to end", func(t *testing.T) {
		t.Parallel()

		post := sourdoughPost()
		f := newFixture(post)

		report, err := f.m.Migrate(context.Background(), nil)

		require.NoError(t, err)
		require.Len(t, report.OK, 1)
		assert.Equal(t, wixport.MigrationPublished, report.OK[0].Status)
		assert.Equal(t, "sourdough-basics", report.OK[0].Slug)
		assert.Equal(t, "https://new.example.com/post/sourdough-basics", report.OK[0].PostURL)
		assert.Empty(t, report.Skipped)
		assert.Empty(t, report.Failed)

		require.Len(t, f.drafts, 1)
		draft := f.drafts[0]
		assert.Equal(t, "Sourdough Basics", draft.Title)
		assert.Equal(t, "sourdough-basics", draft.Slug)
		assert.Equal(t, "A primer on keeping a starter alive.", draft.Excerpt)
		assert.Equal(t, "member-anna", draft.MemberID)
		assert.Equal(t, []string{"category:Baking"}, draft.CategoryIDs)
		assert.Equal(t, []string{"tag:sourdough", "tag:bread"}, draft.TagIDs)
		assert.Equal(t, "media-1", draft.CoverMediaID)
		assert.Equal(t, "Sourdough Basics", draft.SEOTitle)
		assert.Equal(t, "A primer on keeping a starter alive.", draft.SEODescription)
		assert.Equal(t, post.PublishedAt, draft.FirstPublishedAt)

		require.Len(t, f.created, 1)
		assert.Equal(t, wixport.MigrationPending, f.created[0].Status)
		assert.Equal(t, "sourdough-basics", f.created[0].Slug)
		require.Equal(t, []string{
			wixport.MigrationConverted,
			wixport.MigrationDraft,
			wixport.MigrationPublished,
		}, statuses(f.updates))

		first := f.updates[0]
		require.NotNil(t, first.ContentHash)
		assert.Equal(t, migrate.ContentHash(post), *first.ContentHash)
		require.NotNil(t, first.WordCount)
		assert.Equal(t, 5, *first.WordCount)
		require.NotNil(t, first.ReadTimeSeconds)
		assert.Equal(t, 60, *first.ReadTimeSeconds)

		assert.Equal(t, []string{"draft-1"}, f.publishes)
		assert.Equal(t, []string{post.FeaturedImageURL}, f.imports)

		require.Len(t, f.ensured, 2)
		assert.Equal(t, wixport.TermCategory, f.ensured[0].kind)
		assert.Equal(t, []string{"Baking"}, f.ensured[0].labels)
		assert.Equal(t, wixport.TermTag, f.ensured[1].kind)
		assert.Equal(t, []string{"sourdough", "bread"}, f.ensured[1].labels)

		require.Len(t, f.mappings, 1)
		assert.Equal(t, "anna@example.com", f.mappings[0].Email)
		assert.Equal(t, "member-anna", f.mappings[0].MemberID)

		require.Len(t, f.written, 1)
		assert.Equal(t, post.Permalink, f.written[0].OldURL)
		assert.Equal(t, "https://new.example.com/post/sourdough-basics", f.written[0].NewURL)
	})

	t.Run("stops at a draft when publishing is off", func(t *testing.T) {
		t.Parallel()

		f := newFixture(sourdoughPost())
		f.m.Publish = false

		report, err := f.m.Migrate(context.Background(), nil)

		require.NoError(t, err)
		require.Len(t, report.OK, 1)
		assert.Equal(t, wixport.MigrationDraft, report.OK[0].Status)
		assert.Empty(t, report.OK[0].PostURL)
		assert.Empty(t, f.publishes)
		assert.Empty(t, f.written)
		assert.Equal(t, []string{
			wixport.MigrationConverted,
			wixport.MigrationDraft,
		}, statuses(f.updates))
	})

	t.Run("skips an unchanged published post", func(t *testing.T) {
		t.Parallel()

		post := sourdoughPost()
		f := newFixture(post)
		f.records.FindRecordBySlugFn = func(_ context.Context, slug string) (*wixport.MigrationRecord, error) {
			return &wixport.MigrationRecord{
				ID:          "rec-9",
				Slug:        slug,
				Status:      wixport.MigrationPublished,
				ContentHash: migrate.ContentHash(post),
				PostURL:     "https://new.example.com/post/sourdough-basics",
			}, nil
		}

		report, err := f.m.Migrate(context.Background(), nil)

		require.NoError(t, err)
		require.Len(t, report.Skipped, 1)
		assert.Equal(t, wixport.MigrationSkipped, report.Skipped[0].Status)
		assert.Equal(t, "https://new.example.com/post/sourdough-basics", report.Skipped[0].PostURL)
		assert.Empty(t, report.OK)
		assert.Empty(t, f.converted)
		assert.Empty(t, f.drafts)
		assert.Empty(t, f.updates)
		assert.Empty(t, f.written)
	})

	t.Run("updates the draft left by an earlier run", func(t *testing.T) {
		t.Parallel()

		f := newFixture(sourdoughPost())
		f.records.FindRecordBySlugFn = func(_ context.Context, slug string) (*wixport.MigrationRecord, error) {
			return &wixport.MigrationRecord{
				ID:      "rec-4",
				Slug:    slug,
				Status:  wixport.MigrationFailed,
				DraftID: "draft-7",
			}, nil
		}
		var gets []string
		f.blog.GetDraftFn = func(_ context.Context, id string) (*wixport.DraftPost, error) {
			gets = append(gets, id)
			return &wixport.DraftPost{ID: id, Revision: "3"}, nil
		}
		var updated []*wixport.DraftPost
		f.blog.UpdateDraftFn = func(_ context.Context, draft *wixport.DraftPost) (*wixport.DraftPost, error) {
			updated = append(updated, draft)
			out := *draft
			return &out, nil
		}

		report, err := f.m.Migrate(context.Background(), nil)

		require.NoError(t, err)
		require.Len(t, report.OK, 1)
		assert.Empty(t, f.created)
		assert.Empty(t, f.drafts)
		assert.Equal(t, []string{"draft-7"}, gets)
		require.Len(t, updated, 1)
		assert.Equal(t, "draft-7", updated[0].ID)
		assert.Equal(t, "3", updated[0].Revision)
		assert.Equal(t, []string{"draft-7"}, f.publishes)
	})

	t.Run("retries a draft update once after a revision conflict", func(t *testing.T) {
		t.Parallel()

		f := newFixture(sourdoughPost())
		f.records.FindRecordBySlugFn = func(_ context.Context, slug string) (*wixport.MigrationRecord, error) {
			return &wixport.MigrationRecord{
				ID:      "rec-4",
				Slug:    slug,
				Status:  wixport.MigrationDraft,
				DraftID: "draft-7",
			}, nil
		}
		revisions := []string{"3", "4"}
		f.blog.GetDraftFn = func(_ context.Context, id string) (*wixport.DraftPost, error) {
			rev := revisions[0]
			revisions = revisions[1:]
			return &wixport.DraftPost{ID: id, Revision: rev}, nil
		}
		var tried []string
		f.blog.UpdateDraftFn = func(_ context.Context, draft *wixport.DraftPost) (*wixport.DraftPost, error) {
			tried = append(tried, draft.Revision)
			if draft.Revision == "3" {
				return nil, wixport.Errorf(wixport.ECONFLICT, "draft revision is stale")
			}
			out := *draft
			return &out, nil
		}

		report, err := f.m.Migrate(context.Background(), nil)

		require.NoError(t, err)
		require.Len(t, report.OK, 1)
		assert.Equal(t, []string{"3", "4"}, tried)
		assert.Empty(t, revisions)
	})

	t.Run("records a failed conversion and continues with the next post", func(t *testing.T) {
		t.Parallel()

		first := sourdoughPost()
		second := sourdoughPost()
		second.Slug = "rye-basics"
		second.Title = "Rye Basics"
		second.ContentHTML = "<p>Rye needs patience.</p>"
		f := newFixture(first, second)
		f.converter.ConvertFn = func(_ context.Context, html string) (*wixport.RichContent, error) {
			if html == first.ContentHTML {
				return nil, wixport.Errorf(wixport.EINVALID, "unsupported markup")
			}
			return textContent("Rye needs patience."), nil
		}

		report, err := f.m.Migrate(context.Background(), nil)

		require.NoError(t, err)
		require.Len(t, report.Failed, 1)
		assert.Equal(t, "sourdough-basics", report.Failed[0].Slug)
		assert.Equal(t, wixport.MigrationFailed, report.Failed[0].Status)
		assert.Contains(t, report.Failed[0].Error, "unsupported markup")
		require.Len(t, report.OK, 1)
		assert.Equal(t, "rye-basics", report.OK[0].Slug)

		require.Equal(t, []string{
			wixport.MigrationFailed,
			wixport.MigrationConverted,
			wixport.MigrationDraft,
			wixport.MigrationPublished,
		}, statuses(f.updates))
		require.NotNil(t, f.updates[0].ErrorMessage)
		assert.Contains(t, *f.updates[0].ErrorMessage, "unsupported markup")
	})

	t.Run("marks the post failed when taxonomy sync fails", func(t *testing.T) {
		t.Parallel()

		f := newFixture(sourdoughPost())
		f.blog.EnsureTermsFn = func(_ context.Context, kind wixport.TermKind, labels []string) ([]string, error) {
			return nil, wixport.Errorf(wixport.EUNAVAILABLE, "blog api unavailable")
		}

		report, err := f.m.Migrate(context.Background(), nil)

		require.NoError(t, err)
		require.Len(t, report.Failed, 1)
		assert.Contains(t, report.Failed[0].Error, "blog api unavailable")
		assert.Empty(t, f.drafts)
		assert.Equal(t, []string{
			wixport.MigrationConverted,
			wixport.MigrationFailed,
		}, statuses(f.updates))
	})

	t.Run("reuses a stored member mapping", func(t *testing.T) {
		t.Parallel()

		f := newFixture(sourdoughPost())
		f.memberMap.FindMappingByEmailFn = func(_ context.Context, email string) (*wixport.MemberMapping, error) {
			return &wixport.MemberMapping{Email: email, MemberID: "member-42"}, nil
		}
		var lookups int
		f.members.FindMemberByEmailFn = func(_ context.Context, email string) (*wixport.Member, error) {
			lookups++
			return nil, wixport.Errorf(wixport.ENOTFOUND, "member not found")
		}

		report, err := f.m.Migrate(context.Background(), nil)

		require.NoError(t, err)
		require.Len(t, report.OK, 1)
		require.Len(t, f.drafts, 1)
		assert.Equal(t, "member-42", f.drafts[0].MemberID)
		assert.Zero(t, lookups)
		assert.Empty(t, f.mappings)
	})

	t.Run("falls back to the default member", func(t *testing.T) {
		t.Parallel()

		f := newFixture(sourdoughPost())
		f.members.CreateMemberFn = func(_ context.Context, email, nickname string) (*wixport.Member, error) {
			if email == "anna@example.com" {
				return nil, wixport.Errorf(wixport.EUNAVAILABLE, "members api rejected the email")
			}
			return &wixport.Member{ID: "member-editor", Email: email, Nickname: nickname}, nil
		}

		report, err := f.m.Migrate(context.Background(), nil)

		require.NoError(t, err)
		require.Len(t, report.OK, 1)
		require.Len(t, f.drafts, 1)
		assert.Equal(t, "member-editor", f.drafts[0].MemberID)
	})

	t.Run("fails the post when no member resolves", func(t *testing.T) {
		t.Parallel()

		f := newFixture(sourdoughPost())
		f.m.DefaultMemberEmail = ""
		f.members.CreateMemberFn = func(_ context.Context, email, nickname string) (*wixport.Member, error) {
			return nil, wixport.Errorf(wixport.EUNAVAILABLE, "members api unavailable")
		}

		report, err := f.m.Migrate(context.Background(), nil)

		require.NoError(t, err)
		require.Len(t, report.Failed, 1)
		assert.Contains(t, report.Failed[0].Error, "members api unavailable")
		assert.Empty(t, f.drafts)
	})

	t.Run("continues without a cover when the import fails", func(t *testing.T) {
		t.Parallel()

		f := newFixture(sourdoughPost())
		f.media.ImportImageFn = func(_ context.Context, url string) (string, error) {
			return "", wixport.Errorf(wixport.EUNAVAILABLE, "import timed out")
		}

		report, err := f.m.Migrate(context.Background(), nil)

		require.NoError(t, err)
		require.Len(t, report.OK, 1)
		assert.Equal(t, wixport.MigrationPublished, report.OK[0].Status)
		require.Len(t, f.drafts, 1)
		assert.Empty(t, f.drafts[0].CoverMediaID)
	})

	t.Run("asks the summarizer when the export has no excerpt", func(t *testing.T) {
		t.Parallel()

		post := sourdoughPost()
		post.Excerpt = ""
		f := newFixture(post)
		f.m.Summarizer = &mock.Summarizer{SummarizeFn: func(_ context.Context, title, text string) (string, error) {
			assert.Equal(t, "Sourdough Basics", title)
			assert.Equal(t, "Feed the starter every morning.", text)
			return "Morning feeds keep a sourdough starter lively.", nil
		}}

		_, err := f.m.Migrate(context.Background(), nil)

		require.NoError(t, err)
		require.Len(t, f.drafts, 1)
		assert.Equal(t, "Morning feeds keep a sourdough starter lively.", f.drafts[0].Excerpt)
		assert.Equal(t, "Morning feeds keep a sourdough starter lively.", f.drafts[0].SEODescription)
	})

	t.Run("falls back to body text when the summarizer fails", func(t *testing.T) {
		t.Parallel()

		post := sourdoughPost()
		post.Excerpt = ""
		f := newFixture(post)
		f.m.Summarizer = &mock.Summarizer{SummarizeFn: func(_ context.Context, title, text string) (string, error) {
			return "", wixport.Errorf(wixport.EUNAVAILABLE, "quota exhausted")
		}}

		report, err := f.m.Migrate(context.Background(), nil)

		require.NoError(t, err)
		require.Len(t, report.OK, 1)
		require.Len(t, f.drafts, 1)
		assert.Equal(t, "Feed the starter every morning.", f.drafts[0].Excerpt)
	})

	t.Run("caps the tag list at the API limit", func(t *testing.T) {
		t.Parallel()

		post := sourdoughPost()
		post.Tags = nil
		for i := 0; i < wixport.MaxTags+10; i++ {
			post.Tags = append(post.Tags, fmt.Sprintf("tag-%02d", i))
		}
		f := newFixture(post)

		_, err := f.m.Migrate(context.Background(), nil)

		require.NoError(t, err)
		require.Len(t, f.ensured, 2)
		assert.Len(t, f.ensured[1].labels, wixport.MaxTags)
		require.Len(t, f.drafts, 1)
		assert.Len(t, f.drafts[0].TagIDs, wixport.MaxTags)
	})

	t.Run("honors the post limit", func(t *testing.T) {
		t.Parallel()

		first := sourdoughPost()
		second := sourdoughPost()
		second.Slug = "rye-basics"
		third := sourdoughPost()
		third.Slug = "spelt-basics"
		f := newFixture(first, second, third)
		f.m.Limit = 2

		report, err := f.m.Migrate(context.Background(), nil)

		require.NoError(t, err)
		assert.Len(t, report.OK, 2)
		assert.Len(t, f.converted, 2)
	})

	t.Run("drops posts the export marks unpublished", func(t *testing.T) {
		t.Parallel()

		first := sourdoughPost()
		second := sourdoughPost()
		second.Slug = "rye-basics"
		second.Status = wixport.PostStatusDraft
		f := newFixture(first, second)

		report, err := f.m.Migrate(context.Background(), nil)

		require.NoError(t, err)
		require.Len(t, report.OK, 1)
		assert.Equal(t, "sourdough-basics", report.OK[0].Slug)
		assert.Len(t, f.converted, 1)
	})

	t.Run("fails a post without a slug", func(t *testing.T) {
		t.Parallel()

		post := sourdoughPost()
		post.Slug = ""
		f := newFixture(post)

		report, err := f.m.Migrate(context.Background(), nil)

		require.NoError(t, err)
		require.Len(t, report.Failed, 1)
		assert.Contains(t, report.Failed[0].Error, "slug required")
		assert.Empty(t, f.created)
		assert.Empty(t, f.converted)
	})

	t.Run("dry run stays off the API", func(t *testing.T) {
		t.Parallel()

		f := newFixture(sourdoughPost())
		f.m.DryRun = true

		report, err := f.m.Migrate(context.Background(), nil)

		require.NoError(t, err)
		assert.True(t, report.DryRun)
		require.Len(t, report.OK, 1)
		assert.Equal(t, wixport.MigrationConverted, report.OK[0].Status)
		assert.Equal(t, "https://new.example.com/post/sourdough-basics", report.OK[0].PostURL)

		assert.Empty(t, f.created)
		assert.Empty(t, f.updates)
		assert.Empty(t, f.drafts)
		assert.Empty(t, f.publishes)
		assert.Empty(t, f.ensured)
		assert.Empty(t, f.imports)
		assert.Empty(t, f.mappings)

		// The redirect file is still previewed from constructed URLs.
		require.Len(t, f.written, 1)
		assert.Equal(t, "https://new.example.com/post/sourdough-basics", f.written[0].NewURL)
	})

	t.Run("stops processing when the context is cancelled", func(t *testing.T) {
		t.Parallel()

		first := sourdoughPost()
		second := sourdoughPost()
		second.Slug = "rye-basics"
		f := newFixture(first, second)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		f.blog.PublishFn = func(_ context.Context, draftID string) (string, error) {
			cancel()
			return "post-1", nil
		}

		report, err := f.m.Migrate(ctx, nil)

		require.NoError(t, err)
		assert.Len(t, report.OK, 1)
		assert.Len(t, f.converted, 1)
	})

	t.Run("calls progress callback with events", func(t *testing.T) {
		t.Parallel()

		f := newFixture(sourdoughPost())

		var events []migrate.ProgressEvent
		report, err := f.m.Migrate(context.Background(), func(event migrate.ProgressEvent) {
			events = append(events, event)
		})

		require.NoError(t, err)
		require.Len(t, report.OK, 1)
		require.Len(t, events, 3)
		assert.Equal(t, migrate.ProgressStarted, events[0].Type)
		assert.Equal(t, 1, events[0].Total)
		assert.Equal(t, migrate.ProgressCompleted, events[1].Type)
		assert.Equal(t, 1, events[1].Completed)
		assert.Equal(t, "sourdough-basics", events[1].Slug)
		assert.Equal(t, wixport.MigrationPublished, events[1].Status)
		assert.Equal(t, migrate.ProgressFinished, events[2].Type)
	})

	t.Run("reports skipped posts through the callback", func(t *testing.T) {
		t.Parallel()

		post := sourdoughPost()
		f := newFixture(post)
		f.records.FindRecordBySlugFn = func(_ context.Context, slug string) (*wixport.MigrationRecord, error) {
			return &wixport.MigrationRecord{
				ID:          "rec-9",
				Slug:        slug,
				Status:      wixport.MigrationPublished,
				ContentHash: migrate.ContentHash(post),
			}, nil
		}

		var events []migrate.ProgressEvent
		_, err := f.m.Migrate(context.Background(), func(event migrate.ProgressEvent) {
			events = append(events, event)
		})

		require.NoError(t, err)
		require.Len(t, events, 3)
		assert.Equal(t, migrate.ProgressSkipped, events[1].Type)
		assert.Equal(t, wixport.MigrationSkipped, events[1].Status)
	})

	t.Run("writes the report when a path is configured", func(t *testing.T) {
		t.Parallel()

		f := newFixture(sourdoughPost())
		var gotPath string
		var got *wixport.MigrationReport
		f.m.Reports = &mock.ReportWriter{WriteReportFn: func(path string, report *wixport.MigrationReport) error {
			gotPath = path
			got = report
			return nil
		}}
		f.m.ReportPath = "report.json"

		report, err := f.m.Migrate(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, "report.json", gotPath)
		assert.Same(t, report, got)
	})
}

func TestContentHash(t *testing.T) {
	t.Parallel()

	t.Run("returns a consistent hash for the same post", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, migrate.ContentHash(sourdoughPost()), migrate.ContentHash(sourdoughPost()))
	})

	t.Run("changes when the migratable content changes", func(t *testing.T) {
		t.Parallel()

		base := migrate.ContentHash(sourdoughPost())

		retitled := sourdoughPost()
		retitled.Title = "Sourdough Fundamentals"
		assert.NotEqual(t, base, migrate.ContentHash(retitled))

		rewritten := sourdoughPost()
		rewritten.ContentHTML = "<p>Feed the starter twice a day.</p>"
		assert.NotEqual(t, base, migrate.ContentHash(rewritten))

		recovered := sourdoughPost()
		recovered.FeaturedImageURL = "https://old.example.com/uploads/crumb.jpg"
		assert.NotEqual(t, base, migrate.ContentHash(recovered))
	})

	t.Run("returns a fixed width hex string", func(t *testing.T) {
		t.Parallel()

		hash := migrate.ContentHash(sourdoughPost())
		assert.Len(t, hash, 16)
		assert.Regexp(t, `^[0-9a-f]{16}$`, hash)
	})
}

// fixture wires a Migrator to mocks covering the publish path. Subtests
// override individual mock functions to steer a scenario and inspect the
// captured calls afterwards.
type fixture struct {
	source    *mock.PostSource
	converter *mock.RichTextConverter
	blog      *mock.BlogService
	media     *mock.MediaService
	members   *mock.MemberService
	records   *mock.MigrationRecordService
	memberMap *mock.MemberMapService
	redirects *mock.RedirectWriter
	m         *migrate.Migrator

	converted []string
	created   []*wixport.MigrationRecord
	updates   []wixport.MigrationRecordUpdate
	drafts    []*wixport.DraftPost
	publishes []string
	ensured   []ensureCall
	imports   []string
	mappings  []*wixport.MemberMapping
	written   []wixport.Redirect
}

type ensureCall struct {
	kind   wixport.TermKind
	labels []string
}

func newFixture(posts ...*wixport.Post) *fixture {
	f := &fixture{}
	f.source = &mock.PostSource{PostsFn: func() ([]*wixport.Post, error) {
		return posts, nil
	}}
	f.converter = &mock.RichTextConverter{ConvertFn: func(_ context.Context, html string) (*wixport.RichContent, error) {
		f.converted = append(f.converted, html)
		return textContent("Feed the starter every morning."), nil
	}}
	f.records = &mock.MigrationRecordService{
		CreateRecordFn: func(_ context.Context, record *wixport.MigrationRecord) error {
			record.ID = fmt.Sprintf("rec-%d", len(f.created)+1)
			f.created = append(f.created, record)
			return nil
		},
		FindRecordBySlugFn: func(_ context.Context, slug string) (*wixport.MigrationRecord, error) {
			return nil, wixport.Errorf(wixport.ENOTFOUND, "migration record not found")
		},
		UpdateRecordFn: func(_ context.Context, id string, upd wixport.MigrationRecordUpdate) (*wixport.MigrationRecord, error) {
			f.updates = append(f.updates, upd)
			record := &wixport.MigrationRecord{ID: id}
			if upd.Status != nil {
				record.Status = *upd.Status
			}
			return record, nil
		},
	}
	f.memberMap = &mock.MemberMapService{
		FindMappingByEmailFn: func(_ context.Context, email string) (*wixport.MemberMapping, error) {
			return nil, wixport.Errorf(wixport.ENOTFOUND, "member mapping not found")
		},
		UpsertMappingFn: func(_ context.Context, mapping *wixport.MemberMapping) error {
			f.mappings = append(f.mappings, mapping)
			return nil
		},
	}
	f.members = &mock.MemberService{
		FindMemberByEmailFn: func(_ context.Context, email string) (*wixport.Member, error) {
			return nil, wixport.Errorf(wixport.ENOTFOUND, "member not found")
		},
		CreateMemberFn: func(_ context.Context, email, nickname string) (*wixport.Member, error) {
			return &wixport.Member{ID: "member-" + nickname, Email: email, Nickname: nickname}, nil
		},
	}
	f.blog = &mock.BlogService{
		CreateDraftFn: func(_ context.Context, draft *wixport.DraftPost) (*wixport.DraftPost, error) {
			f.drafts = append(f.drafts, draft)
			created := *draft
			created.ID = "draft-1"
			created.Revision = "1"
			return &created, nil
		},
		PublishFn: func(_ context.Context, draftID string) (string, error) {
			f.publishes = append(f.publishes, draftID)
			return "post-1", nil
		},
		EnsureTermsFn: func(_ context.Context, kind wixport.TermKind, labels []string) ([]string, error) {
			f.ensured = append(f.ensured, ensureCall{kind: kind, labels: labels})
			ids := make([]string, len(labels))
			for i, label := range labels {
				ids[i] = string(kind) + ":" + label
			}
			return ids, nil
		},
	}
	f.media = &mock.MediaService{ImportImageFn: func(_ context.Context, url string) (string, error) {
		f.imports = append(f.imports, url)
		return "media-1", nil
	}}
	f.redirects = &mock.RedirectWriter{WriteRedirectsFn: func(path string, redirects []wixport.Redirect) error {
		f.written = append(f.written, redirects...)
		return nil
	}}

	f.m = &migrate.Migrator{
		Source:             f.source,
		Converter:          f.converter,
		Blog:               f.blog,
		Media:              f.media,
		Members:            f.members,
		Records:            f.records,
		MemberMap:          f.memberMap,
		Redirects:          f.redirects,
		Publish:            true,
		DefaultMemberEmail: "editor@example.com",
		CategoryMap:        wixport.CategoryMap{"baking": "Baking"},
		SiteURL:            "https://new.example.com",
		OldDomain:          "https://old.example.com",
		RedirectsPath:      "redirects.csv",
	}
	return f
}

func sourdoughPost() *wixport.Post {
	return &wixport.Post{
		ID:               "11",
		Title:            "Sourdough Basics",
		Slug:             "sourdough-basics",
		ContentHTML:      "<p>Feed the starter every morning.</p>",
		Excerpt:          "A primer on keeping a starter alive.",
		Status:           wixport.PostStatusPublish,
		Permalink:        "https://old.example.com/2021/09/06/sourdough-basics/",
		FeaturedImageURL: "https://old.example.com/uploads/loaf.jpg",
		AuthorEmail:      "anna@example.com",
		Categories:       []string{"baking"},
		Tags:             []string{"sourdough", "bread"},
		PublishedAt:      time.Date(2021, 9, 6, 10, 30, 0, 0, time.UTC),
	}
}

func textContent(text string) *wixport.RichContent {
	return &wixport.RichContent{Nodes: []*wixport.Node{{
		Type:          wixport.NodeParagraph,
		ID:            "n1",
		ParagraphData: &wixport.ParagraphData{},
		Nodes: []*wixport.Node{{
			Type:     wixport.NodeText,
			TextData: &wixport.TextData{Text: text},
		}},
	}}}
}

func statuses(updates []wixport.MigrationRecordUpdate) []string {
	out := make([]string, 0, len(updates))
	for _, upd := range updates {
		if upd.Status != nil {
			out = append(out, *upd.Status)
		}
	}
	return out
}
