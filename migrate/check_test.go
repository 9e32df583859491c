package migrate_test

import (
	"context"
	"testing"

	"github.com/fwojciec/wixport"
	"github.com/fwojciec/wixport/migrate"
	"github.com/fwojciec/wixport/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrator_Check(t *testing.T) {
	t.Parallel()

	t.Run("passes with a healthy setup", func(t *testing.T) {
		t.Parallel()

		f := newFixture(sourdoughPost())
		var deleted []string
		f.records.DeleteRecordFn = func(_ context.Context, id string) error {
			deleted = append(deleted, id)
			return nil
		}
		f.m.Pinger = pingerFunc(func(ctx context.Context) error { return nil })

		report := f.m.Check(context.Background())

		assert.True(t, report.OK())
		assert.Len(t, report.Results, 6)
		assert.Equal(t, "1 posts", findResult(t, report, "export").Detail)
		assert.Equal(t, "migration records writable", findResult(t, report, "ledger").Detail)
		assert.Equal(t, "credentials accepted, blog app installed", findResult(t, report, "wix api").Detail)
		assert.Equal(t, "all export categories mapped", findResult(t, report, "categories").Detail)

		// The probe record must not outlive the check.
		require.Len(t, f.created, 1)
		assert.Equal(t, []string{f.created[0].ID}, deleted)
	})

	t.Run("fails when the export cannot be read", func(t *testing.T) {
		t.Parallel()

		f := newFixture()
		f.source.PostsFn = func() ([]*wixport.Post, error) {
			return nil, wixport.Errorf(wixport.EINVALID, "malformed csv header")
		}
		f.records.DeleteRecordFn = func(_ context.Context, id string) error { return nil }
		f.m.Pinger = pingerFunc(func(ctx context.Context) error { return nil })

		report := f.m.Check(context.Background())

		assert.False(t, report.OK())
		export := findResult(t, report, "export")
		assert.False(t, export.OK)
		assert.Contains(t, export.Detail, "malformed csv header")
	})

	t.Run("replaces a probe left behind by an interrupted check", func(t *testing.T) {
		t.Parallel()

		f := newFixture(sourdoughPost())
		creates := 0
		f.records.CreateRecordFn = func(_ context.Context, record *wixport.MigrationRecord) error {
			creates++
			if creates == 1 {
				return wixport.Errorf(wixport.ECONFLICT, "migration record already exists")
			}
			record.ID = "rec-9"
			return nil
		}
		f.records.FindRecordBySlugFn = func(_ context.Context, slug string) (*wixport.MigrationRecord, error) {
			return &wixport.MigrationRecord{ID: "rec-0", Slug: slug}, nil
		}
		var deleted []string
		f.records.DeleteRecordFn = func(_ context.Context, id string) error {
			deleted = append(deleted, id)
			return nil
		}
		f.m.Pinger = pingerFunc(func(ctx context.Context) error { return nil })

		report := f.m.Check(context.Background())

		assert.True(t, findResult(t, report, "ledger").OK)
		assert.Equal(t, 2, creates)
		assert.Equal(t, []string{"rec-0", "rec-9"}, deleted)
	})

	t.Run("fails the ledger check when the store rejects writes", func(t *testing.T) {
		t.Parallel()

		f := newFixture(sourdoughPost())
		f.records.CreateRecordFn = func(_ context.Context, record *wixport.MigrationRecord) error {
			return wixport.Errorf(wixport.EINTERNAL, "disk io error")
		}
		f.m.Pinger = pingerFunc(func(ctx context.Context) error { return nil })

		report := f.m.Check(context.Background())

		assert.False(t, report.OK())
		ledger := findResult(t, report, "ledger")
		assert.False(t, ledger.OK)
		assert.Contains(t, ledger.Detail, "disk io error")
	})

	t.Run("reports rejected api credentials", func(t *testing.T) {
		t.Parallel()

		f := newFixture(sourdoughPost())
		f.records.DeleteRecordFn = func(_ context.Context, id string) error { return nil }
		f.m.Pinger = pingerFunc(func(ctx context.Context) error {
			return wixport.Errorf(wixport.EUNAUTHORIZED, "invalid api token")
		})

		report := f.m.Check(context.Background())

		assert.False(t, report.OK())
		api := findResult(t, report, "wix api")
		assert.False(t, api.OK)
		assert.Equal(t, "invalid api token", api.Detail)
	})

	t.Run("reports a missing api client", func(t *testing.T) {
		t.Parallel()

		f := newFixture(sourdoughPost())
		f.records.DeleteRecordFn = func(_ context.Context, id string) error { return nil }

		report := f.m.Check(context.Background())

		api := findResult(t, report, "wix api")
		assert.False(t, api.OK)
		assert.Equal(t, "no API client configured", api.Detail)
	})

	t.Run("flags categories missing from the map", func(t *testing.T) {
		t.Parallel()

		post := sourdoughPost()
		post.Categories = []string{"baking", "fermentation", "equipment"}
		f := newFixture(post)
		f.records.DeleteRecordFn = func(_ context.Context, id string) error { return nil }
		f.m.Pinger = pingerFunc(func(ctx context.Context) error { return nil })

		report := f.m.Check(context.Background())

		assert.False(t, report.OK())
		categories := findResult(t, report, "categories")
		assert.False(t, categories.OK)
		assert.Equal(t, "unmapped: equipment, fermentation", categories.Detail)
	})

	t.Run("passes categories through without a map", func(t *testing.T) {
		t.Parallel()

		f := newFixture(sourdoughPost())
		f.m.CategoryMap = nil
		f.records.DeleteRecordFn = func(_ context.Context, id string) error { return nil }
		f.m.Pinger = pingerFunc(func(ctx context.Context) error { return nil })

		report := f.m.Check(context.Background())

		assert.True(t, report.OK())
		assert.Equal(t, "no category map configured, labels pass through", findResult(t, report, "categories").Detail)
	})

	t.Run("notes the summarizer and default member", func(t *testing.T) {
		t.Parallel()

		f := newFixture(sourdoughPost())
		f.records.DeleteRecordFn = func(_ context.Context, id string) error { return nil }
		f.m.Pinger = pingerFunc(func(ctx context.Context) error { return nil })
		f.m.Summarizer = &mock.Summarizer{}

		report := f.m.Check(context.Background())

		assert.Equal(t, "summarizer configured", findResult(t, report, "excerpts").Detail)
		assert.Equal(t, "editor@example.com", findResult(t, report, "default member").Detail)
	})
}

func TestCheckReport_OK(t *testing.T) {
	t.Parallel()

	t.Run("returns true for an empty report", func(t *testing.T) {
		t.Parallel()

		report := &migrate.CheckReport{}
		assert.True(t, report.OK())
	})

	t.Run("returns false when any check failed", func(t *testing.T) {
		t.Parallel()

		report := &migrate.CheckReport{Results: []migrate.CheckResult{
			{Name: "export", OK: true},
			{Name: "ledger", OK: false},
		}}
		assert.False(t, report.OK())
	})
}

// pingerFunc adapts a function to the Pinger interface.
type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// findResult returns the named check result or fails the test.
func findResult(t *testing.T, report *migrate.CheckReport, name string) migrate.CheckResult {
	t.Helper()
	for _, result := range report.Results {
		if result.Name == name {
			return result
		}
	}
	t.Fatalf("missing check result %q", name)
	return migrate.CheckResult{}
}
