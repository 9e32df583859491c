// Package migrate provides migration orchestration. It moves posts from a
// WordPress export onto a Wix blog: conversion to rich content, member and
// taxonomy resolution, draft creation, publishing and record keeping.
package migrate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/wixport"
)

// Migrator orchestrates the migration of WordPress posts to the Wix blog.
// Posts travel through the pipeline sequentially; the remote API is never
// called concurrently.
type Migrator struct {
	Source     wixport.PostSource
	Converter  wixport.RichTextConverter
	Markdown   wixport.MarkdownConverter
	Blog       wixport.BlogService
	Media      wixport.MediaService
	Members    wixport.MemberService
	Records    wixport.MigrationRecordService
	MemberMap  wixport.MemberMapService
	Summarizer wixport.Summarizer
	Redirects  wixport.RedirectWriter
	Reports    wixport.ReportWriter
	Previews   wixport.PreviewStore
	Pinger     Pinger
	Logger     *slog.Logger

	// DryRun converts and reports without calling the Wix API or writing
	// migration records.
	DryRun bool
	// Publish moves drafts live after creation. Off, the run stops at
	// draft posts.
	Publish bool
	// Limit caps the number of posts processed; zero means all.
	Limit              int
	DefaultMemberEmail string
	CategoryMap        wixport.CategoryMap
	// SiteURL is the public base URL of the Wix site, used to construct
	// post URLs for redirects.
	SiteURL string
	// OldDomain is the base URL of the WordPress site, used as the old
	// redirect URL for posts without a permalink.
	OldDomain     string
	RedirectsPath string
	ReportPath    string
	// Workers caps Preview concurrency; zero picks a default.
	Workers int
}

// ProgressEvent reports progress during a migration run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Slug      string
	Status    string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting migration progress.
type ProgressFunc func(event ProgressEvent)

// postResult holds the outcome of migrating a single post.
type postResult struct {
	status   string
	postURL  string
	redirect *wixport.Redirect
	err      error
}

// Migrate runs the pipeline over every publishable post from the source.
// One post failing is recorded and does not abort the run. The progress
// callback, if provided, receives events as posts complete.
func (m *Migrator) Migrate(ctx context.Context, progress ProgressFunc) (*wixport.MigrationReport, error) {
	posts, err := m.publishablePosts()
	if err != nil {
		return nil, err
	}
	if m.Limit > 0 && len(posts) > m.Limit {
		posts = posts[:m.Limit]
	}

	report := &wixport.MigrationReport{
		StartedAt: time.Now().UTC(),
		DryRun:    m.DryRun,
	}
	total := len(posts)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	var redirects []wixport.Redirect
	for i, post := range posts {
		if ctx.Err() != nil {
			break
		}

		res := m.migratePost(ctx, post)
		entry := wixport.ReportEntry{
			Slug:    post.Slug,
			Title:   post.Title,
			Status:  res.status,
			PostURL: res.postURL,
		}

		switch {
		case res.err != nil:
			entry.Status = wixport.MigrationFailed
			entry.Error = res.err.Error()
			report.Failed = append(report.Failed, entry)
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, Completed: i + 1, Total: total, Slug: post.Slug, Error: res.err})
			}
		case res.status == wixport.MigrationSkipped:
			report.Skipped = append(report.Skipped, entry)
			if progress != nil {
				progress(ProgressEvent{Type: ProgressSkipped, Completed: i + 1, Total: total, Slug: post.Slug, Status: res.status})
			}
		default:
			report.OK = append(report.OK, entry)
			if progress != nil {
				progress(ProgressEvent{Type: ProgressCompleted, Completed: i + 1, Total: total, Slug: post.Slug, Status: res.status})
			}
		}

		if res.redirect != nil {
			redirects = append(redirects, *res.redirect)
		}
	}

	report.FinishedAt = time.Now().UTC()

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	if m.RedirectsPath != "" && m.Redirects != nil && len(redirects) > 0 {
		if err := m.Redirects.WriteRedirects(m.RedirectsPath, redirects); err != nil {
			m.logger().Error("writing redirects failed", "path", m.RedirectsPath, "err", err)
		}
	}
	if m.ReportPath != "" && m.Reports != nil {
		if err := m.Reports.WriteReport(m.ReportPath, report); err != nil {
			m.logger().Error("writing report failed", "path", m.ReportPath, "err", err)
		}
	}

	return report, nil
}

// publishablePosts reads the source and drops posts a WordPress export marks
// as anything but published. CSV exports without a status column default to
// published.
func (m *Migrator) publishablePosts() ([]*wixport.Post, error) {
	posts, err := m.Source.Posts()
	if err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}
	out := posts[:0]
	for _, post := range posts {
		if post.Status != "" && post.Status != wixport.PostStatusPublish {
			m.logger().Debug("unpublished post dropped", "slug", post.Slug, "status", post.Status)
			continue
		}
		out = append(out, post)
	}
	return out, nil
}

// migratePost runs one post through the pipeline and reports the status it
// reached.
func (m *Migrator) migratePost(ctx context.Context, post *wixport.Post) postResult {
	if err := post.Validate(); err != nil {
		return postResult{err: err}
	}

	hash := ContentHash(post)

	// An already published post whose content has not changed is skipped.
	record, err := m.Records.FindRecordBySlug(ctx, post.Slug)
	switch {
	case err == nil:
		if record.Status == wixport.MigrationPublished && record.ContentHash == hash {
			return postResult{status: wixport.MigrationSkipped, postURL: record.PostURL}
		}
	case wixport.ErrorCode(err) == wixport.ENOTFOUND:
		record = nil
	default:
		return postResult{err: err}
	}

	if record == nil && !m.DryRun {
		record = &wixport.MigrationRecord{
			Slug:      post.Slug,
			Title:     post.Title,
			Permalink: post.Permalink,
			Status:    wixport.MigrationPending,
		}
		if err := m.Records.CreateRecord(ctx, record); err != nil {
			return postResult{err: err}
		}
	}

	// Convert the body and cap it to the API's rich content size limit.
	rc, err := m.Converter.Convert(ctx, post.ContentHTML)
	if err != nil {
		return m.fail(ctx, record, err)
	}
	rc, dropped := rc.Truncated(wixport.MaxRichContentBytes)
	if dropped {
		m.logger().Warn("rich content truncated", "slug", post.Slug)
	}

	converted := wixport.MigrationConverted
	words := rc.WordCount()
	readSeconds := int(rc.ReadTime().Seconds())
	noError := ""
	record, err = m.advanceRecord(ctx, record, wixport.MigrationRecordUpdate{
		Status:          &converted,
		ContentHash:     &hash,
		WordCount:       &words,
		ReadTimeSeconds: &readSeconds,
		ErrorMessage:    &noError,
	})
	if err != nil {
		return postResult{err: err}
	}

	memberID, err := m.resolveMember(ctx, post.AuthorEmail)
	if err != nil {
		return m.fail(ctx, record, err)
	}

	excerpt := m.excerptFor(ctx, post, rc)

	// Taxonomy and cover media only exist on the Wix side, so a dry run
	// stops resolving here.
	var categoryIDs, tagIDs []string
	var coverID string
	if !m.DryRun {
		categoryIDs, tagIDs, err = m.ensureTaxonomy(ctx, post)
		if err != nil {
			return m.fail(ctx, record, err)
		}
		coverID = m.importCover(ctx, post)
	}

	seoTitle := post.SEOTitle
	if seoTitle == "" {
		seoTitle = post.Title
	}
	seoDescription := post.SEODescription
	if seoDescription == "" {
		seoDescription = excerpt
	}

	draft := &wixport.DraftPost{
		Title:            post.Title,
		Slug:             post.Slug,
		Excerpt:          excerpt,
		MemberID:         memberID,
		RichContent:      rc,
		CategoryIDs:      categoryIDs,
		TagIDs:           tagIDs,
		CoverMediaID:     coverID,
		SEOTitle:         seoTitle,
		SEODescription:   wixport.TruncateAtWord(seoDescription, wixport.MaxSEODescriptionLen),
		FirstPublishedAt: post.PublishedAt,
	}

	if m.DryRun {
		if err := draft.Validate(); err != nil {
			return postResult{err: err}
		}
		res := postResult{status: wixport.MigrationConverted}
		if m.Publish {
			res.postURL = m.newURL(post.Slug)
			res.redirect = m.redirectFor(post, res.postURL)
		}
		return res
	}

	// Create the draft, or update the one a previous run created.
	created, err := m.upsertDraft(ctx, record, draft)
	if err != nil {
		return m.fail(ctx, record, err)
	}

	inDraft := wixport.MigrationDraft
	record, err = m.advanceRecord(ctx, record, wixport.MigrationRecordUpdate{
		Status:   &inDraft,
		DraftID:  &created.ID,
		MemberID: &memberID,
	})
	if err != nil {
		return postResult{err: err}
	}

	if !m.Publish {
		return postResult{status: wixport.MigrationDraft}
	}

	postID, err := m.Blog.Publish(ctx, created.ID)
	if err != nil {
		return m.fail(ctx, record, err)
	}
	postURL := m.newURL(post.Slug)

	published := wixport.MigrationPublished
	if _, err := m.advanceRecord(ctx, record, wixport.MigrationRecordUpdate{
		Status:  &published,
		PostID:  &postID,
		PostURL: &postURL,
	}); err != nil {
		return postResult{err: err}
	}

	return postResult{
		status:   wixport.MigrationPublished,
		postURL:  postURL,
		redirect: m.redirectFor(post, postURL),
	}
}

// resolveMember maps a WordPress author email to a Wix member ID: stored
// mapping first, then a members API lookup, then member creation, falling
// back to the configured default author. Dry runs only consult the stored
// mappings so they work without credentials.
func (m *Migrator) resolveMember(ctx context.Context, email string) (string, error) {
	if m.DryRun {
		if email == "" {
			return "", nil
		}
		mapping, err := m.MemberMap.FindMappingByEmail(ctx, email)
		if err != nil {
			if wixport.ErrorCode(err) == wixport.ENOTFOUND {
				return "", nil
			}
			return "", err
		}
		return mapping.MemberID, nil
	}

	var lastErr error
	for _, candidate := range m.authorCandidates(email) {
		id, err := m.memberFor(ctx, candidate)
		if err == nil {
			return id, nil
		}
		lastErr = err
		m.logger().Warn("member resolution failed", "email", candidate, "err", err)
	}
	if lastErr != nil {
		return "", lastErr
	}
	return "", wixport.Errorf(wixport.EINVALID, "post has no author email and no default member is configured")
}

// authorCandidates lists the emails to try for a post, the author first and
// the configured default second.
func (m *Migrator) authorCandidates(email string) []string {
	candidates := make([]string, 0, 2)
	if email != "" {
		candidates = append(candidates, email)
	}
	if m.DefaultMemberEmail != "" && m.DefaultMemberEmail != email {
		candidates = append(candidates, m.DefaultMemberEmail)
	}
	return candidates
}

// memberFor resolves one email to a member ID and persists the mapping for
// the next run.
func (m *Migrator) memberFor(ctx context.Context, email string) (string, error) {
	mapping, err := m.MemberMap.FindMappingByEmail(ctx, email)
	if err == nil {
		return mapping.MemberID, nil
	}
	if wixport.ErrorCode(err) != wixport.ENOTFOUND {
		return "", err
	}

	member, err := m.Members.FindMemberByEmail(ctx, email)
	if wixport.ErrorCode(err) == wixport.ENOTFOUND {
		member, err = m.Members.CreateMember(ctx, email, nicknameFor(email))
	}
	if err != nil {
		return "", err
	}

	if err := m.MemberMap.UpsertMapping(ctx, &wixport.MemberMapping{
		Email:    email,
		MemberID: member.ID,
		Nickname: member.Nickname,
	}); err != nil {
		m.logger().Warn("saving member mapping failed", "email", email, "err", err)
	}
	return member.ID, nil
}

// excerptFor picks the post excerpt: the export's own, a generated one when
// a summarizer is configured, and finally truncated body text. Dry runs skip
// the summarizer call.
func (m *Migrator) excerptFor(ctx context.Context, post *wixport.Post, rc *wixport.RichContent) string {
	if excerpt := strings.TrimSpace(post.Excerpt); excerpt != "" {
		return wixport.TruncateAtWord(excerpt, wixport.MaxExcerptLen)
	}
	plain := rc.PlainText()
	if m.Summarizer != nil && !m.DryRun {
		excerpt, err := m.Summarizer.Summarize(ctx, post.Title, plain)
		if err != nil {
			m.logger().Warn("excerpt generation failed", "slug", post.Slug, "err", err)
		} else if excerpt != "" {
			return wixport.TruncateAtWord(excerpt, wixport.MaxExcerptLen)
		}
	}
	return wixport.TruncateAtWord(plain, wixport.MaxExcerptLen)
}

// ensureTaxonomy resolves the post's categories and tags to term IDs,
// creating missing terms. Categories are canonicalized through the category
// map first; tags are capped at the API limit.
func (m *Migrator) ensureTaxonomy(ctx context.Context, post *wixport.Post) (categoryIDs, tagIDs []string, err error) {
	categories := m.CategoryMap.CanonicalAll(post.Categories)
	if len(categories) > 0 {
		categoryIDs, err = m.Blog.EnsureTerms(ctx, wixport.TermCategory, categories)
		if err != nil {
			return nil, nil, err
		}
	}

	tags := post.Tags
	if len(tags) > wixport.MaxTags {
		m.logger().Warn("tag list capped", "slug", post.Slug, "tags", len(tags))
		tags = tags[:wixport.MaxTags]
	}
	if len(tags) > 0 {
		tagIDs, err = m.Blog.EnsureTerms(ctx, wixport.TermTag, tags)
		if err != nil {
			return nil, nil, err
		}
	}
	return categoryIDs, tagIDs, nil
}

// importCover imports the featured image, best effort: a failed import
// leaves the post without a cover rather than failing the migration.
func (m *Migrator) importCover(ctx context.Context, post *wixport.Post) string {
	if post.FeaturedImageURL == "" {
		return ""
	}
	coverID, err := m.Media.ImportImage(ctx, post.FeaturedImageURL)
	if err != nil {
		m.logger().Warn("cover import failed", "slug", post.Slug, "url", post.FeaturedImageURL, "err", err)
		return ""
	}
	return coverID
}

// upsertDraft creates the draft, or updates the draft a previous run left
// behind. Updates carry the draft's current revision; a concurrent edit
// surfaces as ECONFLICT and is retried once against the fresh revision.
func (m *Migrator) upsertDraft(ctx context.Context, record *wixport.MigrationRecord, draft *wixport.DraftPost) (*wixport.DraftPost, error) {
	var draftID string
	if record != nil {
		draftID = record.DraftID
	}
	if draftID == "" {
		return m.Blog.CreateDraft(ctx, draft)
	}

	current, err := m.Blog.GetDraft(ctx, draftID)
	if wixport.ErrorCode(err) == wixport.ENOTFOUND {
		// The draft was deleted on the Wix side; start over.
		return m.Blog.CreateDraft(ctx, draft)
	}
	if err != nil {
		return nil, err
	}

	draft.ID = current.ID
	draft.Revision = current.Revision
	updated, err := m.Blog.UpdateDraft(ctx, draft)
	if wixport.ErrorCode(err) == wixport.ECONFLICT {
		current, err = m.Blog.GetDraft(ctx, draftID)
		if err != nil {
			return nil, err
		}
		draft.Revision = current.Revision
		updated, err = m.Blog.UpdateDraft(ctx, draft)
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// advanceRecord applies a ledger update. Dry runs leave the ledger alone.
func (m *Migrator) advanceRecord(ctx context.Context, record *wixport.MigrationRecord, upd wixport.MigrationRecordUpdate) (*wixport.MigrationRecord, error) {
	if m.DryRun || record == nil {
		return record, nil
	}
	return m.Records.UpdateRecord(ctx, record.ID, upd)
}

// fail marks the record failed with the error text and returns the failure
// result.
func (m *Migrator) fail(ctx context.Context, record *wixport.MigrationRecord, err error) postResult {
	if !m.DryRun && record != nil {
		failed := wixport.MigrationFailed
		msg := err.Error()
		if _, uerr := m.Records.UpdateRecord(ctx, record.ID, wixport.MigrationRecordUpdate{
			Status:       &failed,
			ErrorMessage: &msg,
		}); uerr != nil {
			m.logger().Error("recording failure failed", "slug", record.Slug, "err", uerr)
		}
	}
	return postResult{err: err}
}

// newURL constructs the public URL a published post has on the Wix site.
func (m *Migrator) newURL(slug string) string {
	return strings.TrimRight(m.SiteURL, "/") + "/post/" + slug
}

// redirectFor builds the redirect row for a migrated post. Posts without a
// permalink fall back to the legacy domain plus slug; with neither there is
// no old URL to redirect from.
func (m *Migrator) redirectFor(post *wixport.Post, newURL string) *wixport.Redirect {
	oldURL := post.Permalink
	if oldURL == "" && m.OldDomain != "" {
		oldURL = strings.TrimRight(m.OldDomain, "/") + "/" + post.Slug
	}
	if oldURL == "" {
		return nil
	}
	return &wixport.Redirect{OldURL: oldURL, NewURL: newURL}
}

func (m *Migrator) logger() *slog.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// nicknameFor derives a member nickname from the part of the email before
// the at sign.
func nicknameFor(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

// ContentHash fingerprints the migratable content of a post. A rerun skips
// posts whose hash matches an already published record.
func ContentHash(post *wixport.Post) string {
	h := xxhash.Sum64String(post.Title + "\x00" + post.ContentHTML + "\x00" + post.FeaturedImageURL)
	return fmt.Sprintf("%016x", h)
}
