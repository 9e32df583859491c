package wix

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/fwojciec/wixport"
)

// draftPostJSON is the wire shape of a Wix draft post.
type draftPostJSON struct {
	ID               string               `json:"id,omitempty"`
	Revision         string               `json:"revision,omitempty"`
	Title            string               `json:"title,omitempty"`
	Slug             string               `json:"slug,omitempty"`
	Excerpt          string               `json:"excerpt,omitempty"`
	MemberID         string               `json:"memberId,omitempty"`
	RichContent      *wixport.RichContent `json:"richContent,omitempty"`
	CategoryIDs      []string             `json:"categoryIds,omitempty"`
	TagIDs           []string             `json:"tagIds,omitempty"`
	SEOData          *seoDataJSON         `json:"seoData,omitempty"`
	Media            *draftMediaJSON      `json:"media,omitempty"`
	FirstPublishedAt *time.Time           `json:"firstPublishedAt,omitempty"`
}

type seoDataJSON struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

type draftMediaJSON struct {
	WixMedia  wixMediaJSON `json:"wixMedia"`
	Displayed bool         `json:"displayed"`
	Custom    bool         `json:"custom"`
}

type wixMediaJSON struct {
	Image imageRefJSON `json:"image"`
}

type imageRefJSON struct {
	ID string `json:"id"`
}

func toDraftJSON(d *wixport.DraftPost) *draftPostJSON {
	j := &draftPostJSON{
		ID:          d.ID,
		Revision:    d.Revision,
		Title:       d.Title,
		Slug:        d.Slug,
		Excerpt:     d.Excerpt,
		MemberID:    d.MemberID,
		RichContent: d.RichContent,
		CategoryIDs: d.CategoryIDs,
		TagIDs:      d.TagIDs,
	}
	if d.SEOTitle != "" || d.SEODescription != "" {
		j.SEOData = &seoDataJSON{Title: d.SEOTitle, Description: d.SEODescription}
	}
	if d.CoverMediaID != "" {
		j.Media = &draftMediaJSON{
			WixMedia:  wixMediaJSON{Image: imageRefJSON{ID: d.CoverMediaID}},
			Displayed: true,
			Custom:    true,
		}
	}
	if !d.FirstPublishedAt.IsZero() {
		t := d.FirstPublishedAt
		j.FirstPublishedAt = &t
	}
	return j
}

func fromDraftJSON(j *draftPostJSON) *wixport.DraftPost {
	d := &wixport.DraftPost{
		ID:          j.ID,
		Revision:    j.Revision,
		Title:       j.Title,
		Slug:        j.Slug,
		Excerpt:     j.Excerpt,
		MemberID:    j.MemberID,
		RichContent: j.RichContent,
		CategoryIDs: j.CategoryIDs,
		TagIDs:      j.TagIDs,
	}
	if j.SEOData != nil {
		d.SEOTitle = j.SEOData.Title
		d.SEODescription = j.SEOData.Description
	}
	if j.Media != nil {
		d.CoverMediaID = j.Media.WixMedia.Image.ID
	}
	if j.FirstPublishedAt != nil {
		d.FirstPublishedAt = *j.FirstPublishedAt
	}
	return d
}

// CreateDraft creates a new draft post and returns it with its assigned
// ID and revision.
func (c *Client) CreateDraft(ctx context.Context, draft *wixport.DraftPost) (*wixport.DraftPost, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	body := struct {
		DraftPost *draftPostJSON `json:"draftPost"`
		Publish   bool           `json:"publish"`
	}{DraftPost: toDraftJSON(draft)}

	var out struct {
		DraftPost *draftPostJSON `json:"draftPost"`
	}
	if err := c.do(ctx, http.MethodPost, "/blog/v3/draft-posts", body, &out); err != nil {
		return nil, err
	}
	if out.DraftPost == nil {
		return nil, wixport.Errorf(wixport.EINTERNAL, "wix api returned no draft post")
	}
	return fromDraftJSON(out.DraftPost), nil
}

// UpdateDraft updates an existing draft post. The draft must carry the
// revision last read from the API; a stale revision fails with
// ECONFLICT.
func (c *Client) UpdateDraft(ctx context.Context, draft *wixport.DraftPost) (*wixport.DraftPost, error) {
	if draft.ID == "" {
		return nil, wixport.Errorf(wixport.EINVALID, "draft post ID required")
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	body := struct {
		Action    string         `json:"action"`
		DraftPost *draftPostJSON `json:"draftPost"`
	}{Action: "UPDATE", DraftPost: toDraftJSON(draft)}

	var out struct {
		DraftPost *draftPostJSON `json:"draftPost"`
	}
	if err := c.do(ctx, http.MethodPatch, "/blog/v3/draft-posts/"+url.PathEscape(draft.ID), body, &out); err != nil {
		return nil, err
	}
	if out.DraftPost == nil {
		return nil, wixport.Errorf(wixport.EINTERNAL, "wix api returned no draft post")
	}
	return fromDraftJSON(out.DraftPost), nil
}

// GetDraft retrieves a draft post by ID.
func (c *Client) GetDraft(ctx context.Context, id string) (*wixport.DraftPost, error) {
	if id == "" {
		return nil, wixport.Errorf(wixport.EINVALID, "draft post ID required")
	}
	var out struct {
		DraftPost *draftPostJSON `json:"draftPost"`
	}
	if err := c.do(ctx, http.MethodGet, "/blog/v3/draft-posts/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	if out.DraftPost == nil {
		return nil, wixport.Errorf(wixport.ENOTFOUND, "draft post not found")
	}
	return fromDraftJSON(out.DraftPost), nil
}

// Publish publishes a draft post and returns the live post ID.
func (c *Client) Publish(ctx context.Context, draftID string) (string, error) {
	if draftID == "" {
		return "", wixport.Errorf(wixport.EINVALID, "draft post ID required")
	}
	var out struct {
		PostID string `json:"postId"`
	}
	if err := c.do(ctx, http.MethodPost, "/blog/v3/draft-posts/"+url.PathEscape(draftID)+"/publish", nil, &out); err != nil {
		return "", err
	}
	return out.PostID, nil
}

// postJSON is the wire shape of a published post, reduced to the fields
// the URL and SEO fieldsets return.
type postJSON struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
	URL   struct {
		Base string `json:"base"`
		Path string `json:"path"`
	} `json:"url"`
	FirstPublishedAt *time.Time `json:"firstPublishedAt"`
}

// FindPosts retrieves one page of published posts. A zero filter limit
// defaults to 100, the API maximum.
func (c *Client) FindPosts(ctx context.Context, filter wixport.PostListFilter) ([]*wixport.PublishedPost, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	params := url.Values{}
	params.Set("paging.limit", strconv.Itoa(limit))
	params.Set("paging.offset", strconv.Itoa(filter.Offset))
	params.Set("fieldsets", "URL,SEO")

	var out struct {
		Posts []*postJSON `json:"posts"`
	}
	if err := c.do(ctx, http.MethodGet, queryPath("/blog/v3/posts", params), nil, &out); err != nil {
		return nil, err
	}

	posts := make([]*wixport.PublishedPost, 0, len(out.Posts))
	for _, p := range out.Posts {
		post := &wixport.PublishedPost{
			ID:    p.ID,
			Title: p.Title,
			Slug:  p.Slug,
			URL:   p.URL.Base + p.URL.Path,
		}
		if p.FirstPublishedAt != nil {
			post.FirstPublishedAt = *p.FirstPublishedAt
		}
		posts = append(posts, post)
	}
	return posts, nil
}
