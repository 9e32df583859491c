package wix

import (
	"context"
	"net/http"

	"github.com/fwojciec/wixport"
)

// ImportImage imports the image at url into the site's media manager
// and returns its media ID.
func (c *Client) ImportImage(ctx context.Context, imageURL string) (string, error) {
	if imageURL == "" {
		return "", wixport.Errorf(wixport.EINVALID, "image URL required")
	}
	body := struct {
		URL       string `json:"url"`
		MediaType string `json:"mediaType"`
	}{URL: imageURL, MediaType: "IMAGE"}

	var out struct {
		File struct {
			ID string `json:"id"`
		} `json:"file"`
	}
	if err := c.do(ctx, http.MethodPost, "/site-media/v1/files/import", body, &out); err != nil {
		return "", err
	}
	if out.File.ID == "" {
		return "", wixport.Errorf(wixport.EINTERNAL, "wix api returned no media file ID")
	}
	return out.File.ID, nil
}
