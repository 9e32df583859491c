// Package wix implements the remote blog, media and member services on
// top of the Wix REST API.
package wix

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/wixport"
	"golang.org/x/time/rate"
)

// Defaults for the API client.
const (
	DefaultBaseURL           = "https://www.wixapis.com"
	DefaultRequestsPerMinute = 180
	DefaultTimeout           = 30 * time.Second
)

// DefaultRetryDelays returns the backoff delays for retryable API
// failures: 700ms doubling, five attempts total.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{
		700 * time.Millisecond,
		1400 * time.Millisecond,
		2800 * time.Millisecond,
		5600 * time.Millisecond,
	}
}

// Ensure Client implements the remote service interfaces.
var (
	_ wixport.BlogService   = (*Client)(nil)
	_ wixport.MediaService  = (*Client)(nil)
	_ wixport.MemberService = (*Client)(nil)
)

// Client calls the Wix REST API. Every request waits on a shared rate
// limiter and retries 429 and 5xx responses with exponential backoff, so
// the sequential migration pipeline can treat calls as reliable.
type Client struct {
	baseURL     string
	apiKey      string
	accessToken string
	siteID      string
	accountID   string
	httpClient  *http.Client
	limiter     *rate.Limiter
	retryDelays []time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithAPIKey authenticates with an API key, sent raw in the
// Authorization header. Takes precedence over an access token.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithAccessToken authenticates with an OAuth access token, sent with a
// Bearer prefix unless the token already carries one.
func WithAccessToken(token string) Option {
	return func(c *Client) {
		c.accessToken = token
	}
}

// WithAccountID sets the wix-account-id header, required for API keys
// scoped to an account.
func WithAccountID(id string) Option {
	return func(c *Client) {
		c.accountID = id
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithRequestsPerMinute adjusts the rate limit.
func WithRequestsPerMinute(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(float64(n)/60.0), 1)
		}
	}
}

// WithRetryDelays replaces the backoff delays. Useful for testing
// without waiting for real delays.
func WithRetryDelays(delays ...time.Duration) Option {
	return func(c *Client) {
		c.retryDelays = delays
	}
}

// NewClient creates a Client for the given site.
func NewClient(siteID string, opts ...Option) *Client {
	c := &Client{
		baseURL:     DefaultBaseURL,
		siteID:      siteID,
		retryDelays: DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if c.limiter == nil {
		c.limiter = rate.NewLimiter(rate.Limit(float64(DefaultRequestsPerMinute)/60.0), 1)
	}
	return c
}

// Ping verifies that the credentials work and the blog app is
// installed, so a migration fails fast instead of on the first post.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.do(ctx, http.MethodGet, "/members/v1/members?paging.limit=1", nil, nil); err != nil {
		if wixport.ErrorCode(err) == wixport.EUNAUTHORIZED {
			return wixport.Errorf(wixport.EUNAUTHORIZED, "invalid or expired Wix credentials")
		}
		return err
	}
	if err := c.do(ctx, http.MethodGet, "/blog/v3/blog", nil, nil); err != nil {
		if wixport.ErrorCode(err) == wixport.ENOTFOUND {
			return wixport.Errorf(wixport.EINVALID, "the Wix Blog app is not installed on this site")
		}
		return err
	}
	return nil
}

// do performs an authenticated API call and decodes the JSON response
// into out (which may be nil).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	return c.roundTrip(ctx, method, path, body, out, true)
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body, out any, authenticated bool) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return wixport.Errorf(wixport.EINTERNAL, "failed to encode request body: %v", err)
		}
	}

	attempts := len(c.retryDelays) + 1
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return wixport.Errorf(wixport.EINTERNAL, "failed to create request: %v", err)
		}
		if authenticated {
			req.Header.Set("Authorization", c.authorization())
			if c.siteID != "" {
				req.Header.Set("wix-site-id", c.siteID)
			}
			if c.accountID != "" {
				req.Header.Set("wix-account-id", c.accountID)
			}
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = wixport.Errorf(wixport.EUNAVAILABLE, "wix api unreachable: %v", err)
			if attempt < attempts-1 {
				if err := sleep(ctx, c.retryDelays[attempt]); err != nil {
					return err
				}
				continue
			}
			return lastErr
		}

		data, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return wixport.Errorf(wixport.EINTERNAL, "failed to read API response: %v", readErr)
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			if out == nil || len(data) == 0 {
				return nil
			}
			if err := json.Unmarshal(data, out); err != nil {
				return wixport.Errorf(wixport.EINTERNAL, "failed to decode API response: %v", err)
			}
			return nil
		}

		lastErr = apiError(resp.StatusCode, data)
		if !retryable(resp.StatusCode) || attempt >= attempts-1 {
			return lastErr
		}
		delay := c.retryDelays[attempt]
		if ra := retryAfter(resp.Header); ra > 0 {
			delay = ra
		}
		if err := sleep(ctx, delay); err != nil {
			return err
		}
	}
	return lastErr
}

func (c *Client) authorization() string {
	if c.apiKey != "" {
		return c.apiKey
	}
	if c.accessToken == "" {
		return ""
	}
	if strings.HasPrefix(c.accessToken, "Bearer ") {
		return c.accessToken
	}
	return "Bearer " + c.accessToken
}

func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// retryable reports whether the status is worth another attempt.
func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// retryAfter parses a Retry-After header given in seconds.
func retryAfter(h http.Header) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// apiError maps an API failure to an application error, carrying the
// message from the response body when one is present.
func apiError(status int, body []byte) error {
	msg := apiMessage(body)
	if msg == "" {
		msg = http.StatusText(status)
	}
	return wixport.Errorf(codeForStatus(status), "wix api: %s (status %d)", msg, status)
}

func codeForStatus(status int) string {
	switch {
	case status == http.StatusBadRequest:
		return wixport.EINVALID
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return wixport.EUNAUTHORIZED
	case status == http.StatusNotFound:
		return wixport.ENOTFOUND
	case status == http.StatusConflict:
		return wixport.ECONFLICT
	case status == http.StatusTooManyRequests, status >= 500:
		return wixport.EUNAVAILABLE
	default:
		return wixport.EINTERNAL
	}
}

func apiMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}

// queryPath joins a path with encoded URL query parameters.
func queryPath(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}
	return path + "?" + params.Encode()
}
