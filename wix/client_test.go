package wix_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/wixport"
	"github.com/fwojciec/wixport/wix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time verification that Client implements the remote services.
var (
	_ wixport.BlogService   = (*wix.Client)(nil)
	_ wixport.MediaService  = (*wix.Client)(nil)
	_ wixport.MemberService = (*wix.Client)(nil)
)

// recorder captures requests so assertions can run on the test
// goroutine instead of inside the handler.
type recorder struct {
	mu       sync.Mutex
	requests []recordedRequest
}

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

func (r *recorder) record(req *http.Request) {
	body, _ := io.ReadAll(req.Body)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, recordedRequest{
		Method: req.Method,
		Path:   req.URL.Path,
		Query:  req.URL.RawQuery,
		Header: req.Header.Clone(),
		Body:   body,
	})
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}

func (r *recorder) last() recordedRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.requests[len(r.requests)-1]
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...wix.Option) *wix.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	base := []wix.Option{
		wix.WithBaseURL(server.URL),
		wix.WithAPIKey("test-key"),
		wix.WithRequestsPerMinute(60_000),
		wix.WithRetryDelays(time.Millisecond, time.Millisecond),
	}
	return wix.NewClient("site-1", append(base, opts...)...)
}

func TestClient_Auth(t *testing.T) {
	t.Parallel()

	t.Run("sends api key and site headers", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			rec.record(r)
			_, _ = w.Write([]byte(`{"posts":[]}`))
		}, wix.WithAccountID("acct-1"))

		_, err := client.FindPosts(context.Background(), wixport.PostListFilter{})
		require.NoError(t, err)

		req := rec.last()
		assert.Equal(t, "test-key", req.Header.Get("Authorization"))
		assert.Equal(t, "site-1", req.Header.Get("wix-site-id"))
		assert.Equal(t, "acct-1", req.Header.Get("wix-account-id"))
	})

	t.Run("prefixes bare access tokens with Bearer", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec.record(r)
			_, _ = w.Write([]byte(`{"posts":[]}`))
		}))
		t.Cleanup(server.Close)

		client := wix.NewClient("site-1",
			wix.WithBaseURL(server.URL),
			wix.WithAccessToken("token-123"),
			wix.WithRequestsPerMinute(60_000),
		)
		_, err := client.FindPosts(context.Background(), wixport.PostListFilter{})
		require.NoError(t, err)
		assert.Equal(t, "Bearer token-123", rec.last().Header.Get("Authorization"))
	})
}

func TestClient_Retry(t *testing.T) {
	t.Parallel()

	t.Run("retries rate limited requests", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			rec.record(r)
			if rec.count() < 3 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			_, _ = w.Write([]byte(`{"posts":[]}`))
		})

		_, err := client.FindPosts(context.Background(), wixport.PostListFilter{})
		require.NoError(t, err)
		assert.Equal(t, 3, rec.count())
	})

	t.Run("retries server errors", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			rec.record(r)
			if rec.count() == 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte(`{"posts":[]}`))
		})

		_, err := client.FindPosts(context.Background(), wixport.PostListFilter{})
		require.NoError(t, err)
		assert.Equal(t, 2, rec.count())
	})

	t.Run("gives up after exhausting retries", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			rec.record(r)
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := client.FindPosts(context.Background(), wixport.PostListFilter{})
		require.Error(t, err)
		assert.Equal(t, wixport.EUNAVAILABLE, wixport.ErrorCode(err))
		assert.Equal(t, 3, rec.count())
	})

	t.Run("honors the Retry-After header", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			rec.record(r)
			if rec.count() == 1 {
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			_, _ = w.Write([]byte(`{"posts":[]}`))
		})

		start := time.Now()
		_, err := client.FindPosts(context.Background(), wixport.PostListFilter{})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), time.Second)
	})

	t.Run("does not retry client errors", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			rec.record(r)
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"bad slug"}`))
		})

		_, err := client.FindPosts(context.Background(), wixport.PostListFilter{})
		require.Error(t, err)
		assert.Equal(t, 1, rec.count())
	})
}

func TestClient_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		code   string
	}{
		{name: "bad request", status: http.StatusBadRequest, code: wixport.EINVALID},
		{name: "unauthorized", status: http.StatusUnauthorized, code: wixport.EUNAUTHORIZED},
		{name: "forbidden", status: http.StatusForbidden, code: wixport.EUNAUTHORIZED},
		{name: "not found", status: http.StatusNotFound, code: wixport.ENOTFOUND},
		{name: "conflict", status: http.StatusConflict, code: wixport.ECONFLICT},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"message":"it broke"}`))
			})

			_, err := client.GetDraft(context.Background(), "d1")
			require.Error(t, err)
			assert.Equal(t, tt.code, wixport.ErrorCode(err))
			assert.Contains(t, wixport.ErrorMessage(err), "it broke")
		})
	}
}

func TestClient_Ping(t *testing.T) {
	t.Parallel()

	t.Run("passes when both APIs respond", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		})
		require.NoError(t, client.Ping(context.Background()))
	})

	t.Run("reports invalid credentials", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		err := client.Ping(context.Background())
		require.Error(t, err)
		assert.Equal(t, wixport.EUNAUTHORIZED, wixport.ErrorCode(err))
	})

	t.Run("reports a missing blog app", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/blog/v3/blog" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = w.Write([]byte(`{}`))
		})

		err := client.Ping(context.Background())
		require.Error(t, err)
		assert.Equal(t, wixport.EINVALID, wixport.ErrorCode(err))
		assert.Contains(t, wixport.ErrorMessage(err), "Blog app")
	})
}

func TestClient_Token(t *testing.T) {
	t.Parallel()

	t.Run("mints a client-credentials token", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			rec.record(r)
			_, _ = w.Write([]byte(`{"access_token":"at-1","expires_in":14400}`))
		})

		token, err := client.Token(context.Background(), wix.Credentials{
			ClientID:     "cid",
			ClientSecret: "secret",
			InstanceID:   "inst",
		})
		require.NoError(t, err)
		assert.Equal(t, "at-1", token.Token)
		assert.Equal(t, 14400, token.ExpiresIn)

		req := rec.last()
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "/oauth2/token", req.Path)
		assert.Empty(t, req.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.Unmarshal(req.Body, &body))
		assert.Equal(t, "client_credentials", body["grant_type"])
		assert.Equal(t, "cid", body["client_id"])
		assert.Equal(t, "inst", body["instance_id"])
	})

	t.Run("requires client credentials", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
		_, err := client.Token(context.Background(), wix.Credentials{})
		require.Error(t, err)
		assert.Equal(t, wixport.EINVALID, wixport.ErrorCode(err))
	})
}
