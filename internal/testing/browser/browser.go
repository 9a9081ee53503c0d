// Package browser drives a console under test the way a signed-in operator's
// browser would: cookies are kept, redirects are reported, not followed.
package browser

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/odyssey-erp/odyssey-pos/internal/shared"
)

var tokenPattern = regexp.MustCompile(`name="csrf_token" value="([^"]+)"`)

// Sessions returns a session manager backed by a throwaway miniredis.
func Sessions(t testing.TB) *shared.SessionManager {
	t.Helper()
	sessions, _ := SessionStore(t, time.Hour)
	return sessions
}

// SessionStore is Sessions with a chosen TTL and access to the store, for
// tests that move the clock.
func SessionStore(t testing.TB, ttl time.Duration) (*shared.SessionManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return shared.NewSessionManager(client, "test_session", "secret", ttl, false), mr
}

// Response is a fully read reply.
type Response struct {
	Status   int
	Location string
	Header   http.Header
	Body     string
}

// Browser is a cookie-keeping client bound to one test server.
type Browser struct {
	t      testing.TB
	base   string
	client *http.Client
	token  string
}

// New starts handler on a test server and returns a browser pointed at it.
func New(t testing.TB, handler http.Handler) *Browser {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &Browser{
		t:    t,
		base: srv.URL,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Get fetches path and remembers the CSRF token found in the page.
func (b *Browser) Get(path string, header ...string) Response {
	b.t.Helper()
	return b.Send(http.MethodGet, path, header...)
}

// Send issues a bodyless request with the given header name/value pairs.
func (b *Browser) Send(method, path string, header ...string) Response {
	b.t.Helper()
	req, err := http.NewRequest(method, b.base+path, nil)
	if err != nil {
		b.t.Fatalf("build request: %v", err)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	return b.do(req)
}

// Post submits form to path with the last seen CSRF token attached.
func (b *Browser) Post(path string, form url.Values) Response {
	b.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	if form.Get(shared.CSRFFormField) == "" && b.token != "" {
		form.Set(shared.CSRFFormField, b.token)
	}
	req, err := http.NewRequest(http.MethodPost, b.base+path, strings.NewReader(form.Encode()))
	if err != nil {
		b.t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

// Token returns the last CSRF token seen in a page.
func (b *Browser) Token() string {
	return b.token
}

func (b *Browser) do(req *http.Request) Response {
	b.t.Helper()
	res, err := b.client.Do(req)
	if err != nil {
		b.t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer res.Body.Close()
	raw, err := io.ReadAll(res.Body)
	if err != nil {
		b.t.Fatalf("read body: %v", err)
	}
	body := string(raw)
	if m := tokenPattern.FindStringSubmatch(body); m != nil {
		b.token = m[1]
	}
	return Response{
		Status:   res.StatusCode,
		Location: res.Header.Get("Location"),
		Header:   res.Header,
		Body:     body,
	}
}
