package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
)

// fakeCreds is an in-memory Credentials used by the tests.
type fakeCreds struct {
	mu      sync.Mutex
	key     string
	token   string
	role    string
	cookies []*http.Cookie
	rotated []string
	revoked int
}

func newFakeCreds(token string) *fakeCreds {
	return &fakeCreds{key: "sess-1", token: token, role: "admin"}
}

func (f *fakeCreds) Key() string { return f.key }

func (f *fakeCreds) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeCreds) Cookies() []*http.Cookie {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cookies
}

func (f *fakeCreds) Rotate(_ context.Context, token string, cookies []*http.Cookie) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
	if len(cookies) > 0 {
		f.cookies = cookies
	}
	f.rotated = append(f.rotated, token)
	return nil
}

func (f *fakeCreds) Revoke(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	f.role = ""
	f.revoked++
	return nil
}

type recorded struct {
	method string
	path   string
	auth   string
	body   string
	header http.Header
}

// backend is a scripted test server. Requests to /new-token are answered by
// refresh; everything else by handle.
type backend struct {
	mu       sync.Mutex
	calls    []recorded
	refreshN atomic.Int32
	handle   func(w http.ResponseWriter, r *http.Request)
	refresh  func(w http.ResponseWriter, r *http.Request)
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	b.mu.Lock()
	b.calls = append(b.calls, recorded{
		method: r.Method,
		path:   r.URL.Path,
		auth:   r.Header.Get("Authorization"),
		body:   string(body),
		header: r.Header.Clone(),
	})
	b.mu.Unlock()

	if r.URL.Path == "/api/v1/new-token" {
		b.refreshN.Add(1)
		b.refresh(w, r)
		return
	}
	b.handle(w, r)
}

func (b *backend) callsTo(path string) []recorded {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []recorded
	for _, c := range b.calls {
		if c.path == path {
			out = append(out, c)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func tokenRefresh(token string) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"statusCode": 200,
			"message":    map[string]string{"uz": "ok", "en": "ok", "ru": "ok"},
			"data":       map[string]string{"token": token},
		})
	}
}

func unauthorizedFor(token string, then func(http.ResponseWriter, *http.Request)) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer "+token {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"statusCode": 401, "message": "Unauthorized"})
			return
		}
		then(w, r)
	}
}

func ok(data any) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"statusCode": 200, "data": data})
	}
}

func newTestClient(t *testing.T, b *backend) *Client {
	t.Helper()
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	c, err := New(Config{
		BaseURL:     srv.URL + "/api/v1/",
		RefreshPath: "/new-token",
		Timeout:     5 * time.Second,
		Headers:     map[string]string{"ngrok-skip-browser-warning": "true"},
	}, zap.NewNop(), WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return c
}

func TestDo_AttachesBearerAndFixedHeaders(t *testing.T) {
	b := &backend{handle: ok(map[string]string{"id": "1"})}
	c := newTestClient(t, b)
	creds := newFakeCreds("T1")

	resp, err := c.Do(context.Background(), creds, Request{
		Method: http.MethodPost,
		Path:   "/teacher",
		Body:   map[string]string{"fullName": "Ali"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	calls := b.callsTo("/api/v1/teacher")
	require.Len(t, calls, 1)
	assert.Equal(t, "Bearer T1", calls[0].auth)
	assert.Equal(t, "true", calls[0].header.Get("ngrok-skip-browser-warning"))
	assert.Equal(t, "application/json", calls[0].header.Get("Content-Type"))
	assert.Equal(t, "application/json", calls[0].header.Get("Accept"))
	assert.JSONEq(t, `{"fullName":"Ali"}`, calls[0].body)
}

func TestDo_NoTokenSendsNoAuthorization(t *testing.T) {
	b := &backend{handle: ok(nil)}
	c := newTestClient(t, b)

	_, err := c.Do(context.Background(), newFakeCreds(""), Request{Method: http.MethodGet, Path: "/admin/stats"})
	require.NoError(t, err)

	calls := b.callsTo("/api/v1/admin/stats")
	require.Len(t, calls, 1)
	assert.Empty(t, calls[0].auth)
	assert.Empty(t, calls[0].header.Get("Content-Type"))
}

func TestDo_RefreshesOnceAndRetries(t *testing.T) {
	b := &backend{
		handle:  unauthorizedFor("T1", ok(map[string]string{"name": "admin"})),
		refresh: tokenRefresh("T2"),
	}
	c := newTestClient(t, b)
	creds := newFakeCreds("T1")

	resp, err := c.Do(context.Background(), creds, Request{Method: http.MethodGet, Path: "/admin/stats"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	calls := b.callsTo("/api/v1/admin/stats")
	require.Len(t, calls, 2)
	assert.Equal(t, "Bearer T1", calls[0].auth)
	assert.Equal(t, "Bearer T2", calls[1].auth)

	refreshCalls := b.callsTo("/api/v1/new-token")
	require.Len(t, refreshCalls, 1)
	assert.Equal(t, http.MethodPost, refreshCalls[0].method)
	assert.Empty(t, refreshCalls[0].auth)
	assert.Equal(t, "true", refreshCalls[0].header.Get("ngrok-skip-browser-warning"))

	assert.Equal(t, "T2", creds.Token())
	assert.Equal(t, []string{"T2"}, creds.rotated)
	assert.Zero(t, creds.revoked)
}

func TestDo_SecondUnauthorizedIsPropagated(t *testing.T) {
	b := &backend{
		handle: func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"statusCode": 401, "message": "nope"})
		},
		refresh: tokenRefresh("T2"),
	}
	c := newTestClient(t, b)
	creds := newFakeCreds("T1")

	resp, err := c.Do(context.Background(), creds, Request{Method: http.MethodGet, Path: "/student"})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, StatusCode(err))
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
	assert.NotErrorIs(t, err, ErrSessionExpired)

	assert.Len(t, b.callsTo("/api/v1/student"), 2)
	assert.EqualValues(t, 1, b.refreshN.Load())
	assert.Zero(t, creds.revoked)
}

func TestDo_RefreshFailureEndsSession(t *testing.T) {
	tests := []struct {
		name    string
		refresh func(http.ResponseWriter, *http.Request)
	}{
		{
			name: "refresh rejected",
			refresh: func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusUnauthorized, map[string]any{"statusCode": 401, "message": "expired"})
			},
		},
		{
			name:    "refresh without token",
			refresh: tokenRefresh(""),
		},
		{
			name: "refresh with malformed body",
			refresh: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("<html>"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &backend{
				handle:  unauthorizedFor("T1", ok(nil)),
				refresh: tt.refresh,
			}
			c := newTestClient(t, b)
			creds := newFakeCreds("T1")

			resp, err := c.Do(context.Background(), creds, Request{Method: http.MethodGet, Path: "/teacher/me"})
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.ErrorIs(t, err, ErrSessionExpired)

			assert.Len(t, b.callsTo("/api/v1/teacher/me"), 1, "original request must not be retried")
			assert.Empty(t, creds.Token())
			assert.Empty(t, creds.role)
			assert.Equal(t, 1, creds.revoked)
		})
	}
}

func TestDo_NonUnauthorizedErrorsPassThrough(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusForbidden, http.StatusNotFound, http.StatusInternalServerError} {
		b := &backend{
			handle: func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, status, map[string]any{
					"statusCode": status,
					"message":    map[string]string{"uz": "xato", "en": "failure", "ru": "ошибка"},
				})
			},
			refresh: tokenRefresh("T2"),
		}
		c := newTestClient(t, b)
		creds := newFakeCreds("T1")

		resp, err := c.Do(context.Background(), creds, Request{Method: http.MethodDelete, Path: "/teacher/42"})
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, status, resp.StatusCode)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "failure", apiErr.Message.Localize("en"))
		assert.Equal(t, "xato", apiErr.Message.Localize(""))

		assert.Zero(t, b.refreshN.Load(), "status %d must not trigger a refresh", status)
		assert.Equal(t, "T1", creds.Token())
	}
}

func TestDo_AnonymousUnauthorizedDoesNotRefresh(t *testing.T) {
	b := &backend{
		handle: func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"statusCode": 401, "message": "bad credentials"})
		},
		refresh: tokenRefresh("T2"),
	}
	c := newTestClient(t, b)

	_, err := c.Do(context.Background(), nil, Request{Method: http.MethodPost, Path: "/signin/admin", Body: map[string]string{"username": "a"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
	assert.Zero(t, b.refreshN.Load())
}

func TestDo_ConcurrentUnauthorizedShareOneRefresh(t *testing.T) {
	release := make(chan struct{})
	b := &backend{
		handle: unauthorizedFor("T1", ok(nil)),
		refresh: func(w http.ResponseWriter, r *http.Request) {
			<-release
			tokenRefresh("T2")(w, r)
		},
	}
	c := newTestClient(t, b)
	creds := newFakeCreds("T1")

	const callers = 5
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Do(context.Background(), creds, Request{Method: http.MethodGet, Path: "/lessons/for-teacher"})
			errs <- err
		}()
	}

	require.Eventually(t, func() bool {
		return len(b.callsTo("/api/v1/lessons/for-teacher")) == callers && b.refreshN.Load() == 1
	}, 2*time.Second, 5*time.Millisecond)
	// let every caller read its 401 and join the pending refresh
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.EqualValues(t, 1, b.refreshN.Load())
	assert.Equal(t, "T2", creds.Token())
}

func TestDo_RefreshReplaysBackendCookies(t *testing.T) {
	b := &backend{
		handle:  unauthorizedFor("T1", ok(nil)),
		refresh: tokenRefresh("T2"),
	}
	c := newTestClient(t, b)
	creds := newFakeCreds("T1")
	creds.cookies = []*http.Cookie{{Name: "refreshToken", Value: "r-1"}}

	_, err := c.Do(context.Background(), creds, Request{Method: http.MethodGet, Path: "/teacher/me"})
	require.NoError(t, err)

	refreshCalls := b.callsTo("/api/v1/new-token")
	require.Len(t, refreshCalls, 1)
	assert.Equal(t, "refreshToken=r-1", refreshCalls[0].header.Get("Cookie"))
}

func TestTypedHelpers(t *testing.T) {
	type stats struct {
		TotalStudents int `json:"totalStudents"`
	}

	b := &backend{
		handle: func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/v1/admin/stats":
				assert.Equal(t, "2024", r.URL.Query().Get("year"))
				ok(stats{TotalStudents: 7})(w, r)
			case "/api/v1/student":
				writeJSON(w, http.StatusOK, map[string]any{
					"statusCode":    200,
					"data":          []map[string]string{{"id": "s1"}, {"id": "s2"}},
					"currentPage":   2,
					"totalPages":    3,
					"totalElements": 25,
					"pageSize":      10,
				})
			default:
				w.WriteHeader(http.StatusNoContent)
			}
		},
	}
	c := newTestClient(t, b)
	creds := newFakeCreds("T1")
	ctx := context.Background()

	got, err := Get[stats](ctx, c, creds, "/admin/stats", map[string][]string{"year": {"2024"}})
	require.NoError(t, err)
	assert.Equal(t, 7, got.TotalStudents)

	page, err := GetPage[struct {
		ID string `json:"id"`
	}](ctx, c, creds, "/student", nil)
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 25, page.TotalElements)

	_, err = Send[struct{}](ctx, c, creds, Request{Method: http.MethodDelete, Path: "/lessons/1"})
	assert.NoError(t, err)
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(Config{}, nil)
	assert.Error(t, err)
}

func TestClient_URLJoin(t *testing.T) {
	c, err := New(Config{BaseURL: "http://backend/api/v1/"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "http://backend/api/v1/teacher/1", c.url("/teacher/1", nil))
	assert.Equal(t, "http://backend/api/v1/teacher?page=2", c.url("teacher", map[string][]string{"page": {"2"}}))
	assert.Equal(t, "http://backend/api/v1/teacher/google", c.Endpoint("/teacher/google"))
}
