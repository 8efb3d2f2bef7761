// Package domaintest runs domain services and handlers against a scripted
// backend. It is imported by tests only.
package domaintest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/hmhy-portal/internal/app/apiclient"
	"github.com/FACorreiaa/hmhy-portal/internal/app/domain"
	"github.com/FACorreiaa/hmhy-portal/internal/app/middleware"
	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
	"github.com/FACorreiaa/hmhy-portal/internal/app/session"
)

// Call is one request the backend received.
type Call struct {
	Method string
	Path   string
	Query  url.Values
	Auth   string
	Body   map[string]any
}

// Backend serves canned envelopes keyed by "METHOD /path" below /api/v1.
type Backend struct {
	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	calls  []Call
	srv    *httptest.Server
}

func NewBackend(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{routes: map[string]http.HandlerFunc{}}
	b.srv = httptest.NewServer(b)
	t.Cleanup(b.srv.Close)
	return b
}

func (b *Backend) Handle(method, path string, h http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[method+" "+path] = h
}

func (b *Backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1")
	call := Call{Method: r.Method, Path: path, Query: r.URL.Query(), Auth: r.Header.Get("Authorization")}
	if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
		_ = json.Unmarshal(raw, &call.Body)
	}

	b.mu.Lock()
	b.calls = append(b.calls, call)
	h, ok := b.routes[r.Method+" "+path]
	b.mu.Unlock()

	if !ok {
		Fail(http.StatusNotFound, "Topilmadi", "Not found")(w, r)
		return
	}
	h(w, r)
}

func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Call(nil), b.calls...)
}

// CallsTo returns the calls made to method and path.
func (b *Backend) CallsTo(method, path string) []Call {
	var out []Call
	for _, c := range b.Calls() {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

func (b *Backend) Client(t *testing.T) *apiclient.Client {
	t.Helper()
	c, err := apiclient.New(apiclient.Config{
		BaseURL:     b.srv.URL + "/api/v1",
		RefreshPath: "/new-token",
		Timeout:     5 * time.Second,
	}, zap.NewNop(), apiclient.WithHTTPClient(b.srv.Client()))
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK answers with data in a 200 envelope.
func OK(data any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"statusCode": 200, "message": "success", "data": data})
	}
}

// Page answers like a paginated list endpoint.
func Page(data any, p models.Pagination) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"statusCode":    200,
			"data":          data,
			"currentPage":   p.CurrentPage,
			"totalPages":    p.TotalPages,
			"totalElements": p.TotalElements,
			"pageSize":      p.PageSize,
			"from":          p.From,
			"to":            p.To,
		})
	}
}

// Fail answers with a localized error message.
func Fail(status int, uz, en string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, status, map[string]any{
			"statusCode": status,
			"message":    map[string]string{"uz": uz, "en": en, "ru": en},
		})
	}
}

// Creds is a fixed-token session for service tests.
type Creds struct {
	key     string
	token   string
	revoked bool
	mu      sync.Mutex
}

func NewCreds(token string) *Creds { return &Creds{key: "test:" + token, token: token} }

func (c *Creds) Key() string { return c.key }

func (c *Creds) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *Creds) Cookies() []*http.Cookie { return nil }

func (c *Creds) Rotate(_ context.Context, token string, _ []*http.Cookie) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	return nil
}

func (c *Creds) Revoke(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.revoked = true
	c.token = ""
	return nil
}

func (c *Creds) Revoked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.revoked
}

// Harness is a gin engine whose requests all carry one session.
type Harness struct {
	Engine   *gin.Engine
	Base     *domain.BaseHandler
	Sessions *session.Manager
	Session  *session.Session
}

// NewHarness signs requests in as role; the zero role leaves them anonymous.
func NewHarness(t *testing.T, role models.Role) *Harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := session.NewMemoryStore(time.Hour)
	manager := session.NewManager(store, time.Hour, zap.NewNop())
	h := &Harness{
		Engine:   gin.New(),
		Base:     domain.NewBaseHandler(zap.NewNop(), manager),
		Sessions: manager,
	}

	if role != "" {
		h.Session = &session.Session{
			ID:          uuid.New(),
			Token:       "T1",
			Role:        role,
			Username:    "tester",
			DisplayName: "Test User",
			CreatedAt:   time.Now(),
			ExpiresAt:   time.Now().Add(time.Hour),
		}
		require.NoError(t, store.Save(context.Background(), h.Session))
	}

	h.Engine.Use(sessions.Sessions("hmhy_session", cookie.NewStore([]byte("test-secret"))))
	h.Engine.Use(func(c *gin.Context) {
		if h.Session != nil {
			c.Set(string(middleware.SessionContextKey), h.Session)
		}
		c.Next()
	})
	return h
}

// Do sends a request; a non-nil form is posted urlencoded.
func (h *Harness) Do(method, target string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	w := httptest.NewRecorder()
	h.Engine.ServeHTTP(w, req)
	return w
}

func Doc(t *testing.T, w *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(w.Body.String()))
	require.NoError(t, err)
	return doc
}

// Banner returns the text of the page banner, empty when there is none.
func Banner(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return strings.TrimSpace(Doc(t, w).Find("#banner").Text())
}
