package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
)

// cookieKey is the entry in the signed browser cookie that holds the session id.
const cookieKey = "sid"

// ErrNoSession means the browser has no live session.
var ErrNoSession = errors.New("no active session")

// Login is what a successful sign-in hands to Start.
type Login struct {
	Token       string
	Role        models.Role
	Username    string
	DisplayName string
	Cookies     []*http.Cookie
}

type Manager struct {
	store  Store
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

func NewManager(store Store, ttl time.Duration, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{store: store, ttl: ttl, logger: logger, now: time.Now}
}

func (m *Manager) Store() Store { return m.store }

// Ping checks the backing store when it lives on a remote server.
func (m *Manager) Ping(ctx context.Context) error {
	if p, ok := m.store.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Start replaces any previous session of the browser with a fresh one.
func (m *Manager) Start(c *gin.Context, login Login) (*Session, error) {
	if login.Token == "" {
		return nil, fmt.Errorf("start session: %w", models.ErrUnauthenticated)
	}
	if !login.Role.Valid() {
		return nil, fmt.Errorf("start session: %w: %q", models.ErrInvalidRole, login.Role)
	}

	if prev, err := m.Load(c); err == nil {
		if err := m.store.Delete(c.Request.Context(), prev.ID); err != nil {
			m.logger.Warn("Failed to drop previous session", zap.Error(err))
		}
	}

	now := m.now()
	s := &Session{
		ID:             uuid.New(),
		Token:          login.Token,
		Role:           login.Role,
		Username:       login.Username,
		DisplayName:    login.DisplayName,
		TokenExpiresAt: tokenExpiry(login.Token),
		CreatedAt:      now,
		ExpiresAt:      now.Add(m.ttl),
	}
	s.MergeCookies(login.Cookies)

	if err := m.store.Save(c.Request.Context(), s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	browser := sessions.Default(c)
	browser.Set(cookieKey, s.ID.String())
	if err := browser.Save(); err != nil {
		return nil, fmt.Errorf("write session cookie: %w", err)
	}

	m.logger.Info("Session started",
		zap.String("role", s.Role.String()),
		zap.String("username", s.Username))
	return s, nil
}

// Load returns the live session of the browser or ErrNoSession.
func (m *Manager) Load(c *gin.Context) (*Session, error) {
	raw, ok := sessions.Default(c).Get(cookieKey).(string)
	if !ok || raw == "" {
		return nil, ErrNoSession
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, ErrNoSession
	}

	s, err := m.store.Get(c.Request.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	if s.Expired(m.now()) {
		_ = m.store.Delete(c.Request.Context(), id)
		return nil, ErrNoSession
	}
	return s, nil
}

// Rotate stores a refreshed token. Backend cookies in the refresh response
// replace the captured ones.
func (m *Manager) Rotate(ctx context.Context, s *Session, token string, cookies []*http.Cookie) error {
	s.Token = token
	s.TokenExpiresAt = tokenExpiry(token)
	s.MergeCookies(cookies)
	return m.store.Save(ctx, s)
}

// Clear drops token and role and removes the stored session. The browser
// cookie stays until the next response that can clear it.
func (m *Manager) Clear(ctx context.Context, s *Session) error {
	s.Token = ""
	s.Role = ""
	if err := m.store.Delete(ctx, s.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// End tears down the browser's session and expires its cookie.
func (m *Manager) End(c *gin.Context) error {
	var storeErr error
	if s, err := m.Load(c); err == nil {
		storeErr = m.Clear(c.Request.Context(), s)
	}

	browser := sessions.Default(c)
	browser.Clear()
	browser.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := browser.Save(); err != nil {
		return errors.Join(storeErr, fmt.Errorf("clear session cookie: %w", err))
	}
	return storeErr
}

// Credentials binds s to the API client's token holder contract.
func (m *Manager) Credentials(s *Session) *Credentials {
	return &Credentials{manager: m, session: s}
}

// Credentials serialises token reads and writes for one request's view of a session.
type Credentials struct {
	mu      sync.Mutex
	manager *Manager
	session *Session
}

func (c *Credentials) Key() string { return c.session.ID.String() }

func (c *Credentials) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Token
}

func (c *Credentials) Cookies() []*http.Cookie {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Cookies()
}

func (c *Credentials) Rotate(ctx context.Context, token string, cookies []*http.Cookie) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.manager.Rotate(ctx, c.session, token, cookies)
}

func (c *Credentials) Revoke(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.manager.Clear(ctx, c.session)
}

// tokenExpiry reads exp from a JWT without verifying it. Opaque tokens yield zero.
func tokenExpiry(token string) time.Time {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
