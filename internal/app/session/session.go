// Package session keeps the backend bearer token and role of each browser
// session on the server side. The browser only holds an opaque session id.
package session

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
)

type Session struct {
	ID             uuid.UUID         `json:"id"`
	Token          string            `json:"token"`
	Role           models.Role       `json:"role"`
	Username       string            `json:"username"`
	DisplayName    string            `json:"displayName"`
	BackendCookies map[string]string `json:"backendCookies,omitempty"`
	TokenExpiresAt time.Time         `json:"tokenExpiresAt,omitzero"`
	CreatedAt      time.Time         `json:"createdAt"`
	ExpiresAt      time.Time         `json:"expiresAt"`
}

// Authenticated reports whether the session carries both a token and a known role.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != "" && s.Role.Valid()
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

func (s *Session) Cookies() []*http.Cookie {
	if len(s.BackendCookies) == 0 {
		return nil
	}
	out := make([]*http.Cookie, 0, len(s.BackendCookies))
	for name, value := range s.BackendCookies {
		out = append(out, &http.Cookie{Name: name, Value: value})
	}
	return out
}

// MergeCookies records backend cookies; an empty value clears the entry.
func (s *Session) MergeCookies(cookies []*http.Cookie) {
	for _, ck := range cookies {
		if ck == nil || ck.Name == "" {
			continue
		}
		if ck.Value == "" || ck.MaxAge < 0 {
			delete(s.BackendCookies, ck.Name)
			continue
		}
		if s.BackendCookies == nil {
			s.BackendCookies = make(map[string]string)
		}
		s.BackendCookies[ck.Name] = ck.Value
	}
}

func (s *Session) clone() *Session {
	cp := *s
	if s.BackendCookies != nil {
		cp.BackendCookies = make(map[string]string, len(s.BackendCookies))
		for k, v := range s.BackendCookies {
			cp.BackendCookies[k] = v
		}
	}
	return &cp
}

// Store persists sessions. Get returns models.ErrNotFound for unknown or
// expired ids.
type Store interface {
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Counter is implemented by stores that can report how many sessions they hold.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// Purger is implemented by stores that need expired rows removed explicitly.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Pinger is implemented by stores backed by a remote server.
type Pinger interface {
	Ping(ctx context.Context) error
}
