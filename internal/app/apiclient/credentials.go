package apiclient

import (
	"context"
	"net/http"
)

// Credentials is the per-session token holder the client reads and updates.
// Implementations must make Rotate and Revoke safe to call more than once.
type Credentials interface {
	// Key identifies the session; concurrent refreshes for one key are coalesced.
	Key() string
	Token() string
	// Cookies are backend cookies captured at login, replayed on refresh.
	Cookies() []*http.Cookie
	Rotate(ctx context.Context, token string, cookies []*http.Cookie) error
	Revoke(ctx context.Context) error
}
