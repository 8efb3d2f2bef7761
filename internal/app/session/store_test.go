package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
)

func sampleSession() *Session {
	now := time.Now()
	return &Session{
		ID:             uuid.New(),
		Token:          "T1",
		Role:           models.RoleAdmin,
		Username:       "root",
		DisplayName:    "Root Admin",
		BackendCookies: map[string]string{"refreshToken": "r-1"},
		CreatedAt:      now,
		ExpiresAt:      now.Add(time.Hour),
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	s := sampleSession()

	_, err := store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	require.NoError(t, store.Save(ctx, s))
	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.Token, got.Token)
	assert.Equal(t, s.BackendCookies, got.BackendCookies)

	got.BackendCookies["refreshToken"] = "mutated"
	again, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "r-1", again.BackendCookies["refreshToken"], "stored copy must not alias callers")

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	require.NoError(t, store.Delete(ctx, s.ID))
	_, err = store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestMemoryStore_ExpiredSaveDrops(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	s := sampleSession()
	require.NoError(t, store.Save(ctx, s))

	s.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, store.Save(ctx, s))

	_, err := store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestPostgresStore_Get(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresStore(mock)
	id := uuid.New()
	created := time.Now().Add(-time.Minute).UTC()
	expires := created.Add(time.Hour)
	tokenExp := created.Add(15 * time.Minute)

	mock.ExpectQuery(`SELECT token, role, username, display_name, backend_cookies, token_expires_at, created_at, expires_at FROM portal_sessions WHERE id = \$1 AND expires_at > NOW\(\)`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"token", "role", "username", "display_name", "backend_cookies", "token_expires_at", "created_at", "expires_at"}).
			AddRow("T1", "teacher", "ali@example.com", "Ali Valiyev", []byte(`{"refreshToken":"r-1"}`), &tokenExp, created, expires))

	s, err := store.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, s.ID)
	assert.Equal(t, models.RoleTeacher, s.Role)
	assert.Equal(t, "r-1", s.BackendCookies["refreshToken"])
	assert.Equal(t, tokenExp, s.TokenExpiresAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresStore(mock)
	id := uuid.New()
	mock.ExpectQuery(`SELECT .+ FROM portal_sessions`).WithArgs(id).WillReturnError(pgx.ErrNoRows)

	_, err = store.Get(context.Background(), id)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveUpserts(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresStore(mock)
	s := sampleSession()

	mock.ExpectExec(`INSERT INTO portal_sessions \(id,token,role,username,display_name,backend_cookies,token_expires_at,created_at,expires_at\) VALUES \(\$1,\$2,\$3,\$4,\$5,\$6,\$7,\$8,\$9\) ON CONFLICT \(id\) DO UPDATE SET`).
		WithArgs(s.ID, "T1", "admin", "root", "Root Admin", []byte(`{"refreshToken":"r-1"}`), pgxmock.AnyArg(), s.CreatedAt, s.ExpiresAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, store.Save(context.Background(), s))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_DeleteCountPurge(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresStore(mock)
	id := uuid.New()
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM portal_sessions WHERE id = \$1`).WithArgs(id).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM portal_sessions WHERE expires_at > NOW\(\)`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))
	mock.ExpectExec(`DELETE FROM portal_sessions WHERE expires_at <= NOW\(\)`).WillReturnResult(pgxmock.NewResult("DELETE", 4))

	require.NoError(t, store.Delete(ctx, id))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	purged, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, purged)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisKey(t *testing.T) {
	id := uuid.MustParse("6f1c2a53-8d0e-4a4b-9c1f-1f2e3d4c5b6a")
	key := redisKey(id)

	assert.Equal(t, redisKeyPrefix, key[:len(redisKeyPrefix)])
	assert.Len(t, key, len(redisKeyPrefix)+64)
	assert.NotContains(t, key, id.String())
	assert.Equal(t, key, redisKey(id))
}

func newMockRedisStore(t *testing.T) (*RedisStore, redismock.ClientMock, time.Time) {
	t.Helper()
	client, mock := redismock.NewClientMock()
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	store := NewRedisStore(client, time.Hour)
	store.now = func() time.Time { return now }
	t.Cleanup(func() { assert.NoError(t, mock.ExpectationsWereMet()) })
	return store, mock, now
}

func TestRedisStore_SaveUsesSessionExpiry(t *testing.T) {
	store, mock, now := newMockRedisStore(t)
	s := sampleSession()
	s.ExpiresAt = now.Add(30 * time.Minute)
	raw, err := json.Marshal(s)
	require.NoError(t, err)

	mock.ExpectSet(redisKey(s.ID), raw, 30*time.Minute).SetVal("OK")
	require.NoError(t, store.Save(context.Background(), s))
}

func TestRedisStore_SaveWithoutExpiryUsesTTL(t *testing.T) {
	store, mock, _ := newMockRedisStore(t)
	s := sampleSession()
	s.ExpiresAt = time.Time{}
	raw, err := json.Marshal(s)
	require.NoError(t, err)

	mock.ExpectSet(redisKey(s.ID), raw, time.Hour).SetVal("OK")
	require.NoError(t, store.Save(context.Background(), s))
}

func TestRedisStore_ExpiredSaveDeletes(t *testing.T) {
	store, mock, now := newMockRedisStore(t)
	s := sampleSession()
	s.ExpiresAt = now.Add(-time.Second)

	mock.ExpectDel(redisKey(s.ID)).SetVal(1)
	require.NoError(t, store.Save(context.Background(), s))
}

func TestRedisStore_Get(t *testing.T) {
	store, mock, _ := newMockRedisStore(t)
	ctx := context.Background()
	s := sampleSession()
	raw, err := json.Marshal(s)
	require.NoError(t, err)

	mock.ExpectGet(redisKey(s.ID)).SetVal(string(raw))
	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.Token, got.Token)
	assert.Equal(t, s.Role, got.Role)
	assert.Equal(t, s.BackendCookies, got.BackendCookies)

	mock.ExpectGet(redisKey(s.ID)).RedisNil()
	_, err = store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	mock.ExpectGet(redisKey(s.ID)).SetErr(errors.New("connection reset"))
	_, err = store.Get(ctx, s.ID)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrNotFound)
}

func TestRedisStore_DeleteAndPing(t *testing.T) {
	store, mock, _ := newMockRedisStore(t)
	ctx := context.Background()
	id := uuid.New()

	mock.ExpectDel(redisKey(id)).SetErr(errors.New("readonly replica"))
	assert.Error(t, store.Delete(ctx, id))

	mock.ExpectPing().SetVal("PONG")
	assert.NoError(t, store.Ping(ctx))
}

func TestSession_MergeCookies(t *testing.T) {
	s := &Session{}
	s.MergeCookies([]*http.Cookie{{Name: "refreshToken", Value: "a"}, {Name: "other", Value: "b"}})
	assert.Equal(t, map[string]string{"refreshToken": "a", "other": "b"}, s.BackendCookies)

	s.MergeCookies([]*http.Cookie{{Name: "other", MaxAge: -1}, {Name: "refreshToken", Value: "c"}})
	assert.Equal(t, map[string]string{"refreshToken": "c"}, s.BackendCookies)
	assert.Len(t, s.Cookies(), 1)
}
