package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
)

const sessionsTable = "portal_sessions"

// DBTX is the subset of pgxpool.Pool the store needs.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore keeps sessions in the portal_sessions table.
type PostgresStore struct {
	db  DBTX
	psq sq.StatementBuilderType
}

func NewPostgresStore(db DBTX) *PostgresStore {
	return &PostgresStore{
		db:  db,
		psq: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (p *PostgresStore) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	query, args, err := p.psq.
		Select("token", "role", "username", "display_name", "backend_cookies", "token_expires_at", "created_at", "expires_at").
		From(sessionsTable).
		Where(sq.Eq{"id": id}).
		Where("expires_at > NOW()").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build session query: %w", err)
	}

	s := &Session{ID: id}
	var (
		role           string
		cookies        []byte
		tokenExpiresAt *time.Time
	)
	err = p.db.QueryRow(ctx, query, args...).Scan(
		&s.Token, &role, &s.Username, &s.DisplayName, &cookies, &tokenExpiresAt, &s.CreatedAt, &s.ExpiresAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	s.Role = models.Role(role)
	if len(cookies) > 0 {
		if err := json.Unmarshal(cookies, &s.BackendCookies); err != nil {
			return nil, fmt.Errorf("decode backend cookies: %w", err)
		}
	}
	if tokenExpiresAt != nil {
		s.TokenExpiresAt = *tokenExpiresAt
	}
	return s, nil
}

func (p *PostgresStore) Save(ctx context.Context, s *Session) error {
	cookies := s.BackendCookies
	if cookies == nil {
		cookies = map[string]string{}
	}
	rawCookies, err := json.Marshal(cookies)
	if err != nil {
		return fmt.Errorf("encode backend cookies: %w", err)
	}

	var tokenExpiresAt *time.Time
	if !s.TokenExpiresAt.IsZero() {
		tokenExpiresAt = &s.TokenExpiresAt
	}

	query, args, err := p.psq.
		Insert(sessionsTable).
		Columns("id", "token", "role", "username", "display_name", "backend_cookies", "token_expires_at", "created_at", "expires_at").
		Values(s.ID, s.Token, string(s.Role), s.Username, s.DisplayName, rawCookies, tokenExpiresAt, s.CreatedAt, s.ExpiresAt).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			token = EXCLUDED.token,
			role = EXCLUDED.role,
			username = EXCLUDED.username,
			display_name = EXCLUDED.display_name,
			backend_cookies = EXCLUDED.backend_cookies,
			token_expires_at = EXCLUDED.token_expires_at,
			expires_at = EXCLUDED.expires_at,
			updated_at = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build session upsert: %w", err)
	}

	if _, err := p.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (p *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := p.psq.Delete(sessionsTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build session delete: %w", err)
	}
	if _, err := p.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (p *PostgresStore) Count(ctx context.Context) (int64, error) {
	query, args, err := p.psq.Select("COUNT(*)").From(sessionsTable).Where("expires_at > NOW()").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build session count: %w", err)
	}
	var n int64
	if err := p.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}

func (p *PostgresStore) PurgeExpired(ctx context.Context) (int64, error) {
	query, args, err := p.psq.Delete(sessionsTable).Where("expires_at <= NOW()").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build session purge: %w", err)
	}
	tag, err := p.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
