package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
)

// MemoryStore keeps sessions in process. Sessions are lost on restart.
type MemoryStore struct {
	cache *cache.Cache
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: cache.New(ttl, 10*time.Minute)}
}

func (m *MemoryStore) Get(_ context.Context, id uuid.UUID) (*Session, error) {
	v, found := m.cache.Get(id.String())
	if !found {
		return nil, models.ErrNotFound
	}
	return v.(*Session).clone(), nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	ttl := cache.DefaultExpiration
	if !s.ExpiresAt.IsZero() {
		ttl = time.Until(s.ExpiresAt)
		if ttl <= 0 {
			m.cache.Delete(s.ID.String())
			return nil
		}
	}
	m.cache.Set(s.ID.String(), s.clone(), ttl)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	m.cache.Delete(id.String())
	return nil
}

func (m *MemoryStore) Count(context.Context) (int64, error) {
	return int64(m.cache.ItemCount()), nil
}
