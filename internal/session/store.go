package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/SpinHall_Go/internal/domain"
)

// Store persists sessions
type Store interface {
	Create(ctx context.Context, sess *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// MemoryStore keeps sessions in an expirable LRU. Suitable for a single
// instance; sessions are lost on restart.
type MemoryStore struct {
	mu    sync.Mutex
	cache *expirable.LRU[string, *domain.Session]
}

// NewMemoryStore creates a store holding at most size sessions, each
// evicted after ttl
func NewMemoryStore(size int, ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		cache: expirable.NewLRU[string, *domain.Session](size, nil, ttl),
	}
}

// Create stores a copy of sess
func (s *MemoryStore) Create(_ context.Context, sess *domain.Session) error {
	if sess == nil || sess.ID == "" {
		return fmt.Errorf("%w: session id is required", domain.ErrInvalidInput)
	}
	cp := *sess
	s.mu.Lock()
	s.cache.Add(cp.ID, &cp)
	s.mu.Unlock()
	return nil
}

// Get returns the session or domain.ErrSessionNotFound
func (s *MemoryStore) Get(_ context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	sess, ok := s.cache.Get(id)
	s.mu.Unlock()
	if !ok || sess.Expired(time.Now()) {
		return nil, domain.ErrSessionNotFound
	}
	cp := *sess
	return &cp, nil
}

// Delete removes a session; missing ids are ignored
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	s.cache.Remove(id)
	s.mu.Unlock()
	return nil
}

// PurgeExpired drops sessions whose ExpiresAt is before now
func (s *MemoryStore) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, id := range s.cache.Keys() {
		if sess, ok := s.cache.Peek(id); ok && sess.Expired(now) {
			s.cache.Remove(id)
			n++
		}
	}
	return n, nil
}
