// internal/session/memory.go
package session

import (
	"context"
	"sync"
	"time"

	"github.com/tbocloud/ai-inventory-sub000/internal/domain"
)

// MemoryStore keeps sessions in process memory. Used in tests and when no
// redis is configured; consume-once still holds under concurrent commits
// against the same token.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*domain.PreviewSession
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]*domain.PreviewSession),
		now:      time.Now,
	}
}

func (m *MemoryStore) Put(ctx context.Context, s *domain.PreviewSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *s
	if copied.ExpiresAt.IsZero() {
		copied.ExpiresAt = m.now().Add(m.ttl)
	}
	m.sessions[copied.Token] = &copied

	return nil
}

func (m *MemoryStore) Get(ctx context.Context, token string) (*domain.PreviewSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.live(token)
	if err != nil {
		return nil, err
	}

	copied := *s

	return &copied, nil
}

func (m *MemoryStore) Consume(ctx context.Context, token string) (*domain.PreviewSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.live(token)
	if err != nil {
		return nil, err
	}

	copied := *s

	// Leave a consumed marker so a replayed commit is distinguishable
	// from an unknown token.
	s.State = domain.SessionCommitted
	s.Groups = nil

	return &copied, nil
}

func (m *MemoryStore) Cancel(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.live(token)
	if err != nil {
		return err
	}

	s.State = domain.SessionCancelled
	s.Groups = nil

	return nil
}

// live resolves a token to its previewed session, mapping terminal and
// expired states to the session error taxonomy. Caller holds the lock.
func (m *MemoryStore) live(token string) (*domain.PreviewSession, error) {
	s, ok := m.sessions[token]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	switch s.State {
	case domain.SessionCommitted:
		return nil, domain.ErrSessionConsumed
	case domain.SessionCancelled, domain.SessionExpired:
		return nil, domain.ErrSessionNotFound
	}

	if m.now().After(s.ExpiresAt) {
		s.State = domain.SessionExpired
		s.Groups = nil
		return nil, domain.ErrSessionExpired
	}

	return s, nil
}
