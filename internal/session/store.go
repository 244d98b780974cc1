// internal/session/store.go
package session

import (
	"context"
	"time"

	"github.com/tbocloud/ai-inventory-sub000/internal/config"
	"github.com/tbocloud/ai-inventory-sub000/internal/domain"
)

const defaultTTL = 15 * time.Minute

// Store owns PreviewSession lifecycle between preview and commit. A session
// is consumed at most once; sessions not consumed within the TTL expire.
type Store interface {
	// Put stores a freshly previewed session under its token.
	Put(ctx context.Context, s *domain.PreviewSession) error

	// Get returns the live session for a token without consuming it.
	Get(ctx context.Context, token string) (*domain.PreviewSession, error)

	// Consume atomically takes the live session out of the store, leaving
	// a committed marker behind. A second Consume of the same token
	// returns domain.ErrSessionConsumed; an unknown or expired token
	// returns domain.ErrSessionNotFound / domain.ErrSessionExpired.
	Consume(ctx context.Context, token string) (*domain.PreviewSession, error)

	// Cancel marks a previewed session cancelled; terminal.
	Cancel(ctx context.Context, token string) error
}

// New returns a redis-backed store when enabled, otherwise an in-process
// store. Both enforce the same consume-once and expiry semantics.
func New(cfg config.SessionConfig) (Store, error) {
	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultTTL
	}

	if !cfg.RedisEnabled {
		return NewMemoryStore(ttl), nil
	}

	return newRedisStore(cfg, ttl)
}
