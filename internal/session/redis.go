// internal/session/redis.go
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tbocloud/ai-inventory-sub000/internal/config"
	"github.com/tbocloud/ai-inventory-sub000/internal/domain"
)

const (
	sessionKeyPrefix = "po:session:"
	markerKeyPrefix  = "po:session:done:"

	// Consumed/cancelled markers outlive the session TTL so a late retry
	// still gets a precise rejection instead of "not found".
	markerTTL = 24 * time.Hour
)

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func newRedisStore(cfg config.SessionConfig, ttl time.Duration) (*redisStore, error) {
	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &redisStore{client: client, ttl: ttl}, nil
}

func buildRedisOptions(cfg config.SessionConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
	}

	host := cfg.RedisHost
	if host == "" {
		host = "127.0.0.1"
	}

	port := cfg.RedisPort
	if port == "" {
		port = "6379"
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

func (r *redisStore) Put(ctx context.Context, s *domain.PreviewSession) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode preview session: %w", err)
	}

	if err := r.client.Set(ctx, sessionKeyPrefix+s.Token, payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (r *redisStore) Get(ctx context.Context, token string) (*domain.PreviewSession, error) {
	payload, err := r.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err == redis.Nil {
		return nil, r.missing(ctx, token)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	return decodeSession(payload)
}

// Consume relies on GETDEL for atomicity: exactly one caller receives the
// live session, everyone after that sees the marker.
func (r *redisStore) Consume(ctx context.Context, token string) (*domain.PreviewSession, error) {
	payload, err := r.client.GetDel(ctx, sessionKeyPrefix+token).Bytes()
	if err == redis.Nil {
		return nil, r.missing(ctx, token)
	}
	if err != nil {
		return nil, fmt.Errorf("redis getdel failed: %w", err)
	}

	if err := r.client.Set(ctx, markerKeyPrefix+token, string(domain.SessionCommitted), markerTTL).Err(); err != nil {
		return nil, fmt.Errorf("redis set consumed marker failed: %w", err)
	}

	return decodeSession(payload)
}

func (r *redisStore) Cancel(ctx context.Context, token string) error {
	deleted, err := r.client.Del(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	if deleted == 0 {
		return r.missing(ctx, token)
	}

	if err := r.client.Set(ctx, markerKeyPrefix+token, string(domain.SessionCancelled), markerTTL).Err(); err != nil {
		return fmt.Errorf("redis set cancelled marker failed: %w", err)
	}

	return nil
}

// missing maps an absent live key to the precise rejection: consumed,
// cancelled, or unknown/expired.
func (r *redisStore) missing(ctx context.Context, token string) error {
	state, err := r.client.Get(ctx, markerKeyPrefix+token).Result()
	if err == redis.Nil {
		return domain.ErrSessionNotFound
	}
	if err != nil {
		return fmt.Errorf("redis get marker failed: %w", err)
	}

	if state == string(domain.SessionCommitted) {
		return domain.ErrSessionConsumed
	}

	return domain.ErrSessionNotFound
}

func decodeSession(payload []byte) (*domain.PreviewSession, error) {
	var s domain.PreviewSession
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("decode preview session: %w", err)
	}

	return &s, nil
}
