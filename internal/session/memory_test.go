package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tbocloud/ai-inventory-sub000/internal/domain"
)

func newSession(token string) *domain.PreviewSession {
	return &domain.PreviewSession{
		Token:     token,
		State:     domain.SessionPreviewed,
		Company:   "Acme",
		CreatedAt: time.Now(),
	}
}

func TestMemoryStore_PutGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	if err := store.Put(ctx, newSession("tok-1")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get(ctx, "tok-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Company != "Acme" {
		t.Errorf("company = %q, want Acme", got.Company)
	}
	if got.ExpiresAt.IsZero() {
		t.Error("ExpiresAt not set on Put")
	}
}

func TestMemoryStore_ConsumeOnce(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	if err := store.Put(ctx, newSession("tok-1")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if _, err := store.Consume(ctx, "tok-1"); err != nil {
		t.Fatalf("first Consume failed: %v", err)
	}

	if _, err := store.Consume(ctx, "tok-1"); !errors.Is(err, domain.ErrSessionConsumed) {
		t.Errorf("second Consume error = %v, want ErrSessionConsumed", err)
	}

	if _, err := store.Get(ctx, "tok-1"); !errors.Is(err, domain.ErrSessionConsumed) {
		t.Errorf("Get after Consume error = %v, want ErrSessionConsumed", err)
	}
}

func TestMemoryStore_UnknownToken(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	if _, err := store.Consume(ctx, "nope"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("Consume error = %v, want ErrSessionNotFound", err)
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	now := time.Now()
	store.now = func() time.Time { return now }

	if err := store.Put(ctx, newSession("tok-1")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	store.now = func() time.Time { return now.Add(2 * time.Minute) }

	if _, err := store.Consume(ctx, "tok-1"); !errors.Is(err, domain.ErrSessionExpired) {
		t.Errorf("Consume after TTL error = %v, want ErrSessionExpired", err)
	}
}

func TestMemoryStore_Cancel(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	if err := store.Put(ctx, newSession("tok-1")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Cancel(ctx, "tok-1"); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}

	if _, err := store.Consume(ctx, "tok-1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("Consume after Cancel error = %v, want ErrSessionNotFound", err)
	}
}
