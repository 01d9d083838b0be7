package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"aula-quiz-client/internal/domain"
)

func newClient(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestSessionStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(newClient(t))

	if _, err := store.Get(ctx); err != domain.ErrNotAuthenticated {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}

	creds := domain.Credentials{Token: "tok-1", User: domain.User{ID: 9, Username: "alice", Role: "user"}}
	if err := store.Set(ctx, creds); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Token != "tok-1" || got.User.ID != 9 {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := store.Get(ctx); err != domain.ErrNotAuthenticated {
		t.Fatalf("expected cleared credentials, got %v", err)
	}
}

func TestCountdownStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewCountdownStore(newClient(t), time.Hour)

	if _, err := store.Remaining(ctx, 9, 5); err != domain.ErrNoCountdown {
		t.Fatalf("expected ErrNoCountdown, got %v", err)
	}

	if err := store.Save(ctx, 9, 5, 117); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(ctx, 9, 6, 300); err != nil {
		t.Fatalf("save: %v", err)
	}

	if v, err := store.Remaining(ctx, 9, 5); err != nil || v != 117 {
		t.Fatalf("expected 117, got %d (%v)", v, err)
	}

	if err := store.Clear(ctx, 9, 5); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := store.Remaining(ctx, 9, 5); err != domain.ErrNoCountdown {
		t.Fatalf("expected countdown removed, got %v", err)
	}
	if v, _ := store.Remaining(ctx, 9, 6); v != 300 {
		t.Fatalf("other section's countdown must survive, got %d", v)
	}
}

func TestCountdownKeysAreScoped(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewCountdownStore(client, time.Hour)

	if err := store.Save(ctx, 9, 5, 60); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !mr.Exists("aula:countdown:9:5") {
		t.Fatalf("expected structured countdown key")
	}
}
