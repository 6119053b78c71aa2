package redisstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/studyrelay/chat-relay-service/internal/models"
	"github.com/studyrelay/chat-relay-service/internal/repositories"
)

func newTestStore(t *testing.T) (*miniredis.Miniredis, repositories.SessionRepository) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return mr, NewSessionRedis(client)
}

func testSession(token string, lifetime time.Duration) *models.Session {
	now := time.Now()
	return &models.Session{
		Token:       token,
		UserID:      1,
		StudentID:   "student01",
		Fingerprint: "fp-abc",
		CreatedAt:   now,
		ExpiresAt:   now.Add(lifetime),
	}
}

func TestSessionRedis_CreateAndGet(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()

	session := testSession("tok-1", time.Hour)
	if err := store.Create(ctx, session); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.Get(ctx, "tok-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.UserID != session.UserID || got.Fingerprint != session.Fingerprint {
		t.Errorf("stored session mismatch: got %+v", got)
	}
}

func TestSessionRedis_GetUnknownToken(t *testing.T) {
	_, store := newTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionRedis_ExpiryIsAbsolute(t *testing.T) {
	mr, store := newTestStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, testSession("tok-exp", time.Hour)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Reads must not refresh the TTL.
	if _, err := store.Get(ctx, "tok-exp"); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	mr.FastForward(time.Hour + time.Minute)

	_, err := store.Get(ctx, "tok-exp")
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("expected expired session to be gone, got %v", err)
	}
}

func TestSessionRedis_Delete(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, testSession("tok-del", time.Hour)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := store.Delete(ctx, "tok-del"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, err := store.Get(ctx, "tok-del")
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
