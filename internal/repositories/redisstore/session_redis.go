package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/studyrelay/chat-relay-service/internal/models"
	"github.com/studyrelay/chat-relay-service/internal/repositories"
)

const sessionKeyPrefix = "session:"

// SessionRedis implements SessionRepository on redis. The key TTL equals the
// fixed session lifetime and is set once at creation, so redis expiry is the
// absolute expiry; Get never refreshes it.
type SessionRedis struct {
	client *redis.Client
}

func NewSessionRedis(client *redis.Client) repositories.SessionRepository {
	return &SessionRedis{client: client}
}

func (r *SessionRedis) Create(ctx context.Context, session *models.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired at creation")
	}

	if err := r.client.Set(ctx, sessionKey(session.Token), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (r *SessionRedis) Get(ctx context.Context, token string) (*models.Session, error) {
	payload, err := r.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

func (r *SessionRedis) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}
