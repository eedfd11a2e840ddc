// Package redis backs the verification session store with Redis so the
// single-session-per-user invariant holds across console replicas.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/davitk/account-console/internal/model"
)

const sessionKeyPrefix = "account-console:verification:"

// SessionStore stores one JSON-encoded verification session per user with
// the session TTL as the key TTL.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a Redis-backed session store.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func sessionKey(userID string) string {
	return sessionKeyPrefix + userID
}

// Create stores a session for its user. SETNX enforces the one-session
// invariant atomically across replicas.
func (s *SessionStore) Create(ctx context.Context, session model.VerificationSession) error {
	encoded, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	ok, err := s.client.SetNX(ctx, sessionKey(session.UserID), encoded, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	if !ok {
		return model.ErrSessionInFlight
	}

	return nil
}

// GetByUserID returns the user's live session.
func (s *SessionStore) GetByUserID(ctx context.Context, userID string) (model.VerificationSession, error) {
	data, err := s.client.Get(ctx, sessionKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.VerificationSession{}, model.ErrSessionNotFound
	}
	if err != nil {
		return model.VerificationSession{}, fmt.Errorf("failed to get session: %w", err)
	}

	var session model.VerificationSession
	if err := json.Unmarshal(data, &session); err != nil {
		return model.VerificationSession{}, fmt.Errorf("failed to decode session: %w", err)
	}

	return session, nil
}

// Update replaces the stored session, keeping the remaining TTL.
func (s *SessionStore) Update(ctx context.Context, session model.VerificationSession) error {
	encoded, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	ok, err := s.client.SetXX(ctx, sessionKey(session.UserID), encoded, redis.KeepTTL).Result()
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if !ok {
		return model.ErrSessionNotFound
	}

	return nil
}

// Delete removes the user's session. Deleting an absent session is not an
// error.
func (s *SessionStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
