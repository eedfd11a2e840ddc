// Package memory holds verification sessions in process memory. This is
// the default store: sessions are ephemeral by design and do not need to
// survive a restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/davitk/account-console/internal/model"
)

// SessionStore keeps at most one verification session per user.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]model.VerificationSession
	now      func() time.Time
}

// NewSessionStore creates an empty in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]model.VerificationSession),
		now:      time.Now,
	}
}

// Create stores a session for its user. It fails with ErrSessionInFlight
// when a live session already exists for that user.
func (s *SessionStore) Create(_ context.Context, session model.VerificationSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.sessions[session.UserID]
	if ok && !existing.Expired(s.now()) {
		return model.ErrSessionInFlight
	}

	s.sessions[session.UserID] = session
	return nil
}

// GetByUserID returns the user's live session. Expired sessions are
// dropped and reported as not found.
func (s *SessionStore) GetByUserID(_ context.Context, userID string) (model.VerificationSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return model.VerificationSession{}, model.ErrSessionNotFound
	}
	if session.Expired(s.now()) {
		delete(s.sessions, userID)
		return model.VerificationSession{}, model.ErrSessionNotFound
	}

	return session, nil
}

// Update replaces the stored session for its user.
func (s *SessionStore) Update(_ context.Context, session model.VerificationSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.sessions[session.UserID]
	if !ok || existing.Expired(s.now()) {
		return model.ErrSessionNotFound
	}

	s.sessions[session.UserID] = session
	return nil
}

// Delete removes the user's session. Deleting an absent session is not an
// error.
func (s *SessionStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, userID)
	return nil
}
