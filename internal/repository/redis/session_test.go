package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davitk/account-console/internal/model"
)

func newTestStore(t *testing.T, ttl time.Duration) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewSessionStore(client, ttl), mr
}

func newTestSession(userID string) model.VerificationSession {
	return model.VerificationSession{
		ID:        "session-1",
		UserID:    userID,
		Operation: model.OperationEnrollTotp,
		Step:      model.StepAwaitingPassword,
		ExpiresAt: time.Now().Add(10 * time.Minute).UTC(),
	}
}

func TestSessionStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, 10*time.Minute)

	session := newTestSession("user-1")
	require.NoError(t, store.Create(ctx, session))

	got, err := store.GetByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, session.Operation, got.Operation)
	assert.Equal(t, session.Step, got.Step)
}

func TestSessionStore_Get_NotFound(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, 10*time.Minute)

	_, err := store.GetByUserID(ctx, "user-1")
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
}

func TestSessionStore_Create_InFlight(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, 10*time.Minute)

	require.NoError(t, store.Create(ctx, newTestSession("user-1")))

	err := store.Create(ctx, newTestSession("user-1"))
	assert.ErrorIs(t, err, model.ErrSessionInFlight)
}

func TestSessionStore_Update(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, 10*time.Minute)

	session := newTestSession("user-1")
	require.NoError(t, store.Create(ctx, session))

	session.Step = model.StepAwaitingSecondaryProof
	session.TotpSecret = "ABC123"
	require.NoError(t, store.Update(ctx, session))

	got, err := store.GetByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, model.StepAwaitingSecondaryProof, got.Step)
	assert.Equal(t, "ABC123", got.TotpSecret)
}

func TestSessionStore_Update_KeepsTTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, 10*time.Minute)

	session := newTestSession("user-1")
	require.NoError(t, store.Create(ctx, session))

	mr.FastForward(5 * time.Minute)

	session.Step = model.StepAwaitingSecondaryProof
	require.NoError(t, store.Update(ctx, session))

	// Updating must not reset the window: 6 more minutes pass the
	// original deadline.
	mr.FastForward(6 * time.Minute)

	_, err := store.GetByUserID(ctx, "user-1")
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
}

func TestSessionStore_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, 10*time.Minute)

	err := store.Update(ctx, newTestSession("user-1"))
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
}

func TestSessionStore_Delete(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, 10*time.Minute)

	require.NoError(t, store.Create(ctx, newTestSession("user-1")))
	require.NoError(t, store.Delete(ctx, "user-1"))

	_, err := store.GetByUserID(ctx, "user-1")
	assert.ErrorIs(t, err, model.ErrSessionNotFound)

	require.NoError(t, store.Delete(ctx, "user-1"))
}

func TestSessionStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, time.Minute)

	require.NoError(t, store.Create(ctx, newTestSession("user-1")))

	mr.FastForward(2 * time.Minute)

	_, err := store.GetByUserID(ctx, "user-1")
	assert.ErrorIs(t, err, model.ErrSessionNotFound)

	// The expired key no longer blocks a new session.
	require.NoError(t, store.Create(ctx, newTestSession("user-1")))
}
