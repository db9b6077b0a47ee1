package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *SessionStore {
	return NewSessionStore(2*time.Hour, 30*time.Minute, 5, 15*time.Minute)
}

func TestSessionBeginAndResolve(t *testing.T) {
	store := newTestStore()

	sess := store.Begin()
	assert.False(t, sess.Authenticated())

	resolved, ok := store.Resolve(sess.ID)
	require.True(t, ok)
	assert.Same(t, sess, resolved)

	_, ok = store.Resolve("no-such-session")
	assert.False(t, ok)
}

func TestSessionAbsoluteExpiry(t *testing.T) {
	store := newTestStore()

	sess := store.Begin()
	sess.CreatedAt = time.Now().Add(-3 * time.Hour)

	_, ok := store.Resolve(sess.ID)
	assert.False(t, ok)

	// expired sessions are gone, not just hidden
	_, ok = store.sessions[sess.ID]
	assert.False(t, ok)
}

func TestSweepReclaimsAbandonedSessions(t *testing.T) {
	// anonymous sessions whose cookie is discarded are never resolved
	// again; the sweep must reclaim them anyway
	store := NewSessionStore(time.Nanosecond, 30*time.Minute, 5, 15*time.Minute)

	for i := 0; i < 100; i++ {
		store.Begin()
	}
	require.Len(t, store.sessions, 100)

	store.lastSweep = time.Now().Add(-2 * sweepInterval)
	fresh := store.Begin()

	assert.Len(t, store.sessions, 1)
	_, ok := store.sessions[fresh.ID]
	assert.True(t, ok, "the session created by the sweeping Begin survives")
}

func TestSessionIDRotation(t *testing.T) {
	store := newTestStore()

	sess := store.Begin()
	store.Bind(sess, 1, true)
	oldID := sess.ID
	sess.RotatedAt = time.Now().Add(-time.Hour)

	resolved, ok := store.Resolve(oldID)
	require.True(t, ok)
	assert.NotEqual(t, oldID, resolved.ID)
	assert.True(t, resolved.Authenticated(), "identity survives rotation")

	_, ok = store.Resolve(oldID)
	assert.False(t, ok, "old id is unusable after rotation")

	_, ok = store.Resolve(resolved.ID)
	assert.True(t, ok)
}

func TestSessionLockoutAfterMaxFailures(t *testing.T) {
	store := newTestStore()
	sess := store.Begin()

	for i := 1; i < 5; i++ {
		remaining, lockedFor := store.Fail(sess)
		assert.Equal(t, 5-i, remaining)
		assert.Zero(t, lockedFor)
		assert.Zero(t, store.Locked(sess))
	}

	remaining, lockedFor := store.Fail(sess)
	assert.Zero(t, remaining)
	assert.Equal(t, 15*time.Minute, lockedFor)
	assert.Greater(t, store.Locked(sess), 14*time.Minute)
}

func TestBindClearsFailures(t *testing.T) {
	store := newTestStore()
	sess := store.Begin()

	for i := 0; i < 5; i++ {
		store.Fail(sess)
	}
	require.Positive(t, store.Locked(sess))

	store.Bind(sess, 42, true)
	assert.Zero(t, store.Locked(sess))
	assert.True(t, sess.Authenticated())
	assert.True(t, sess.IsAdmin)

	// failure counter restarts from zero
	remaining, _ := store.Fail(sess)
	assert.Equal(t, 4, remaining)
}

func TestDestroy(t *testing.T) {
	store := newTestStore()
	sess := store.Begin()
	store.Bind(sess, 1, true)

	store.Destroy(sess.ID)

	_, ok := store.Resolve(sess.ID)
	assert.False(t, ok)
}
