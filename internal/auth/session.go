package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is server-side state for the admin panel, keyed by a random
// cookie-carried identifier. It also tracks consecutive failed login
// attempts, so the brute-force lockout is per browser session rather
// than per account.
type Session struct {
	ID          string
	UserID      uint
	IsAdmin     bool
	CreatedAt   time.Time
	RotatedAt   time.Time
	failures    int
	lockedUntil time.Time
}

func (s *Session) Authenticated() bool { return s.UserID != 0 }

// SessionStore keeps admin sessions in process memory. Sessions have a
// bounded absolute lifetime and their identifier is rotated after a
// fixed idle interval to limit fixation.
type SessionStore struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	lifetime    time.Duration
	rotateAfter time.Duration
	maxAttempts int
	lockout     time.Duration
	lastSweep   time.Time
}

// sweepInterval bounds how often Begin scans the whole map.
const sweepInterval = time.Minute

func NewSessionStore(lifetime, rotateAfter time.Duration, maxAttempts int, lockout time.Duration) *SessionStore {
	return &SessionStore{
		sessions:    make(map[string]*Session),
		lifetime:    lifetime,
		rotateAfter: rotateAfter,
		maxAttempts: maxAttempts,
		lockout:     lockout,
		lastSweep:   time.Now(),
	}
}

// Lifetime is the absolute session lifetime; the cookie carrying the
// session id uses it as Max-Age.
func (st *SessionStore) Lifetime() time.Duration { return st.lifetime }

// Begin creates a fresh anonymous session. A session exists before
// login succeeds so failed attempts can be counted against it.
func (st *SessionStore) Begin() *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := time.Now()
	st.sweep(now)

	sess := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		RotatedAt: now,
	}
	st.sessions[sess.ID] = sess
	return sess
}

// sweep drops sessions past their absolute lifetime. Expired sessions
// are otherwise only reclaimed when their id is presented again, which
// an abandoned anonymous session never is; running the sweep from
// Begin keeps the map bounded under cookie-less login traffic. The
// caller must hold st.mu.
func (st *SessionStore) sweep(now time.Time) {
	if now.Sub(st.lastSweep) < sweepInterval {
		return
	}
	st.lastSweep = now

	for id, sess := range st.sessions {
		if now.Sub(sess.CreatedAt) > st.lifetime {
			delete(st.sessions, id)
		}
	}
}

// Resolve looks up a session by id, expiring it when the absolute
// lifetime has passed and rotating the identifier when the idle
// interval has. The returned session's ID is authoritative; callers
// must re-set the cookie when it changed.
func (st *SessionStore) Resolve(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, ok := st.sessions[id]
	if !ok {
		return nil, false
	}

	now := time.Now()
	if now.Sub(sess.CreatedAt) > st.lifetime {
		delete(st.sessions, id)
		return nil, false
	}

	if now.Sub(sess.RotatedAt) > st.rotateAfter {
		delete(st.sessions, sess.ID)
		sess.ID = uuid.NewString()
		sess.RotatedAt = now
		st.sessions[sess.ID] = sess
	}

	return sess, true
}

// Locked reports how long the session remains locked out, zero when it
// is not.
func (st *SessionStore) Locked(sess *Session) time.Duration {
	st.mu.Lock()
	defer st.mu.Unlock()

	if remaining := time.Until(sess.lockedUntil); remaining > 0 {
		return remaining
	}
	return 0
}

// Fail records one failed login attempt. It returns the attempts left
// before lockout and, once the limit is hit, the lockout duration.
func (st *SessionStore) Fail(sess *Session) (remaining int, lockedFor time.Duration) {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess.failures++
	if sess.failures >= st.maxAttempts {
		sess.lockedUntil = time.Now().Add(st.lockout)
		return 0, st.lockout
	}
	return st.maxAttempts - sess.failures, 0
}

// Bind attaches a verified identity to the session and clears the
// failure count.
func (st *SessionStore) Bind(sess *Session, userID uint, isAdmin bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess.UserID = userID
	sess.IsAdmin = isAdmin
	sess.failures = 0
	sess.lockedUntil = time.Time{}
}

func (st *SessionStore) Destroy(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}
