package application

import (
	"sync"
	"time"

	"github.com/avelezco/redbag-claimer/internal/domain"
	"github.com/avelezco/redbag-claimer/internal/ports"
)

// DefaultCooldown is how long an account is skipped after a failed
// login before it becomes eligible again.
const DefaultCooldown = time.Minute

// SessionStore owns the mutable session state of every account in the
// pool. All mutations happen under one mutex so concurrent claim
// flows observe each read-modify-write as a single step.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[domain.AccountID]*domain.Session
	clock    ports.Clock
	cooldown time.Duration
}

func NewSessionStore(pool domain.Pool, clock ports.Clock, cooldown time.Duration) *SessionStore {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}

	sessions := make(map[domain.AccountID]*domain.Session, len(pool.Members))
	for _, member := range pool.Members {
		sessions[member.ID] = &domain.Session{}
	}

	return &SessionStore{sessions: sessions, clock: clock, cooldown: cooldown}
}

// Get returns a snapshot of the account's session. The credentials
// pointer is shared but credentials are never mutated once issued.
func (s *SessionStore) Get(id domain.AccountID) domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return domain.Session{}
	}
	return *session
}

// BeginAuth reserves the account for a login attempt. It returns
// false when another login is already in flight, in which case the
// caller must back off instead of issuing a second concurrent login.
func (s *SessionStore) BeginAuth(id domain.AccountID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok || session.AuthPending {
		return false
	}

	session.AuthPending = true
	return true
}

// CompleteAuth releases the reservation taken by BeginAuth and
// records the login result. A failed login clears any token and
// starts the cooldown window.
func (s *SessionStore) CompleteAuth(id domain.AccountID, creds domain.Credentials, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return
	}

	session.AuthPending = false
	if err != nil {
		session.Credentials = nil
		session.LastAttemptFailed = true
		session.LastAttemptAt = s.clock.Now()
		return
	}

	session.Credentials = &creds
	session.LastAttemptFailed = false
}

// Invalidate drops the cached token only, used when the remote
// endpoint stops accepting it. Cooldown state is untouched so the
// account can re-authenticate immediately.
func (s *SessionStore) Invalidate(id domain.AccountID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[id]; ok {
		session.Credentials = nil
	}
}

// InCooldown reports whether the account failed a login less than one
// cooldown window ago.
func (s *SessionStore) InCooldown(id domain.AccountID) bool {
	return s.CooldownRemaining(id) > 0
}

// CooldownRemaining returns how long the account stays skipped, zero
// when it is eligible.
func (s *SessionStore) CooldownRemaining(id domain.AccountID) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok || !session.LastAttemptFailed {
		return 0
	}

	remaining := s.cooldown - s.clock.Now().Sub(session.LastAttemptAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}
