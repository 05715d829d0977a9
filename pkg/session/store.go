// Package session provides the in-memory session token store backing the
// authentication layer. Tokens are opaque and carry no identity beyond
// "authenticated"; state is lost on restart by design.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

// Session records the lifetime of one issued token.
type Session struct {
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Store owns the token map. All access is serialized through its mutex;
// expired entries are purged lazily on lookup, there is no background sweep.
type Store struct {
	mu       sync.Mutex
	sessions map[string]Session
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates a store issuing tokens valid for ttl.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{
		sessions: make(map[string]Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// SetClock overrides the time source. Intended for tests.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Create generates a new session token with 256 bits of entropy and
// registers it. Collision probability is negligible and not checked.
func (s *Store) Create() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	token := hex.EncodeToString(buf)

	s.mu.Lock()
	defer s.mu.Unlock()
	created := s.now()
	s.sessions[token] = Session{
		Token:     token,
		CreatedAt: created,
		ExpiresAt: created.Add(s.ttl),
	}
	return token, nil
}

// Validate reports whether token names a live session. Expired entries are
// removed under the same lock as the expiry check, so a token is never
// reported valid after its deadline.
func (s *Store) Validate(token string) bool {
	if token == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return false
	}
	if s.now().After(sess.ExpiresAt) {
		delete(s.sessions, token)
		return false
	}
	return true
}

// Revoke removes a session. Revoking an unknown token is a no-op.
func (s *Store) Revoke(token string) {
	if token == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// Count returns the number of stored sessions, expired entries included
// until their next lookup. Used for the active-sessions gauge.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// TTL returns the configured session lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}
