package session

import (
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned by Rotate when no session exists for the
// presented token.
var ErrNotFound = errors.New("session not found")

// ErrRefreshMismatch is returned by Rotate when the presented refresh
// token does not match the stored one. The original session is left
// untouched.
var ErrRefreshMismatch = errors.New("refresh token mismatch")

// ErrTokenExhausted is returned when token generation failed to find a
// non-colliding value within the configured attempt bound. With an
// 80-character token space this indicates a broken random source, not
// load.
var ErrTokenExhausted = errors.New("token generation attempts exhausted")

const (
	// DefaultTTL is the fixed session lifetime applied when Config.TTL
	// is zero.
	DefaultTTL = time.Hour

	// DefaultMaxTokenAttempts bounds the collision-retry loop during
	// token generation.
	DefaultMaxTokenAttempts = 16
)

// Config controls store behavior. The zero value is usable: a 1 hour TTL,
// 16 generation attempts, the package token generator, and the wall
// clock.
type Config struct {
	// TTL is the fixed lifetime of every session from issuance.
	TTL time.Duration

	// MaxTokenAttempts bounds collision retries per token.
	MaxTokenAttempts int

	// Generate overrides the token source. Tests inject deterministic
	// generators here.
	Generate func() (string, error)

	// Now overrides the clock.
	Now func() time.Time
}

// Store is the authoritative in-memory mapping of live sessions. One
// mutex serializes every operation; no lock is ever held across calls
// outside this package.
type Store struct {
	mu sync.RWMutex

	ttl         time.Duration
	maxAttempts int
	generate    func() (string, error)
	now         func() time.Time

	// sessions is keyed by session token. refresh indexes live refresh
	// tokens back to their session token so generation can collision-check
	// both namespaces, and rotation can drop the old pair in one step.
	sessions map[string]Session
	refresh  map[string]string
}

// NewStore creates an empty store.
func NewStore(cfg Config) *Store {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.MaxTokenAttempts <= 0 {
		cfg.MaxTokenAttempts = DefaultMaxTokenAttempts
	}
	if cfg.Generate == nil {
		cfg.Generate = GenerateToken
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Store{
		ttl:         cfg.TTL,
		maxAttempts: cfg.MaxTokenAttempts,
		generate:    cfg.Generate,
		now:         cfg.Now,
		sessions:    make(map[string]Session),
		refresh:     make(map[string]string),
	}
}

// TTL returns the fixed session lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Create mints a new session for the given identity with a frozen copy of
// roles and ExpiresAt = now + TTL. Both tokens are retried on collision
// against all live session and refresh tokens. The only failure mode is
// ErrTokenExhausted.
func (s *Store) Create(id Identity, roles []string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.createLocked(id, roles)
}

// Get returns the session for token, expired or not. The second return
// is false when the token is unknown.
func (s *Store) Get(token string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[token]
	return sess, ok
}

// Remove deletes the session for token. Removing an absent token is a
// no-op.
func (s *Store) Remove(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(token)
}

// Rotate exchanges an old session for a new one when presentedRefresh
// matches the stored refresh token exactly. The lookup, comparison,
// removal, and insertion form one critical section, so two refreshes
// racing on the same pair produce exactly one surviving session.
//
// The new session carries the old session's identity and role snapshot
// unchanged, with a fresh token pair and expiry. Rotation extends a
// session, it does not re-authorize it.
func (s *Store) Rotate(oldToken, presentedRefresh string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.sessions[oldToken]
	if !ok {
		return Session{}, ErrNotFound
	}
	if old.RefreshToken != presentedRefresh {
		return Session{}, ErrRefreshMismatch
	}

	s.removeLocked(oldToken)

	return s.createLocked(old.Identity, old.Roles)
}

// Sweep removes every session whose expiry is at or before now and
// returns how many were dropped.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, sess := range s.sessions {
		if sess.Expired(now) {
			s.removeLocked(token)
			removed++
		}
	}
	return removed
}

// Len reports the number of live sessions, expired ones included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

func (s *Store) createLocked(id Identity, roles []string) (Session, error) {
	token, err := s.mintLocked()
	if err != nil {
		return Session{}, err
	}

	// Reserve the session token before minting the refresh token so the
	// two cannot collide with each other.
	s.sessions[token] = Session{Token: token}

	refreshToken, err := s.mintLocked()
	if err != nil {
		delete(s.sessions, token)
		return Session{}, err
	}

	now := s.now()
	sess := Session{
		Token:        token,
		RefreshToken: refreshToken,
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.ttl),
		Roles:        cloneRoles(roles),
		Identity:     id,
	}

	s.sessions[token] = sess
	s.refresh[refreshToken] = token

	return sess, nil
}

// mintLocked generates a token absent from both live namespaces, giving
// up after maxAttempts rather than recursing unboundedly.
func (s *Store) mintLocked() (string, error) {
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		token, err := s.generate()
		if err != nil {
			return "", err
		}

		if _, taken := s.sessions[token]; taken {
			continue
		}
		if _, taken := s.refresh[token]; taken {
			continue
		}

		return token, nil
	}

	return "", ErrTokenExhausted
}

func (s *Store) removeLocked(token string) {
	sess, ok := s.sessions[token]
	if !ok {
		return
	}

	delete(s.sessions, token)
	delete(s.refresh, sess.RefreshToken)
}
