// Package directory provides an in-memory UserDirectory for embedding,
// demos, and tests. Production integrators back the root-package
// interface with their own user database instead.
package directory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	authcore "github.com/hexauth/authcore"
)

// Memory is a concurrency-safe, map-backed user directory keyed by
// username.
type Memory struct {
	mu    sync.RWMutex
	users map[string]authcore.Principal
}

// NewMemory returns an empty directory.
func NewMemory() *Memory {
	return &Memory{
		users: make(map[string]authcore.Principal),
	}
}

// Register hashes the password, assigns a fresh ID, and stores the
// principal. An existing principal under the same username is replaced.
func (m *Memory) Register(username, password string, roles []string, hasher authcore.PasswordHasher) (authcore.Principal, error) {
	hash, err := hasher.Hash(password)
	if err != nil {
		return authcore.Principal{}, err
	}

	p := authcore.Principal{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Roles:        append([]string(nil), roles...),
	}

	m.mu.Lock()
	m.users[username] = p
	m.mu.Unlock()

	return p, nil
}

// RegisterTemporary is Register with a temporary password that expires at
// the given time.
func (m *Memory) RegisterTemporary(username, password string, roles []string, expires time.Time, hasher authcore.PasswordHasher) (authcore.Principal, error) {
	p, err := m.Register(username, password, roles, hasher)
	if err != nil {
		return authcore.Principal{}, err
	}

	p.TemporaryPassword = true
	p.PasswordExpiresAt = expires

	m.mu.Lock()
	m.users[username] = p
	m.mu.Unlock()

	return p, nil
}

// Add stores a fully-formed principal, assigning an ID when absent.
func (m *Memory) Add(p authcore.Principal) authcore.Principal {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	m.mu.Lock()
	m.users[p.Username] = p
	m.mu.Unlock()

	return p
}

// LoadByUsername implements authcore.UserDirectory. Unknown usernames
// return (nil, nil).
func (m *Memory) LoadByUsername(_ context.Context, username string) (*authcore.Principal, error) {
	m.mu.RLock()
	p, ok := m.users[username]
	m.mu.RUnlock()

	if !ok {
		return nil, nil
	}

	out := p
	out.Roles = append([]string(nil), p.Roles...)
	return &out, nil
}
