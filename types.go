package authcore

import (
	"context"
	"time"
)

// Principal is the identity record a session represents. It is owned and
// persisted by the embedder's [UserDirectory]; this core only reads it
// during login and caller resolution, and copies identity fields into the
// session, never the hash.
type Principal struct {
	ID           string
	Username     string
	PasswordHash string
	Roles        []string

	// TemporaryPassword marks a password that must be replaced by
	// PasswordExpiresAt. A principal with an expired temporary password
	// can no longer act as a caller.
	TemporaryPassword bool
	PasswordExpiresAt time.Time
}

// UserDirectory is the credential-lookup capability the embedder must
// implement. LoadByUsername returns (nil, nil) for an unknown username:
// structured absence, not an error.
type UserDirectory interface {
	LoadByUsername(ctx context.Context, username string) (*Principal, error)
}

// PasswordHasher is the salted one-way hashing capability. Algorithm
// choice belongs to the embedder; the password subpackage provides a
// bcrypt implementation.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// Caller is the request-scoped view of an authenticated principal, bound
// into the request context by [Service.ResolveCaller].
type Caller struct {
	ID       string
	Username string
	Roles    []string
}
