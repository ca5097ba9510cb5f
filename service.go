package authcore

import (
	"context"
	"errors"
	"time"

	"github.com/hexauth/authcore/metrics"
	"github.com/hexauth/authcore/session"
)

// Service orchestrates the session lifecycle: login, logout, refresh,
// authentication checks, and authorization decisions. It is the single
// entry point the dispatch layer calls. Construct via [Builder.Build];
// all methods are safe for concurrent use afterwards.
type Service struct {
	cfg       Config
	directory UserDirectory
	hasher    PasswordHasher
	store     *session.Store
	metrics   *metrics.Metrics

	now func() time.Time
}

// Config returns the service configuration.
func (s *Service) Config() Config {
	return s.cfg
}

// TokenHeader returns the request header name carrying the session token.
func (s *Service) TokenHeader() string {
	return s.cfg.TokenHeader
}

// Login verifies credentials against the user directory and, on success,
// registers a new session carrying the principal's role snapshot. Unknown
// usernames and non-verifying passwords both fail with
// [ErrInvalidCredentials]; the caller learns nothing about which.
//
// The directory lookup and hash verification happen before any store
// interaction; the session lock is never held across them.
func (s *Service) Login(ctx context.Context, username, password string) (session.Session, error) {
	principal, err := s.directory.LoadByUsername(ctx, username)
	if err != nil {
		return session.Session{}, err
	}
	if principal == nil || !s.hasher.Verify(password, principal.PasswordHash) {
		s.metrics.Login(metrics.OutcomeFailure)
		return session.Session{}, ErrInvalidCredentials
	}

	sess, err := s.store.Create(session.Identity{
		SubjectID:         principal.ID,
		Username:          principal.Username,
		TemporaryPassword: principal.TemporaryPassword,
		PasswordExpiresAt: principal.PasswordExpiresAt,
	}, principal.Roles)
	if err != nil {
		s.metrics.Login(metrics.OutcomeFailure)
		return session.Session{}, errors.Join(ErrTokenGeneration, err)
	}

	s.metrics.Login(metrics.OutcomeSuccess)
	s.metrics.SetActiveSessions(s.store.Len())
	return sess, nil
}

// Logout removes the session for token. It never fails: removing an
// unknown or already-removed token is a no-op, so logout is always safe
// to call.
func (s *Service) Logout(token string) {
	s.store.Remove(token)
	s.metrics.Logout()
	s.metrics.SetActiveSessions(s.store.Len())
}

// ResolveCaller binds the principal behind token into the returned
// context for the current request. An unknown token is not an error
// here: the request proceeds anonymously, and [Service.CheckAuthenticated]
// is the call that requires a caller to be present.
//
// It fails with [ErrPasswordExpired] when the resolved principal holds a
// temporary password past its expiry.
func (s *Service) ResolveCaller(ctx context.Context, token string) (context.Context, error) {
	sess, ok := s.store.Get(token)
	if !ok {
		return ctx, nil
	}

	if sess.TemporaryPassword && sess.PasswordExpiresAt.Before(s.now()) {
		return ctx, ErrPasswordExpired
	}

	return WithCaller(ctx, &Caller{
		ID:       sess.SubjectID,
		Username: sess.Username,
		Roles:    sess.Roles,
	}), nil
}

// CheckAuthenticated fails with [ErrNotAuthenticated] when no session
// exists for token, and with [ErrTokenExpired] when the session is past
// its expiry. Expired sessions are not purged here; that is the janitor's
// job.
func (s *Service) CheckAuthenticated(token string) error {
	sess, ok := s.store.Get(token)
	if !ok {
		return ErrNotAuthenticated
	}
	if sess.Expired(s.now()) {
		return ErrTokenExpired
	}
	return nil
}

// CheckAuthorized decides whether the caller behind token may invoke an
// operation. Anonymous-allowed operations permit unconditionally,
// whatever the token's state. Otherwise the session's role snapshot must
// intersect requiredRoles, or the check fails with [ErrNotAuthorized].
//
// Callers are expected to have passed [Service.CheckAuthenticated] first;
// an absent session here reports [ErrNotAuthenticated] rather than
// assuming that precondition held.
func (s *Service) CheckAuthorized(token string, requiredRoles []string, allowAnonymous bool) error {
	if allowAnonymous {
		return nil
	}

	sess, ok := s.store.Get(token)
	if !ok {
		return ErrNotAuthenticated
	}
	if !IsPermitted(sess.Roles, requiredRoles) {
		s.metrics.Denied()
		return ErrNotAuthorized
	}
	return nil
}

// Refresh rotates the session's token pair when refreshToken matches,
// returning the replacement session. The new session keeps the old one's
// identity and role snapshot; roles are not re-read from the directory.
// Fails with [ErrSessionNotFound] for an unknown token and
// [ErrRefreshMismatch] when the refresh token does not match, in which
// case the original session stays valid.
func (s *Service) Refresh(token, refreshToken string) (session.Session, error) {
	sess, err := s.store.Rotate(token, refreshToken)
	if err != nil {
		s.metrics.Refresh(metrics.OutcomeFailure)
		switch {
		case errors.Is(err, session.ErrNotFound):
			return session.Session{}, ErrSessionNotFound
		case errors.Is(err, session.ErrRefreshMismatch):
			return session.Session{}, ErrRefreshMismatch
		case errors.Is(err, session.ErrTokenExhausted):
			return session.Session{}, errors.Join(ErrTokenGeneration, err)
		}
		return session.Session{}, err
	}

	s.metrics.Refresh(metrics.OutcomeSuccess)
	s.metrics.SetActiveSessions(s.store.Len())
	return sess, nil
}

// HashPassword hashes a plain-text password with the configured hasher.
// Provided so embedders seed credentials with the same policy the login
// path verifies against.
func (s *Service) HashPassword(plain string) (string, error) {
	return s.hasher.Hash(plain)
}

// SweepExpired removes every expired session from the store and returns
// the count. Called by the janitor; exposed for embedders running their
// own schedule.
func (s *Service) SweepExpired() int {
	removed := s.store.Sweep(s.now())
	s.metrics.Swept(removed)
	s.metrics.SetActiveSessions(s.store.Len())
	return removed
}

// ActiveSessions reports the number of sessions in the store, expired
// but unswept ones included.
func (s *Service) ActiveSessions() int {
	return s.store.Len()
}
