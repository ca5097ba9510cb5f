package authcore

import "errors"

// Every failure below is an expected, per-request outcome. None is fatal
// to the process; the dispatch layer maps each to a rejected response
// carrying the error text. The login error deliberately does not say
// whether the username or the password was wrong.
var (
	// ErrInvalidCredentials rejects a login with an unknown username or a
	// non-verifying password, without distinguishing which.
	ErrInvalidCredentials = errors.New("username or password is incorrect")
	// ErrPasswordExpired rejects a caller whose temporary password is past
	// its expiry; the password must be re-set out of band.
	ErrPasswordExpired = errors.New("password expired")
	// ErrNotAuthenticated indicates no session exists for the presented
	// token.
	ErrNotAuthenticated = errors.New("user is not authenticated")
	// ErrTokenExpired indicates the session exists but is past its expiry.
	ErrTokenExpired = errors.New("token has expired")
	// ErrNotAuthorized indicates an authenticated caller lacking every
	// required role.
	ErrNotAuthorized = errors.New("not authorised")
	// ErrSessionNotFound indicates a refresh against a token with no live
	// session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrRefreshMismatch indicates a refresh whose presented refresh token
	// did not match; the original session is left intact.
	ErrRefreshMismatch = errors.New("refresh token mismatch")
	// ErrTokenGeneration indicates the collision-retry bound was exhausted
	// while minting tokens.
	ErrTokenGeneration = errors.New("token generation failed")
	// ErrServiceNotReady indicates the Builder was not given every
	// required dependency.
	ErrServiceNotReady = errors.New("auth service not initialized")
)
