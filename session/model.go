package session

import "time"

// Identity is the value-copied principal snapshot attached to a session.
// It carries what the request path needs to name the caller and enforce
// the temporary-password policy; the credential hash never enters the
// session table.
type Identity struct {
	SubjectID         string
	Username          string
	TemporaryPassword bool
	PasswordExpiresAt time.Time
}

// Session is one live authenticated session. Token and RefreshToken are
// opaque bearer credentials unique across all live sessions; Roles is a
// snapshot frozen at creation or rotation time and is never re-fetched
// from the user directory.
type Session struct {
	Token        string
	RefreshToken string

	CreatedAt time.Time
	ExpiresAt time.Time

	Roles []string

	Identity
}

// Expired reports whether the session is past its expiry at the given
// instant. The boundary itself counts as expired.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

func cloneRoles(roles []string) []string {
	if len(roles) == 0 {
		return nil
	}
	out := make([]string, len(roles))
	copy(out, roles)
	return out
}
