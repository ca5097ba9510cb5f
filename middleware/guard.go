// Package middleware implements the dispatch-layer contract over
// net/http: it reads the session token from the configured header,
// resolves the caller into the request context, enforces authentication
// and role checks per route, and short-circuits failures with a 403 JSON
// body carrying the error message.
package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	authcore "github.com/hexauth/authcore"
)

// Access declares what a route demands of its caller: either anonymous
// access, or possession of at least one of Roles. A route declaring
// neither is a registration-time configuration error.
type Access struct {
	AllowAnonymous bool
	Roles          []string
}

// Validate rejects an Access that neither allows anonymous callers nor
// names any required role.
func (a Access) Validate() error {
	if !a.AllowAnonymous && len(a.Roles) == 0 {
		return errNoAccessMarker
	}
	return nil
}

var errNoAccessMarker = errors.New("route declares neither anonymous access nor required roles")

// Anonymous is the Access for routes open to everyone.
var Anonymous = Access{AllowAnonymous: true}

// RequireRoles builds an Access demanding any one of the given roles.
func RequireRoles(roles ...string) Access {
	return Access{Roles: roles}
}

// Guard wraps a handler with the authentication and authorization checks
// the route's Access demands. Invalid Access values panic here, at
// registration time, rather than failing open per request. logger may be
// nil.
func Guard(svc *authcore.Service, access Access, logger *logrus.Logger) func(http.Handler) http.Handler {
	if err := access.Validate(); err != nil {
		panic("middleware: " + err.Error())
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(svc.TokenHeader())

			ctx, err := svc.ResolveCaller(r.Context(), token)
			if err != nil {
				deny(w, logger, r, "", err)
				return
			}

			entry := logger.WithFields(logrus.Fields{
				"method": r.Method,
				"path":   r.URL.Path,
			})

			username := ""
			if caller, ok := authcore.CallerFromContext(ctx); ok {
				username = caller.Username
				entry.WithField("user", caller.Username).Info("request")
			} else {
				entry.Info("request by anonymous user")
			}

			if !access.AllowAnonymous {
				if err := svc.CheckAuthenticated(token); err != nil {
					deny(w, logger, r, username, err)
					return
				}
			}

			if err := svc.CheckAuthorized(token, access.Roles, access.AllowAnonymous); err != nil {
				deny(w, logger, r, username, err)
				return
			}

			// The caller binding lives only in this request's context; it
			// dies with the request on every exit path.
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// deny writes HTTP 403 with a JSON message body, the single failure
// shape for every authentication and authorization failure kind.
func deny(w http.ResponseWriter, logger *logrus.Logger, r *http.Request, username string, err error) {
	if username == "" {
		username = "anonymous user"
	}
	logger.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"user":   username,
	}).Warn(err.Error())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": err.Error()})
}
