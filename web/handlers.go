// Package web exposes the security endpoints over HTTP: login, logout,
// and refresh under /security. All three are anonymous-allowed: login
// and refresh because the caller has no valid session yet, logout because
// logging out is always safe.
package web

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	authcore "github.com/hexauth/authcore"
	"github.com/hexauth/authcore/middleware"
	"github.com/hexauth/authcore/session"
)

// Handlers serves the security endpoints.
type Handlers struct {
	svc    *authcore.Service
	logger *logrus.Logger
}

// NewHandlers creates the handler set. logger may be nil.
func NewHandlers(svc *authcore.Service, logger *logrus.Logger) *Handlers {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Handlers{svc: svc, logger: logger}
}

// Register mounts the security routes on r, each behind the anonymous
// guard so callers without a session can reach them.
func (h *Handlers) Register(r *mux.Router) {
	guard := middleware.Guard(h.svc, middleware.Anonymous, h.logger)

	r.Handle("/security/login", guard(http.HandlerFunc(h.login))).Methods(http.MethodPost)
	r.Handle("/security/logout", guard(http.HandlerFunc(h.logout))).Methods(http.MethodGet)
	r.Handle("/security/refresh", guard(http.HandlerFunc(h.refresh))).Methods(http.MethodPost)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

type sessionResponse struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	Username     string    `json:"username"`
	Roles        []string  `json:"roles"`
}

func sessionPayload(sess session.Session) sessionResponse {
	return sessionResponse{
		Token:        sess.Token,
		RefreshToken: sess.RefreshToken,
		ExpiresAt:    sess.ExpiresAt,
		Username:     sess.Username,
		Roles:        sess.Roles,
	}
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.WithField("username", req.Username).Warn(err.Error())
		writeError(w, http.StatusForbidden, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, sessionPayload(sess))
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	h.svc.Logout(r.Header.Get(h.svc.TokenHeader()))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, err := h.svc.Refresh(req.Token, req.RefreshToken)
	if err != nil {
		h.logger.Warn(err.Error())
		writeError(w, http.StatusForbidden, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, sessionPayload(sess))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
