package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authcore "github.com/hexauth/authcore"
	"github.com/hexauth/authcore/directory"
)

type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (plainHasher) Verify(plain, hash string) bool { return hash == "hashed:"+plain }

func newTestRouter(t *testing.T) (*mux.Router, *authcore.Service) {
	t.Helper()

	dir := directory.NewMemory()
	_, err := dir.Register("alice", "pw1", []string{"STANDARD"}, plainHasher{})
	require.NoError(t, err)

	svc, err := authcore.New().
		WithDirectory(dir).
		WithHasher(plainHasher{}).
		Build()
	require.NoError(t, err)

	r := mux.NewRouter()
	NewHandlers(svc, nil).Register(r)
	return r, svc
}

func postJSON(t *testing.T, router *mux.Router, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeSession(t *testing.T, rec *httptest.ResponseRecorder) sessionResponse {
	t.Helper()
	var resp sessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestLoginEndpoint(t *testing.T) {
	router, svc := newTestRouter(t)

	rec := postJSON(t, router, "/security/login", loginRequest{Username: "alice", Password: "pw1"})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeSession(t, rec)
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, []string{"STANDARD"}, resp.Roles)
	assert.NoError(t, svc.CheckAuthenticated(resp.Token))
}

func TestLoginEndpointRejectsBadCredentials(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, req := range []loginRequest{
		{Username: "alice", Password: "wrong"},
		{Username: "nobody", Password: "pw1"},
	} {
		rec := postJSON(t, router, "/security/login", req)
		require.Equal(t, http.StatusForbidden, rec.Code)

		var body map[string]string
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "username or password is incorrect", body["message"])
	}
}

func TestLoginEndpointRejectsMalformedBody(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/security/login", bytes.NewReader([]byte("{")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogoutEndpoint(t *testing.T) {
	router, svc := newTestRouter(t)

	rec := postJSON(t, router, "/security/login", loginRequest{Username: "alice", Password: "pw1"})
	require.Equal(t, http.StatusOK, rec.Code)
	sess := decodeSession(t, rec)

	req := httptest.NewRequest(http.MethodGet, "/security/logout", nil)
	req.Header.Set(svc.TokenHeader(), sess.Token)
	out := httptest.NewRecorder()
	router.ServeHTTP(out, req)

	assert.Equal(t, http.StatusNoContent, out.Code)
	assert.ErrorIs(t, svc.CheckAuthenticated(sess.Token), authcore.ErrNotAuthenticated)

	// Logging out again, or with no token at all, is still a success.
	out = httptest.NewRecorder()
	router.ServeHTTP(out, req)
	assert.Equal(t, http.StatusNoContent, out.Code)
}

func TestRefreshEndpoint(t *testing.T) {
	router, svc := newTestRouter(t)

	rec := postJSON(t, router, "/security/login", loginRequest{Username: "alice", Password: "pw1"})
	require.Equal(t, http.StatusOK, rec.Code)
	old := decodeSession(t, rec)

	rec = postJSON(t, router, "/security/refresh", refreshRequest{Token: old.Token, RefreshToken: old.RefreshToken})
	require.Equal(t, http.StatusOK, rec.Code)

	fresh := decodeSession(t, rec)
	assert.NotEqual(t, old.Token, fresh.Token)
	assert.Equal(t, old.Roles, fresh.Roles)
	assert.ErrorIs(t, svc.CheckAuthenticated(old.Token), authcore.ErrNotAuthenticated)
	assert.NoError(t, svc.CheckAuthenticated(fresh.Token))
}

func TestRefreshEndpointFailures(t *testing.T) {
	router, svc := newTestRouter(t)

	rec := postJSON(t, router, "/security/login", loginRequest{Username: "alice", Password: "pw1"})
	require.Equal(t, http.StatusOK, rec.Code)
	sess := decodeSession(t, rec)

	rec = postJSON(t, router, "/security/refresh", refreshRequest{Token: sess.Token, RefreshToken: "wrong"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NoError(t, svc.CheckAuthenticated(sess.Token), "failed refresh must leave the session valid")

	rec = postJSON(t, router, "/security/refresh", refreshRequest{Token: "missing", RefreshToken: "whatever"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "session not found", body["message"])
}
