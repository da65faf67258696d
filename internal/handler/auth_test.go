package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/feedco/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginIssuesTokenPairAndCookie(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "tester")

	set, cookie := env.login(t, "alice", "me users applications")

	assert.NotEmpty(t, set.AccessToken)
	assert.NotEmpty(t, set.RefreshToken)
	assert.Equal(t, "Bearer", set.TokenType)
	assert.Equal(t, set.RefreshToken, cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "tester")

	form := url.Values{}
	form.Set("username", "alice")
	form.Set("password", "wrong")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := env.do(req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid credentials")

	// Unknown user reads the same as a wrong password.
	form.Set("username", "nobody")
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = env.do(req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid credentials")
}

func TestRefreshRotatesAndRevokesPredecessor(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "tester")
	_, cookie := env.login(t, "alice", "me")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.AddCookie(cookie)
	w := env.do(req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var rotated model.TokenSet
	require.NoError(t, jsonDecode(w.Body.Bytes(), &rotated))
	assert.NotEmpty(t, rotated.AccessToken)
	assert.NotEqual(t, cookie.Value, rotated.RefreshToken)

	// Replaying the pre-rotation cookie must fail.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.AddCookie(cookie)
	w = env.do(req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid refresh token")
}

func TestRefreshWithoutCookie(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "tester")
	env.login(t, "alice", "me")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	w := env.do(req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid refresh token")
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "tester")
	set, _ := env.login(t, "alice", "me")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: set.AccessToken})
	w := env.do(req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid refresh token")
}

func TestRefreshCarriesScopesForward(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "tester")
	_, cookie := env.login(t, "alice", "me")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.AddCookie(cookie)
	w := env.do(req)
	require.Equal(t, http.StatusOK, w.Code)

	var rotated model.TokenSet
	require.NoError(t, jsonDecode(w.Body.Bytes(), &rotated))

	// The rotated access token keeps working where the original scope allowed.
	resp := env.authedJSON(t, http.MethodGet, "/api/v1/users/me", rotated.AccessToken, "")
	assert.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "tester")
	_, cookie := env.login(t, "alice", "me")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.AddCookie(cookie)
	w := env.do(req)
	require.Equal(t, http.StatusOK, w.Code)

	// The cleared cookie comes back with an immediate expiry.
	for _, c := range w.Result().Cookies() {
		if c.Name == "refresh_token" {
			assert.Empty(t, c.Value)
		}
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.AddCookie(cookie)
	w = env.do(req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
