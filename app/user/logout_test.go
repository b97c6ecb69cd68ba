package user

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogoutRequiresAuth(t *testing.T) {
	r, _ := newTestEnv(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/users/logout", gin.H{
		"refresh_token": "whatever",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutBlacklistsToken(t *testing.T) {
	r, d := newTestEnv(t)

	pair := registerAndVerify(t, r, d, "a@b.com", "a")

	w, _ := doJSON(t, r, http.MethodPost, "/api/users/logout", gin.H{
		"refresh_token": pair.Refresh,
	}, pair.Access)
	require.Equal(t, http.StatusOK, w.Code)

	// The refresh token must be dead for both logout and refresh
	w, resp := doJSON(t, r, http.MethodPost, "/api/users/logout", gin.H{
		"refresh_token": pair.Refresh,
	}, pair.Access)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid refresh token", resp["error"])

	w, resp = doJSON(t, r, http.MethodPost, "/api/users/token/refresh", gin.H{
		"refresh_token": pair.Refresh,
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid refresh token", resp["error"])
}

func TestLogoutMalformedToken(t *testing.T) {
	r, d := newTestEnv(t)

	pair := registerAndVerify(t, r, d, "a@b.com", "a")

	w, resp := doJSON(t, r, http.MethodPost, "/api/users/logout", gin.H{
		"refresh_token": "not.a.jwt",
	}, pair.Access)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid refresh token", resp["error"])
}

func TestTokenRefresh(t *testing.T) {
	r, d := newTestEnv(t)

	pair := registerAndVerify(t, r, d, "a@b.com", "a")

	w, resp := doJSON(t, r, http.MethodPost, "/api/users/token/refresh", gin.H{
		"refresh_token": pair.Refresh,
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	access := resp["access"].(string)
	require.NotEmpty(t, access)

	// The minted access token actually works
	w, _ = doJSON(t, r, http.MethodGet, "/api/users/me", nil, access)
	assert.Equal(t, http.StatusOK, w.Code)

	// An access token is not a refresh token
	w, _ = doJSON(t, r, http.MethodPost, "/api/users/token/refresh", gin.H{
		"refresh_token": pair.Access,
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
