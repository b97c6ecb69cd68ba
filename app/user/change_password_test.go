package user

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangePasswordWrongCurrent(t *testing.T) {
	r, d := newTestEnv(t)

	pair := registerAndVerify(t, r, d, "a@b.com", "a")

	w, resp := doJSON(t, r, http.MethodPost, "/api/users/change-password", gin.H{
		"current_password":     "Wrong12345",
		"new_password":         "Fresh12345",
		"confirm_new_password": "Fresh12345",
	}, pair.Access)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Incorrect current password", resp["error"])
}

func TestChangePasswordMismatch(t *testing.T) {
	r, d := newTestEnv(t)

	pair := registerAndVerify(t, r, d, "a@b.com", "a")

	w, _ := doJSON(t, r, http.MethodPost, "/api/users/change-password", gin.H{
		"current_password":     "Abc12345",
		"new_password":         "Fresh12345",
		"confirm_new_password": "Other12345",
	}, pair.Access)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChangePasswordWeakNew(t *testing.T) {
	r, d := newTestEnv(t)

	pair := registerAndVerify(t, r, d, "a@b.com", "a")

	w, _ := doJSON(t, r, http.MethodPost, "/api/users/change-password", gin.H{
		"current_password":     "Abc12345",
		"new_password":         "12345678",
		"confirm_new_password": "12345678",
	}, pair.Access)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChangePasswordSuccess(t *testing.T) {
	r, d := newTestEnv(t)

	pair := registerAndVerify(t, r, d, "a@b.com", "a")

	w, _ := doJSON(t, r, http.MethodPost, "/api/users/change-password", gin.H{
		"current_password":     "Abc12345",
		"new_password":         "Fresh12345",
		"confirm_new_password": "Fresh12345",
	}, pair.Access)
	require.Equal(t, http.StatusOK, w.Code)

	// Old password stops working, new one logs in
	w, _ = doJSON(t, r, http.MethodPost, "/api/users/login", gin.H{
		"email":    "a@b.com",
		"password": "Abc12345",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/api/users/login", gin.H{
		"email":    "a@b.com",
		"password": "Fresh12345",
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	// Existing refresh tokens survive a password change
	w, _ = doJSON(t, r, http.MethodPost, "/api/users/token/refresh", gin.H{
		"refresh_token": pair.Refresh,
	}, "")
	assert.Equal(t, http.StatusOK, w.Code)
}
