package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginMe(t *testing.T) {
	_, r := newTestEnv(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"username": "leo",
		"email":    "leo@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := dataOf(t, w)
	require.NotEmpty(t, data["token"])
	assert.Equal(t, "leo", data["user"].(map[string]interface{})["username"])

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"username": "leo",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token := dataOf(t, w)["token"].(string)

	w = doJSON(t, r, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "leo", dataOf(t, w)["user"].(map[string]interface{})["username"])
}

func TestRegisterValidation(t *testing.T) {
	_, r := newTestEnv(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"username": "x",
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	errs := dataOf(t, w)["errors"].(map[string]interface{})
	assert.Contains(t, errs, "username")
	assert.Contains(t, errs, "password")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db, r := newTestEnv(t)
	createUser(t, db, "leo")

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"username": "leo",
		"password": "password123",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	errs := dataOf(t, w)["errors"].(map[string]interface{})
	assert.Contains(t, errs, "username")
}

func TestLoginWrongPassword(t *testing.T) {
	db, r := newTestEnv(t)
	createUser(t, db, "leo")

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"username": "leo",
		"password": "not-the-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	_, r := newTestEnv(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"username": "leo",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := dataOf(t, w)["token"].(string)

	w = doJSON(t, r, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())

	var resp struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 40104, resp.Code)
}
