package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awave-app/backend/internal/repositories"
	"github.com/awave-app/backend/internal/token"
)

func TestSignupAndSignin(t *testing.T) {
	e, _, db := setupTestEnv(t)
	tokens := token.NewService("test-secret", time.Hour)
	NewAuthHandler(repositories.NewPostgresUserRepository(db), tokens).RegisterAuthRoutes(e.Group("/api/auth"))

	rec := doJSONRequest(e, http.MethodPost, "/api/auth/signup", `{"name":"alice","email":"alice@example.com","password":"hunter2-hunter2"}`, 0, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	claims, err := tokens.Verify(body.Token)
	require.NoError(t, err)
	assert.Equal(t, "user", claims.Role)

	// Duplicate email is rejected.
	rec = doJSONRequest(e, http.MethodPost, "/api/auth/signup", `{"name":"alice2","email":"alice@example.com","password":"hunter2-hunter2"}`, 0, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSONRequest(e, http.MethodPost, "/api/auth/signin", `{"email":"alice@example.com","password":"hunter2-hunter2"}`, 0, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	_, err = tokens.Verify(body.Token)
	assert.NoError(t, err)
}

func TestSigninRejectsBadCredentials(t *testing.T) {
	e, _, db := setupTestEnv(t)
	tokens := token.NewService("test-secret", time.Hour)
	NewAuthHandler(repositories.NewPostgresUserRepository(db), tokens).RegisterAuthRoutes(e.Group("/api/auth"))

	rec := doJSONRequest(e, http.MethodPost, "/api/auth/signup", `{"name":"alice","email":"alice@example.com","password":"hunter2-hunter2"}`, 0, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSONRequest(e, http.MethodPost, "/api/auth/signin", `{"email":"alice@example.com","password":"wrong-password"}`, 0, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSONRequest(e, http.MethodPost, "/api/auth/signin", `{"email":"nobody@example.com","password":"hunter2-hunter2"}`, 0, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Malformed email fails validation.
	rec = doJSONRequest(e, http.MethodPost, "/api/auth/signin", `{"email":"not-an-email","password":"hunter2-hunter2"}`, 0, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
