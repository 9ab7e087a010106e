package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanvir-rifat07/chirplink/internal/models"
)

func TestRegister(t *testing.T) {
	s := newTestServer(t)

	token, id := s.registerUser(t, "alice", "alice@example.com", "password123")
	assert.NotEmpty(t, token)
	assert.NotZero(t, id)

	// Stored credential is hashed, never the plaintext
	user, err := s.userRepo.GetUserByID(id)
	require.NoError(t, err)
	assert.NotEqual(t, "password123", user.Password)
	assert.NotEmpty(t, user.Password)
}

func TestRegisterDuplicate(t *testing.T) {
	s := newTestServer(t)
	s.registerUser(t, "alice", "alice@example.com", "password123")

	tests := []struct {
		name string
		req  models.RegisterRequest
	}{
		{
			name: "duplicate email",
			req:  models.RegisterRequest{Username: "other", Email: "alice@example.com", Password: "password123"},
		},
		{
			name: "duplicate username",
			req:  models.RegisterRequest{Username: "alice", Email: "other@example.com", Password: "password123"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.request(t, http.MethodPost, "/api/auth/register", "", tt.req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			// No duplicate record was created
			users, err := s.userRepo.SearchUsers("")
			require.NoError(t, err)
			assert.Len(t, users, 1)
		})
	}
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)

	rec := s.request(t, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{
		Username: "alice",
		Email:    "not-an-email",
		Password: "password123",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	s.registerUser(t, "alice", "alice@example.com", "password123")

	rec := s.request(t, http.MethodPost, "/api/auth/login", "", models.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeJSON[map[string]any](t, rec)
	assert.NotEmpty(t, resp["token"])
}

func TestLoginInvalidCredentials(t *testing.T) {
	s := newTestServer(t)
	s.registerUser(t, "alice", "alice@example.com", "password123")

	// Wrong password and unknown email must produce the same error shape so
	// the response does not reveal which check failed
	wrongPassword := s.request(t, http.MethodPost, "/api/auth/login", "", models.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	unknownEmail := s.request(t, http.MethodPost, "/api/auth/login", "", models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})

	assert.Equal(t, http.StatusBadRequest, wrongPassword.Code)
	assert.Equal(t, http.StatusBadRequest, unknownEmail.Code)
	assert.JSONEq(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	s := newTestServer(t)
	s.registerUser(t, "alice", "alice@example.com", "password123")

	tests := []struct {
		name  string
		token string
	}{
		{name: "missing token", token: ""},
		{name: "malformed token", token: "not-a-jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.request(t, http.MethodGet, "/api/users/me", tt.token, nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestMe(t *testing.T) {
	s := newTestServer(t)
	token, id := s.registerUser(t, "alice", "alice@example.com", "password123")

	rec := s.request(t, http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	user := decodeJSON[models.PublicUser](t, rec)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.Followers)
	assert.Empty(t, user.Following)

	// The credential must never appear in the response
	assert.NotContains(t, rec.Body.String(), "password")
}
