package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanvir-rifat07/chirplink/internal/models"
)

// fakeAPI is a stand-in server that accepts one token and rejects all others
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Email != "alice@example.com" || req.Password != "password123" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"token": "good-token",
			"user":  models.PublicUser{ID: 1, Username: "alice", Followers: []uint{}, Following: []uint{}},
		})
	})
	mux.HandleFunc("GET /api/posts", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Invalid token"})
			return
		}
		json.NewEncoder(w).Encode([]models.PostView{})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSessionLogin(t *testing.T) {
	srv := fakeAPI(t)
	s := NewSession(New(srv.URL))

	assert.Equal(t, StateAnonymous, s.State())
	require.NoError(t, s.Login("alice@example.com", "password123"))
	assert.Equal(t, StateAuthenticated, s.State())
	require.NotNil(t, s.User())
	assert.Equal(t, "alice", s.User().Username)

	// Token was installed: authenticated calls succeed
	_, err := s.Feed()
	require.NoError(t, err)
}

func TestSessionLoginFailure(t *testing.T) {
	srv := fakeAPI(t)
	s := NewSession(New(srv.URL))

	err := s.Login("alice@example.com", "wrong")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Invalid credentials", apiErr.Message)

	// Failure returns the session to anonymous
	assert.Equal(t, StateAnonymous, s.State())
	assert.Nil(t, s.User())
}

func TestSessionForcedLogoutOn401(t *testing.T) {
	srv := fakeAPI(t)
	s := NewSession(New(srv.URL))

	require.NoError(t, s.Login("alice@example.com", "password123"))

	// Simulate token rejection after expiry
	s.api.SetToken("expired-token")

	_, err := s.Feed()
	require.ErrorIs(t, err, ErrUnauthenticated)

	// 401 forces the transition back to anonymous and clears local state
	assert.Equal(t, StateAnonymous, s.State())
	assert.Nil(t, s.User())
}

func TestLogout(t *testing.T) {
	srv := fakeAPI(t)
	s := NewSession(New(srv.URL))

	require.NoError(t, s.Login("alice@example.com", "password123"))
	s.Logout()

	assert.Equal(t, StateAnonymous, s.State())
	assert.Nil(t, s.User())

	// The cleared token no longer authenticates
	_, err := s.Feed()
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
