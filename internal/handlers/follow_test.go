package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanvir-rifat07/chirplink/internal/models"
)

func TestFollowUnfollow(t *testing.T) {
	s := newTestServer(t)
	bobToken, bobID := s.registerUser(t, "bob", "bob@example.com", "password123")
	_, aliceID := s.registerUser(t, "alice", "alice@example.com", "password123")

	rec := s.request(t, http.MethodPost, fmt.Sprintf("/api/users/%d/follow", aliceID), bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Both mirrored views hold after the follow
	rec = s.request(t, http.MethodGet, "/api/users/me", bobToken, nil)
	bob := decodeJSON[models.PublicUser](t, rec)
	assert.Equal(t, []uint{aliceID}, bob.Following)
	assert.Empty(t, bob.Followers)

	rec = s.request(t, http.MethodGet, fmt.Sprintf("/api/users/%d", aliceID), "", nil)
	alice := decodeJSON[models.PublicUser](t, rec)
	assert.Equal(t, []uint{bobID}, alice.Followers)
	assert.Empty(t, alice.Following)

	// Unfollow removes both sides
	rec = s.request(t, http.MethodPost, fmt.Sprintf("/api/users/%d/unfollow", aliceID), bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.request(t, http.MethodGet, "/api/users/me", bobToken, nil)
	bob = decodeJSON[models.PublicUser](t, rec)
	assert.Empty(t, bob.Following)

	rec = s.request(t, http.MethodGet, fmt.Sprintf("/api/users/%d", aliceID), "", nil)
	alice = decodeJSON[models.PublicUser](t, rec)
	assert.Empty(t, alice.Followers)
}

func TestFollowSelf(t *testing.T) {
	s := newTestServer(t)
	token, id := s.registerUser(t, "alice", "alice@example.com", "password123")

	rec := s.request(t, http.MethodPost, fmt.Sprintf("/api/users/%d/follow", id), token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// State unchanged
	rec = s.request(t, http.MethodGet, "/api/users/me", token, nil)
	user := decodeJSON[models.PublicUser](t, rec)
	assert.Empty(t, user.Following)
	assert.Empty(t, user.Followers)
}

func TestFollowMissingUser(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.registerUser(t, "alice", "alice@example.com", "password123")

	rec := s.request(t, http.MethodPost, "/api/users/999/follow", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.request(t, http.MethodPost, "/api/users/999/unfollow", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFollowTwice(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.registerUser(t, "bob", "bob@example.com", "password123")
	_, aliceID := s.registerUser(t, "alice", "alice@example.com", "password123")

	path := fmt.Sprintf("/api/users/%d/follow", aliceID)
	rec := s.request(t, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.request(t, http.MethodPost, path, token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnfollowWithoutEdge(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.registerUser(t, "bob", "bob@example.com", "password123")
	_, aliceID := s.registerUser(t, "alice", "alice@example.com", "password123")

	rec := s.request(t, http.MethodPost, fmt.Sprintf("/api/users/%d/unfollow", aliceID), token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
