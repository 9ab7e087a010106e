package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanvir-rifat07/chirplink/internal/models"
)

func seedUsers(t *testing.T, repo UserRepository, usernames ...string) []uint {
	t.Helper()
	ids := make([]uint, len(usernames))
	for i, name := range usernames {
		user := &models.User{Username: name, Email: name + "@example.com", Password: "hash"}
		require.NoError(t, repo.CreateUser(user))
		ids[i] = user.ID
	}
	return ids
}

func TestFollowMirroredViews(t *testing.T) {
	db := setupTestDB(t)
	userRepo := NewPostgresUserRepository(db)
	repo := NewPostgresFollowRepository(db)
	ids := seedUsers(t, userRepo, "alice", "bob")
	a, b := ids[0], ids[1]

	require.NoError(t, repo.Follow(a, b))

	// After follow(A,B): B is in A.following and A is in B.followers
	following, err := repo.GetFollowingIDs(a)
	require.NoError(t, err)
	assert.Equal(t, []uint{b}, following)

	followers, err := repo.GetFollowerIDs(b)
	require.NoError(t, err)
	assert.Equal(t, []uint{a}, followers)

	// The reverse edge does not exist
	following, err = repo.GetFollowingIDs(b)
	require.NoError(t, err)
	assert.Empty(t, following)

	ok, err := repo.IsFollowing(a, b)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.IsFollowing(b, a)
	require.NoError(t, err)
	assert.False(t, ok)

	// After unfollow(A,B) neither view holds
	require.NoError(t, repo.Unfollow(a, b))
	following, err = repo.GetFollowingIDs(a)
	require.NoError(t, err)
	assert.Empty(t, following)
	followers, err = repo.GetFollowerIDs(b)
	require.NoError(t, err)
	assert.Empty(t, followers)
}

func TestFollowDuplicateEdge(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresFollowRepository(db)
	ids := seedUsers(t, NewPostgresUserRepository(db), "alice", "bob")

	require.NoError(t, repo.Follow(ids[0], ids[1]))
	assert.ErrorIs(t, repo.Follow(ids[0], ids[1]), ErrAlreadyFollowing)
}

func TestUnfollowWithoutEdge(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresFollowRepository(db)
	ids := seedUsers(t, NewPostgresUserRepository(db), "alice", "bob")

	assert.ErrorIs(t, repo.Unfollow(ids[0], ids[1]), ErrNotFollowing)
}

func TestFollowCounts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresFollowRepository(db)
	ids := seedUsers(t, NewPostgresUserRepository(db), "alice", "bob", "carol")

	require.NoError(t, repo.Follow(ids[1], ids[0]))
	require.NoError(t, repo.Follow(ids[2], ids[0]))
	require.NoError(t, repo.Follow(ids[0], ids[1]))

	followers, err := repo.GetFollowersCount(ids[0])
	require.NoError(t, err)
	assert.EqualValues(t, 2, followers)

	following, err := repo.GetFollowingCount(ids[0])
	require.NoError(t, err)
	assert.EqualValues(t, 1, following)
}
