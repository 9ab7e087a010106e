package repositories

import "errors"

// Domain errors returned by repositories, mapped to HTTP statuses at the
// handler boundary.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrPostNotFound     = errors.New("post not found")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrNotFollowing     = errors.New("not following this user")
)
