package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Username       string    `json:"username" gorm:"uniqueIndex"`
	Email          string    `json:"email" gorm:"uniqueIndex"`
	Password       string    `json:"-"` // Store hashed password, ignore for JSON serialization
	Bio            string    `json:"bio"`
	ProfilePicture string    `json:"profile_picture"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"-"`
}

// PublicUser is the user projection returned by the API. Followers and
// following are derived from the follows edge table, never stored on the row.
type PublicUser struct {
	ID             uint      `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Bio            string    `json:"bio"`
	ProfilePicture string    `json:"profile_picture"`
	Followers      []uint    `json:"followers"`
	Following      []uint    `json:"following"`
	CreatedAt      time.Time `json:"created_at"`
}

// UserCompact is the author projection joined onto posts and comments
type UserCompact struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profile_picture"`
}

// ToCompact converts a User to its compact projection
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:             u.ID,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
	}
}

// ToPublic converts a User to its public projection with the given edge sets
func (u *User) ToPublic(followers, following []uint) PublicUser {
	if followers == nil {
		followers = []uint{}
	}
	if following == nil {
		following = []uint{}
	}
	return PublicUser{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		Bio:            u.Bio,
		ProfilePicture: u.ProfilePicture,
		Followers:      followers,
		Following:      following,
		CreatedAt:      u.CreatedAt,
	}
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=2,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Username       string `json:"username,omitempty" validate:"omitempty,min=2,max=30"`
	Bio            string `json:"bio,omitempty" validate:"omitempty,max=200"`
	ProfilePicture string `json:"profile_picture,omitempty" validate:"omitempty,url"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}
