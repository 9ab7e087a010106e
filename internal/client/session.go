package client

import (
	"errors"

	"github.com/tanvir-rifat07/chirplink/internal/models"
)

// State is the client-side session state
type State int

const (
	StateAnonymous State = iota
	StateAuthenticating
	StateAuthenticated
)

// Session owns the local session state: the current user and the token held
// by the underlying Client. Populated on login or register, cleared on
// logout or on any 401 from the server.
type Session struct {
	api   *Client
	state State
	user  *models.PublicUser
}

// NewSession creates an anonymous session over the given API client
func NewSession(api *Client) *Session {
	return &Session{api: api, state: StateAnonymous}
}

func (s *Session) State() State             { return s.state }
func (s *Session) User() *models.PublicUser { return s.user }
func (s *Session) Authenticated() bool      { return s.state == StateAuthenticated }

// Login authenticates and transitions anonymous -> authenticating ->
// authenticated; a failure returns to anonymous.
func (s *Session) Login(email, password string) error {
	s.state = StateAuthenticating
	resp, err := s.api.Login(email, password)
	if err != nil {
		s.clear()
		return err
	}
	s.user = &resp.User
	s.state = StateAuthenticated
	return nil
}

// Register creates an account and enters the authenticated state
func (s *Session) Register(username, email, password string) error {
	s.state = StateAuthenticating
	resp, err := s.api.Register(username, email, password)
	if err != nil {
		s.clear()
		return err
	}
	s.user = &resp.User
	s.state = StateAuthenticated
	return nil
}

// Logout clears the session and returns to anonymous
func (s *Session) Logout() {
	s.clear()
}

func (s *Session) clear() {
	s.api.ClearToken()
	s.user = nil
	s.state = StateAnonymous
}

// check forces a logout when the server rejected the token
func (s *Session) check(err error) error {
	if errors.Is(err, ErrUnauthenticated) {
		s.clear()
	}
	return err
}

// Refresh re-fetches the current user's profile
func (s *Session) Refresh() error {
	user, err := s.api.Me()
	if err != nil {
		return s.check(err)
	}
	s.user = user
	return nil
}

// Feed returns the personalized feed
func (s *Session) Feed() ([]models.PostView, error) {
	posts, err := s.api.Feed()
	return posts, s.check(err)
}

// Discover returns the unfiltered listing
func (s *Session) Discover() ([]models.PostView, error) {
	posts, err := s.api.Discover()
	return posts, s.check(err)
}

// SearchUsers searches user profiles
func (s *Session) SearchUsers(query string) ([]models.PublicUser, error) {
	users, err := s.api.SearchUsers(query)
	return users, s.check(err)
}

// CreatePost publishes a post as the current user
func (s *Session) CreatePost(content, image string) (*models.PostView, error) {
	post, err := s.api.CreatePost(content, image)
	return post, s.check(err)
}

// ToggleLike toggles the current user's like on a post
func (s *Session) ToggleLike(postID string) (bool, error) {
	liked, err := s.api.ToggleLike(postID)
	return liked, s.check(err)
}

// AddComment comments on a post as the current user
func (s *Session) AddComment(postID, text string) (*models.PostView, error) {
	post, err := s.api.AddComment(postID, text)
	return post, s.check(err)
}

// Follow follows the given user
func (s *Session) Follow(id uint) error {
	return s.check(s.api.Follow(id))
}

// Unfollow unfollows the given user
func (s *Session) Unfollow(id uint) error {
	return s.check(s.api.Unfollow(id))
}
