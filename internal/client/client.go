package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/tanvir-rifat07/chirplink/internal/models"
)

// ErrUnauthenticated is returned for any 401 response. Callers must treat it
// as a forced logout.
var ErrUnauthenticated = errors.New("unauthenticated")

// APIError carries the server's error message and status category
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// Client is an HTTP client for the chirplink API. It attaches the bearer
// token to every request once set.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New creates a Client for the API at baseURL
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken installs the bearer token used for authenticated requests
func (c *Client) SetToken(token string) { c.token = token }

// ClearToken drops the bearer token
func (c *Client) ClearToken() { c.token = "" }

func (c *Client) do(method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequest(method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthenticated
	}
	if resp.StatusCode >= 400 {
		var e struct {
			Message string `json:"message"`
		}
		json.NewDecoder(resp.Body).Decode(&e)
		return &APIError{Status: resp.StatusCode, Message: e.Message}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// AuthResponse is the register/login response body
type AuthResponse struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// Register creates an account and installs the returned token
func (c *Client) Register(username, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	err := c.do(http.MethodPost, "/api/auth/register", models.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	}, &out)
	if err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

// Login authenticates and installs the returned token
func (c *Client) Login(email, password string) (*AuthResponse, error) {
	var out AuthResponse
	err := c.do(http.MethodPost, "/api/auth/login", models.LoginRequest{
		Email:    email,
		Password: password,
	}, &out)
	if err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

// Me fetches the current user's profile
func (c *Client) Me() (*models.PublicUser, error) {
	var out models.PublicUser
	if err := c.do(http.MethodGet, "/api/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile updates the current user's profile fields
func (c *Client) UpdateProfile(req models.UpdateProfileRequest) (*models.PublicUser, error) {
	var out models.PublicUser
	if err := c.do(http.MethodPut, "/api/users/me", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUser fetches any user's public profile
func (c *Client) GetUser(id uint) (*models.PublicUser, error) {
	var out models.PublicUser
	if err := c.do(http.MethodGet, fmt.Sprintf("/api/users/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchUsers searches users by username or bio
func (c *Client) SearchUsers(query string) ([]models.PublicUser, error) {
	var out []models.PublicUser
	path := "/api/users/search?q=" + url.QueryEscape(query)
	if err := c.do(http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Follow follows the given user
func (c *Client) Follow(id uint) error {
	return c.do(http.MethodPost, fmt.Sprintf("/api/users/%d/follow", id), nil, nil)
}

// Unfollow unfollows the given user
func (c *Client) Unfollow(id uint) error {
	return c.do(http.MethodPost, fmt.Sprintf("/api/users/%d/unfollow", id), nil, nil)
}

// CreatePost publishes a new post
func (c *Client) CreatePost(content, image string) (*models.PostView, error) {
	var out models.PostView
	err := c.do(http.MethodPost, "/api/posts", models.CreatePostRequest{Content: content, Image: image}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Feed fetches posts by the current user and everyone they follow
func (c *Client) Feed() ([]models.PostView, error) {
	var out []models.PostView
	if err := c.do(http.MethodGet, "/api/posts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Discover fetches the unfiltered post listing
func (c *Client) Discover() ([]models.PostView, error) {
	var out []models.PostView
	if err := c.do(http.MethodGet, "/api/posts/discover", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UserPosts fetches posts authored by the given user
func (c *Client) UserPosts(id uint) ([]models.PostView, error) {
	var out []models.PostView
	if err := c.do(http.MethodGet, fmt.Sprintf("/api/users/%d/posts", id), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ToggleLike likes or unlikes the post and returns the resulting state
func (c *Client) ToggleLike(postID string) (bool, error) {
	var out struct {
		Liked bool `json:"liked"`
	}
	if err := c.do(http.MethodPost, "/api/posts/"+postID+"/like", nil, &out); err != nil {
		return false, err
	}
	return out.Liked, nil
}

// AddComment comments on the post and returns the updated post
func (c *Client) AddComment(postID, text string) (*models.PostView, error) {
	var out models.PostView
	err := c.do(http.MethodPost, "/api/posts/"+postID+"/comments", models.AddCommentRequest{Text: text}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
