package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/tanvir-rifat07/chirplink/internal/cache"
	"github.com/tanvir-rifat07/chirplink/internal/middleware"
	"github.com/tanvir-rifat07/chirplink/internal/models"
	"github.com/tanvir-rifat07/chirplink/internal/repositories"
	"github.com/tanvir-rifat07/chirplink/validators"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret-key"

// memPostRepo is an in-memory PostRepository used in place of MongoDB
type memPostRepo struct {
	posts []*models.Post
	clock time.Time
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (r *memPostRepo) CreatePost(_ context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	r.clock = r.clock.Add(time.Second)
	post.CreatedAt = r.clock
	if post.Likes == nil {
		post.Likes = []uint{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	r.posts = append(r.posts, post)
	return nil
}

func (r *memPostRepo) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	for _, p := range r.posts {
		if p.ID.Hex() == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repositories.ErrPostNotFound
}

func (r *memPostRepo) list(match func(*models.Post) bool, skip, limit int64) []models.Post {
	var out []models.Post
	for _, p := range r.posts {
		if match(p) {
			out = append(out, *p)
		}
	}
	// newest first, stable
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if skip >= int64(len(out)) {
		return []models.Post{}
	}
	out = out[skip:]
	if limit < int64(len(out)) {
		out = out[:limit]
	}
	return out
}

func (r *memPostRepo) GetPostsByAuthor(_ context.Context, authorID uint, skip, limit int64) ([]models.Post, error) {
	return r.list(func(p *models.Post) bool { return p.AuthorID == authorID }, skip, limit), nil
}

func (r *memPostRepo) GetPostsByAuthors(_ context.Context, authorIDs []uint, skip, limit int64) ([]models.Post, error) {
	ids := make(map[uint]bool, len(authorIDs))
	for _, id := range authorIDs {
		ids[id] = true
	}
	return r.list(func(p *models.Post) bool { return ids[p.AuthorID] }, skip, limit), nil
}

func (r *memPostRepo) GetAllPosts(_ context.Context, skip, limit int64) ([]models.Post, error) {
	return r.list(func(*models.Post) bool { return true }, skip, limit), nil
}

func (r *memPostRepo) ToggleLike(_ context.Context, id string, userID uint) (bool, error) {
	for _, p := range r.posts {
		if p.ID.Hex() != id {
			continue
		}
		for i, uid := range p.Likes {
			if uid == userID {
				p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
				return false, nil
			}
		}
		p.Likes = append(p.Likes, userID)
		return true, nil
	}
	return false, repositories.ErrPostNotFound
}

func (r *memPostRepo) AddComment(_ context.Context, id string, comment models.Comment) (*models.Post, error) {
	for _, p := range r.posts {
		if p.ID.Hex() == id {
			p.Comments = append(p.Comments, comment)
			cp := *p
			return &cp, nil
		}
	}
	return nil, repositories.ErrPostNotFound
}

// testServer bundles an echo instance with the repositories behind it
type testServer struct {
	e          *echo.Echo
	userRepo   repositories.UserRepository
	followRepo repositories.FollowRepository
	postRepo   *memPostRepo
}

// newTestServer wires all handlers against an in-memory SQLite database and
// the in-memory post repository
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Follow{}))

	userRepo := repositories.NewPostgresUserRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	postRepo := newMemPostRepo()
	noCache := &cache.Cache{}

	e := echo.New()
	e.Validator = validators.NewValidator()

	authHandler := NewAuthHandler(userRepo, followRepo, testJWTSecret, time.Hour)
	authHandler.RegisterAuthRoutes(e.Group("/api/auth"))

	public := e.Group("/api")
	userHandler := NewUserHandler(userRepo, followRepo)
	userHandler.RegisterPublicRoutes(public)
	postHandler := NewPostHandler(postRepo, userRepo, noCache)
	postHandler.RegisterPublicRoutes(public)

	api := e.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(testJWTSecret))
	userHandler.RegisterProfileRoutes(api)
	postHandler.RegisterPostRoutes(api)
	NewFeedHandler(postRepo, userRepo, followRepo, noCache).RegisterFeedRoutes(api)
	NewFollowHandler(followRepo, userRepo).RegisterFollowRoutes(api)

	return &testServer{e: e, userRepo: userRepo, followRepo: followRepo, postRepo: postRepo}
}

// request performs an HTTP request against the test server and returns the
// recorder. A non-empty token is attached as a bearer token.
func (s *testServer) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

// registerUser registers a user through the API and returns the token and id
func (s *testServer) registerUser(t *testing.T, username, email, password string) (string, uint) {
	t.Helper()

	rec := s.request(t, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Token string            `json:"token"`
		User  models.PublicUser `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.User.ID
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
