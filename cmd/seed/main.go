package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/tanvir-rifat07/chirplink/internal/models"
	"github.com/tanvir-rifat07/chirplink/internal/repositories"
	"github.com/tanvir-rifat07/chirplink/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

// Seeds the stores with fake users, follow edges, posts, likes and comments
// for local development. Every user gets the password "password123".
func main() {
	userCount := flag.Int("users", 15, "number of users to create")
	postCount := flag.Int("posts", 40, "number of posts to create")
	flag.Parse()

	cfg := config.Load()
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	if err := db.Postgres.AutoMigrate(&models.User{}, &models.Follow{}); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}

	userRepo := repositories.NewPostgresUserRepository(db.Postgres)
	followRepo := repositories.NewPostgresFollowRepository(db.Postgres)
	postRepo := repositories.NewMongoPostRepository(db.Mongo.Database(cfg.MongoDatabase))

	ctx := context.Background()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	users := make([]*models.User, 0, *userCount)
	for i := 0; i < *userCount; i++ {
		user := &models.User{
			Username:       fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:          gofakeit.Email(),
			Password:       string(hashed),
			Bio:            gofakeit.Sentence(8),
			ProfilePicture: gofakeit.ImageURL(128, 128),
		}
		if err := userRepo.CreateUser(user); err != nil {
			log.Fatalf("Failed to create user: %v", err)
		}
		users = append(users, user)
	}
	log.Printf("Created %d users", len(users))

	// Random follow edges, roughly a third of all possible pairs
	edges := 0
	for _, follower := range users {
		for _, target := range users {
			if follower.ID == target.ID || rand.Intn(3) != 0 {
				continue
			}
			if err := followRepo.Follow(follower.ID, target.ID); err != nil {
				log.Fatalf("Failed to create follow edge: %v", err)
			}
			edges++
		}
	}
	log.Printf("Created %d follow edges", edges)

	for i := 0; i < *postCount; i++ {
		author := users[rand.Intn(len(users))]
		post := &models.Post{
			AuthorID: author.ID,
			Content:  gofakeit.Sentence(12),
		}
		if err := postRepo.CreatePost(ctx, post); err != nil {
			log.Fatalf("Failed to create post: %v", err)
		}

		postID := post.ID.Hex()
		for _, u := range users {
			if rand.Intn(4) == 0 {
				if _, err := postRepo.ToggleLike(ctx, postID, u.ID); err != nil {
					log.Fatalf("Failed to like post: %v", err)
				}
			}
		}
		for c := 0; c < rand.Intn(3); c++ {
			comment := models.Comment{
				AuthorID:  users[rand.Intn(len(users))].ID,
				Text:      gofakeit.Sentence(6),
				CreatedAt: time.Now(),
			}
			if _, err := postRepo.AddComment(ctx, postID, comment); err != nil {
				log.Fatalf("Failed to comment on post: %v", err)
			}
		}
	}
	log.Printf("Created %d posts", *postCount)
}
