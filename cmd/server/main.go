package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/tanvir-rifat07/chirplink/internal/cache"
	"github.com/tanvir-rifat07/chirplink/internal/router"
	"github.com/tanvir-rifat07/chirplink/pkg/config"
	"github.com/tanvir-rifat07/chirplink/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize the Redis cache (optional, degrades to no-op)
	c := cache.New(cfg.RedisAddr)

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Validator
	e.Validator = validators.NewValidator()

	// Setup routes and dependencies
	router.SetupRoutes(e, cfg, db.Postgres, db.Mongo, c)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
