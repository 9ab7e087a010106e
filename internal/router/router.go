package router

import (
	"log"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/tanvir-rifat07/chirplink/internal/cache"
	"github.com/tanvir-rifat07/chirplink/internal/handlers"
	"github.com/tanvir-rifat07/chirplink/internal/middleware"
	"github.com/tanvir-rifat07/chirplink/internal/models"
	"github.com/tanvir-rifat07/chirplink/internal/repositories"
	"github.com/tanvir-rifat07/chirplink/pkg/config"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client, c *cache.Cache) {
	// AutoMigrate PostgreSQL models
	if err := pgdb.AutoMigrate(&models.User{}, &models.Follow{}); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mgClient.Database(cfg.MongoDatabase))

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/auth")
	authHandler := handlers.NewAuthHandler(userRepo, followRepo, cfg.JWTSecret, cfg.TokenTTL)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Public read-only routes ---
	public := e.Group("/api")
	userHandler := handlers.NewUserHandler(userRepo, followRepo)
	userHandler.RegisterPublicRoutes(public)
	postHandler := handlers.NewPostHandler(postRepo, userRepo, c)
	postHandler.RegisterPublicRoutes(public)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	log.Println("JWT authentication middleware applied to protected routes.")

	userHandler.RegisterProfileRoutes(api)
	postHandler.RegisterPostRoutes(api)

	feedHandler := handlers.NewFeedHandler(postRepo, userRepo, followRepo, c)
	feedHandler.RegisterFeedRoutes(api)

	followHandler := handlers.NewFollowHandler(followRepo, userRepo)
	followHandler.RegisterFollowRoutes(api)

	log.Println("All routes configured.")
}
