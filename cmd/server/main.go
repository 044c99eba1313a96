package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/medicheck/medicheck-api/internal/config"
	"github.com/medicheck/medicheck-api/internal/constants"
	"github.com/medicheck/medicheck-api/internal/database"
	"github.com/medicheck/medicheck-api/internal/handlers"
	"github.com/medicheck/medicheck-api/internal/middleware"
	"github.com/medicheck/medicheck-api/internal/repository"
	"github.com/medicheck/medicheck-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize AI service
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Initialize repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	diseaseRepo := repository.NewDiseaseRepository(db)
	tagRepo := repository.NewTagRepository(db)

	authService := services.NewAuthService(userRepo)
	diseaseService := services.NewDiseaseService(diseaseRepo)
	tagService := services.NewTagService(tagRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	diseaseHandler := handlers.NewDiseaseHandler(diseaseService, aiService)
	tagHandler := handlers.NewTagHandler(tagService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Medicheck API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Disease routes (protected)
		diseases := api.Group("/diseases")
		diseases.Use(middleware.RequireAuth())
		{
			diseases.GET("", diseaseHandler.ListDiseases)
			diseases.POST("", diseaseHandler.CreateDisease)
			diseases.POST("/suggest", diseaseHandler.SuggestDisease)
			diseases.GET("/:id", diseaseHandler.GetDisease)
			diseases.PUT("/:id", diseaseHandler.UpdateDisease)
			diseases.PATCH("/:id", diseaseHandler.UpdateDisease)
			diseases.DELETE("/:id", diseaseHandler.DeleteDisease)
		}

		// Tag routes (protected)
		tags := api.Group("/tags")
		tags.Use(middleware.RequireAuth())
		{
			tags.GET("", tagHandler.ListTags)
			tags.POST("", tagHandler.CreateTag)
			tags.PUT("/:id", tagHandler.UpdateTag)
			tags.PATCH("/:id", tagHandler.UpdateTag)
			tags.DELETE("/:id", tagHandler.DeleteTag)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
