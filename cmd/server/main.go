package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/foxxcyber/voicecart/internal/config"
	"github.com/foxxcyber/voicecart/internal/database"
	"github.com/foxxcyber/voicecart/internal/handlers"
	"github.com/foxxcyber/voicecart/internal/middleware"
	"github.com/foxxcyber/voicecart/internal/services"
	"github.com/foxxcyber/voicecart/internal/state"
)

func main() {
	// Load .env file if it exists
	godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create admin user if it doesn't exist
	if err := database.EnsureAdminUser(db, cfg); err != nil {
		log.Printf("Warning: Could not ensure admin user: %v", err)
	}

	// Per-user voice session state (transient by design)
	sessions := state.NewStore(cfg.SessionTTL)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Create handler with dependencies
	h := handlers.New(db, cfg, sessions)

	// Initialize audio clip storage if configured
	if cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
		storageService, err := services.NewStorageService(
			cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3Region, cfg.S3UseSSL,
		)
		if err != nil {
			log.Printf("Warning: Failed to initialize audio storage: %v", err)
		} else {
			if err := storageService.EnsureBucket(context.Background()); err != nil {
				log.Printf("Warning: Failed to ensure audio bucket exists: %v", err)
			}
			h.SetStorage(storageService)
			log.Println("Audio clip storage initialized")
		}
	} else {
		log.Println("S3 credentials not configured, audio clips will not be retained")
	}

	if cfg.OpenAIAPIKey == "" {
		log.Println("OPENAI_API_KEY not set, AI suggestions and audio transcription disabled")
	}

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// API routes
	api := app.Group("/api")

	// Auth routes (public)
	auth := api.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Get("/me", middleware.AuthRequired(cfg), h.GetCurrentUser)
	auth.Put("/me", middleware.AuthRequired(cfg), h.UpdateCurrentUser)
	auth.Post("/refresh", middleware.AuthRequired(cfg), h.RefreshToken)

	// Voice routes (authenticated)
	voice := api.Group("/voice", middleware.AuthRequired(cfg))
	voice.Post("/", h.ProcessVoiceCommand)
	voice.Post("/audio", h.ProcessVoiceAudio)
	voice.Get("/clips", h.ListVoiceClips)
	voice.Delete("/clips/*", h.DeleteVoiceClip)

	// Shopping list routes (authenticated, session-scoped)
	list := api.Group("/list", middleware.AuthRequired(cfg))
	list.Get("/", h.GetShoppingList)
	list.Put("/items/:item_id", h.UpdateListItem)
	list.Delete("/items/:item_id", h.RemoveListItem)
	list.Post("/clear-completed", h.ClearCompletedItems)

	// Suggestion routes (authenticated)
	suggestions := api.Group("/suggestions", middleware.AuthRequired(cfg))
	suggestions.Get("/", h.GetSuggestions)
	suggestions.Get("/ai", h.GetAISuggestions)
	suggestions.Post("/accept", h.AcceptSuggestion)

	// Admin routes
	admin := api.Group("/admin", middleware.AuthRequired(cfg), middleware.AdminRequired())
	admin.Get("/users", h.AdminListUsers)

	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
