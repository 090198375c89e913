package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/foxxcyber/voicecart/internal/config"
	"github.com/foxxcyber/voicecart/internal/database"
	"github.com/foxxcyber/voicecart/internal/services"
	"github.com/foxxcyber/voicecart/internal/state"
)

// Handler holds all handler dependencies
type Handler struct {
	db          *database.DB
	cfg         *config.Config
	sessions    *state.Store
	translator  *services.TranslateService
	ai          *services.AISuggestionService
	transcriber *services.TranscriberService
	storage     *services.StorageService // nil when audio storage is disabled
}

// New creates a new Handler instance
func New(db *database.DB, cfg *config.Config, sessions *state.Store) *Handler {
	return &Handler{
		db:          db,
		cfg:         cfg,
		sessions:    sessions,
		translator:  services.NewTranslateService(cfg.TranslateURL),
		ai:          services.NewAISuggestionService(cfg.OpenAIAPIKey),
		transcriber: services.NewTranscriberService(cfg.OpenAIAPIKey),
	}
}

// SetStorage attaches the optional audio clip storage backend
func (h *Handler) SetStorage(storage *services.StorageService) {
	h.storage = storage
}

// ErrorHandler is a custom error handler for Fiber
func ErrorHandler(c *fiber.Ctx, err error) error {
	// Default to 500
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	// Check if it's a Fiber error
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}

// APIResponse is a standard API response structure
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success returns a successful response
func Success(c *fiber.Ctx, data interface{}) error {
	return c.JSON(APIResponse{
		Success: true,
		Data:    data,
	})
}

// Error returns an error response
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(APIResponse{
		Success: false,
		Error:   message,
	})
}
