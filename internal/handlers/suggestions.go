package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/foxxcyber/voicecart/internal/middleware"
	"github.com/foxxcyber/voicecart/internal/services"
)

// GetSuggestions runs the rule-based suggestion engine over the user's
// current list and purchase history.
func (h *Handler) GetSuggestions(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return Error(c, fiber.StatusUnauthorized, "not authenticated")
	}

	current, history := h.sessions.Context(userID)
	return Success(c, services.GenerateSuggestions(current, history))
}

// GetAISuggestions asks the external generation service for suggestions.
// Degrades to an empty list when the service is unavailable or replies
// with garbage; the response status is 200 either way.
func (h *Handler) GetAISuggestions(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return Error(c, fiber.StatusUnauthorized, "not authenticated")
	}

	if !h.cfg.AISuggestionsEnabled || !h.ai.Enabled() {
		return Success(c, []interface{}{})
	}

	current, history := h.sessions.Context(userID)
	suggestions := h.ai.FetchSuggestions(c.Context(), services.UserContext{
		History:     refNames(history),
		CurrentList: refNames(current),
		Season:      services.CurrentSeason(),
	})

	return Success(c, suggestions)
}

// AcceptSuggestionRequest is the request body for accepting a suggestion
type AcceptSuggestionRequest struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Quantity int    `json:"quantity,omitempty"`
}

// AcceptSuggestion adds a suggested item onto the shopping list
func (h *Handler) AcceptSuggestion(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return Error(c, fiber.StatusUnauthorized, "not authenticated")
	}

	var req AcceptSuggestionRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return Error(c, fiber.StatusBadRequest, "name is required")
	}

	category := req.Category
	if category == "" {
		category = services.ResolveCategory(req.Name)
	}

	item := h.sessions.AddItem(userID, req.Name, req.Quantity, category)
	return c.Status(fiber.StatusCreated).JSON(APIResponse{
		Success: true,
		Data:    item,
	})
}
