package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/foxxcyber/voicecart/internal/middleware"
	"github.com/foxxcyber/voicecart/internal/models"
	"github.com/foxxcyber/voicecart/internal/services"
)

// ProcessVoiceCommand interprets a spoken transcript, applies the resulting
// command to the user's list, and returns the updated list with fresh
// suggestions.
func (h *Handler) ProcessVoiceCommand(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return Error(c, fiber.StatusUnauthorized, "not authenticated")
	}

	var req models.VoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if strings.TrimSpace(req.Transcript) == "" {
		return Error(c, fiber.StatusBadRequest, "transcript is required")
	}

	resp := h.runVoicePipeline(c.Context(), userID, req.Transcript)
	return Success(c, resp)
}

// runVoicePipeline is the shared transcript path for text and audio input:
// optional translation, interpretation, list mutation, then suggestions.
// An unknown command leaves the list untouched and still returns
// suggestions, so the client can prompt the user to repeat.
func (h *Handler) runVoicePipeline(ctx context.Context, userID int, transcript string) models.VoiceResponse {
	translated := transcript
	if h.cfg.TranslateEnabled {
		translated = h.translator.ToEnglish(ctx, transcript)
	}

	cmd := services.ParseVoiceCommand(translated)
	h.sessions.Apply(userID, cmd)

	current, history := h.sessions.Context(userID)
	suggestions := services.GenerateSuggestions(current, history)

	if h.cfg.AISuggestionsEnabled && h.ai.Enabled() {
		aiSuggestions := h.ai.FetchSuggestions(ctx, services.UserContext{
			History:     refNames(history),
			CurrentList: refNames(current),
			Season:      services.CurrentSeason(),
		})
		suggestions = services.MergeRanked(suggestions, aiSuggestions)
	}

	resp := models.VoiceResponse{
		Transcript:  transcript,
		Command:     cmd,
		Items:       h.sessions.Items(userID),
		Suggestions: suggestions,
	}
	if translated != transcript {
		resp.Translated = translated
	}
	return resp
}

// refNames flattens item refs to their display names
func refNames(refs []models.ItemRef) []string {
	names := make([]string, len(refs))
	for i, ref := range refs {
		names[i] = ref.Name
	}
	return names
}
