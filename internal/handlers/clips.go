package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/foxxcyber/voicecart/internal/middleware"
)

// clipURLExpiry is how long a presigned clip download link stays valid
const clipURLExpiry = 15 * time.Minute

// ListVoiceClips returns the caller's stored audio clips with short-lived
// download links. Returns an empty list when clip storage is not configured.
func (h *Handler) ListVoiceClips(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return Error(c, fiber.StatusUnauthorized, "not authenticated")
	}

	if h.storage == nil {
		return Success(c, fiber.Map{"clips": []interface{}{}})
	}

	prefix := fmt.Sprintf("%d/", userID)
	clips, err := h.storage.ListClips(c.Context(), prefix)
	if err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to list audio clips")
	}

	type clipView struct {
		Key          string    `json:"key"`
		Size         int64     `json:"size"`
		LastModified time.Time `json:"last_modified"`
		URL          string    `json:"url,omitempty"`
	}

	views := make([]clipView, 0, len(clips))
	for _, clip := range clips {
		view := clipView{
			Key:          clip.Key,
			Size:         clip.Size,
			LastModified: clip.LastModified,
		}
		if url, err := h.storage.GetPresignedURL(c.Context(), clip.Key, clipURLExpiry); err == nil {
			view.URL = url
		}
		views = append(views, view)
	}

	return Success(c, fiber.Map{"clips": views})
}

// DeleteVoiceClip removes one of the caller's stored audio clips
func (h *Handler) DeleteVoiceClip(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return Error(c, fiber.StatusUnauthorized, "not authenticated")
	}

	if h.storage == nil {
		return Error(c, fiber.StatusServiceUnavailable, "audio storage is not configured")
	}

	key := c.Params("*")
	// Clips are namespaced by user id; never let a caller reach outside
	// their own prefix.
	if key == "" || strings.Contains(key, "..") {
		return Error(c, fiber.StatusBadRequest, "invalid clip key")
	}
	fullKey := fmt.Sprintf("%d/%s", userID, key)

	if err := h.storage.Delete(c.Context(), fullKey); err != nil {
		return Error(c, fiber.StatusInternalServerError, "failed to delete audio clip")
	}

	return Success(c, fiber.Map{"deleted": true})
}
