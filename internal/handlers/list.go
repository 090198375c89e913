package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/foxxcyber/voicecart/internal/middleware"
	"github.com/foxxcyber/voicecart/internal/models"
	"github.com/foxxcyber/voicecart/internal/state"
)

// GetShoppingList returns the user's current session list
func (h *Handler) GetShoppingList(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return Error(c, fiber.StatusUnauthorized, "not authenticated")
	}

	items := h.sessions.Items(userID)
	completed := 0
	for _, item := range items {
		if item.Completed {
			completed++
		}
	}

	return Success(c, fiber.Map{
		"items":           items,
		"item_count":      len(items),
		"completed_count": completed,
	})
}

// UpdateListItem changes quantity or completion state of an item
func (h *Handler) UpdateListItem(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return Error(c, fiber.StatusUnauthorized, "not authenticated")
	}

	itemID := c.Params("item_id")
	if itemID == "" {
		return Error(c, fiber.StatusBadRequest, "invalid item id")
	}

	var req models.UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Quantity == nil && req.Completed == nil {
		return Error(c, fiber.StatusBadRequest, "nothing to update")
	}

	item, err := h.sessions.UpdateItem(userID, itemID, req)
	if err != nil {
		if errors.Is(err, state.ErrItemNotFound) {
			return Error(c, fiber.StatusNotFound, "item not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to update item")
	}

	return Success(c, item)
}

// RemoveListItem deletes an item from the list
func (h *Handler) RemoveListItem(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return Error(c, fiber.StatusUnauthorized, "not authenticated")
	}

	itemID := c.Params("item_id")
	if itemID == "" {
		return Error(c, fiber.StatusBadRequest, "invalid item id")
	}

	if err := h.sessions.RemoveItem(userID, itemID); err != nil {
		if errors.Is(err, state.ErrItemNotFound) {
			return Error(c, fiber.StatusNotFound, "item not found")
		}
		return Error(c, fiber.StatusInternalServerError, "failed to remove item")
	}

	return Success(c, fiber.Map{"removed": true})
}

// ClearCompletedItems removes all completed items from the list
func (h *Handler) ClearCompletedItems(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return Error(c, fiber.StatusUnauthorized, "not authenticated")
	}

	removed := h.sessions.ClearCompleted(userID)
	return Success(c, fiber.Map{"removed": removed})
}
