package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foxxcyber/voicecart/internal/config"
	"github.com/foxxcyber/voicecart/internal/models"
	"github.com/foxxcyber/voicecart/internal/state"
)

const testUserID = 42

// newTestApp wires the session-backed handlers behind a stub auth layer
// that injects a fixed user id, so JWT issuance stays out of these tests.
func newTestApp(cfg *config.Config) (*fiber.App, *state.Store) {
	if cfg == nil {
		cfg = &config.Config{}
	}
	sessions := state.NewStore(time.Hour)
	h := New(nil, cfg, sessions)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", testUserID)
		return c.Next()
	})

	api := app.Group("/api")
	api.Post("/voice", h.ProcessVoiceCommand)
	list := api.Group("/list")
	list.Get("/", h.GetShoppingList)
	list.Put("/items/:item_id", h.UpdateListItem)
	list.Delete("/items/:item_id", h.RemoveListItem)
	list.Post("/clear-completed", h.ClearCompletedItems)
	suggestions := api.Group("/suggestions")
	suggestions.Get("/", h.GetSuggestions)
	suggestions.Get("/ai", h.GetAISuggestions)
	suggestions.Post("/accept", h.AcceptSuggestion)

	return app, sessions
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var wrapper struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   string          `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &wrapper), "body: %s", body)
	require.True(t, wrapper.Success, "error: %s", wrapper.Error)
	require.NoError(t, json.Unmarshal(wrapper.Data, out))
}

func TestProcessVoiceCommand_Add(t *testing.T) {
	app, _ := newTestApp(nil)

	resp := postJSON(t, app, "/api/voice", models.VoiceRequest{Transcript: "add milk"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result models.VoiceResponse
	decodeData(t, resp, &result)

	assert.Equal(t, "add milk", result.Transcript)
	assert.Equal(t, models.ActionAdd, result.Command.Action)
	assert.Equal(t, "milk", result.Command.Item)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "milk", result.Items[0].Name)
	assert.Equal(t, "dairy", result.Items[0].Category)
	assert.NotEmpty(t, result.Suggestions)
}

func TestProcessVoiceCommand_UnknownLeavesListAlone(t *testing.T) {
	app, sessions := newTestApp(nil)
	sessions.AddItem(testUserID, "bread", 1, "pantry")

	resp := postJSON(t, app, "/api/voice", models.VoiceRequest{Transcript: "xyz nonsense"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result models.VoiceResponse
	decodeData(t, resp, &result)

	assert.Equal(t, models.IntentUnknown, result.Command.Intent)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "bread", result.Items[0].Name)
}

func TestProcessVoiceCommand_EmptyTranscript(t *testing.T) {
	app, _ := newTestApp(nil)

	resp := postJSON(t, app, "/api/voice", models.VoiceRequest{Transcript: "   "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetShoppingList(t *testing.T) {
	app, sessions := newTestApp(nil)
	sessions.AddItem(testUserID, "milk", 2, "dairy")
	item := sessions.AddItem(testUserID, "bread", 1, "pantry")
	completed := true
	_, err := sessions.UpdateItem(testUserID, item.ID, models.UpdateItemRequest{Completed: &completed})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/list/", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Items          []models.ShoppingItem `json:"items"`
		ItemCount      int                   `json:"item_count"`
		CompletedCount int                   `json:"completed_count"`
	}
	decodeData(t, resp, &result)

	assert.Equal(t, 2, result.ItemCount)
	assert.Equal(t, 1, result.CompletedCount)
	require.Len(t, result.Items, 2)
}

func TestUpdateListItem(t *testing.T) {
	app, sessions := newTestApp(nil)
	item := sessions.AddItem(testUserID, "milk", 1, "dairy")

	quantity := 4
	payload, _ := json.Marshal(models.UpdateItemRequest{Quantity: &quantity})
	req := httptest.NewRequest(http.MethodPut, "/api/list/items/"+item.ID, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.ShoppingItem
	decodeData(t, resp, &updated)
	assert.Equal(t, 4, updated.Quantity)

	// Unknown item id maps to 404
	req = httptest.NewRequest(http.MethodPut, "/api/list/items/no-such-id", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Empty update body is rejected
	req = httptest.NewRequest(http.MethodPut, "/api/list/items/"+item.ID, strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRemoveListItem(t *testing.T) {
	app, sessions := newTestApp(nil)
	item := sessions.AddItem(testUserID, "milk", 1, "dairy")

	req := httptest.NewRequest(http.MethodDelete, "/api/list/items/"+item.ID, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, sessions.Items(testUserID))

	req = httptest.NewRequest(http.MethodDelete, "/api/list/items/"+item.ID, nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestClearCompletedItems(t *testing.T) {
	app, sessions := newTestApp(nil)
	item := sessions.AddItem(testUserID, "milk", 1, "dairy")
	sessions.AddItem(testUserID, "bread", 1, "pantry")
	completed := true
	_, err := sessions.UpdateItem(testUserID, item.ID, models.UpdateItemRequest{Completed: &completed})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/list/clear-completed", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Removed int `json:"removed"`
	}
	decodeData(t, resp, &result)
	assert.Equal(t, 1, result.Removed)
	require.Len(t, sessions.Items(testUserID), 1)
}

func TestGetSuggestions(t *testing.T) {
	app, sessions := newTestApp(nil)
	sessions.AddItem(testUserID, "milk", 1, "dairy")

	req := httptest.NewRequest(http.MethodGet, "/api/suggestions/", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var suggestions []models.Suggestion
	decodeData(t, resp, &suggestions)
	require.NotEmpty(t, suggestions)
	assert.LessOrEqual(t, len(suggestions), 10)
	for _, s := range suggestions {
		assert.NotEqual(t, "milk", strings.ToLower(s.Name))
	}
}

func TestGetAISuggestions_DisabledReturnsEmpty(t *testing.T) {
	app, _ := newTestApp(&config.Config{AISuggestionsEnabled: false})

	req := httptest.NewRequest(http.MethodGet, "/api/suggestions/ai", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var suggestions []models.Suggestion
	decodeData(t, resp, &suggestions)
	assert.Empty(t, suggestions)
}

func TestAcceptSuggestion(t *testing.T) {
	app, sessions := newTestApp(nil)

	resp := postJSON(t, app, "/api/suggestions/accept", AcceptSuggestionRequest{Name: "almond milk"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var item models.ShoppingItem
	decodeData(t, resp, &item)
	assert.Equal(t, "almond milk", item.Name)
	assert.Equal(t, 1, item.Quantity)
	assert.Equal(t, "dairy", item.Category)

	require.Len(t, sessions.Items(testUserID), 1)

	resp = postJSON(t, app, "/api/suggestions/accept", AcceptSuggestionRequest{Name: "  "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProcessVoiceCommand_RemoveFlow(t *testing.T) {
	app, _ := newTestApp(nil)

	postJSON(t, app, "/api/voice", models.VoiceRequest{Transcript: "add two apples"})
	resp := postJSON(t, app, "/api/voice", models.VoiceRequest{Transcript: "remove apples"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result models.VoiceResponse
	decodeData(t, resp, &result)
	assert.Equal(t, models.ActionRemove, result.Command.Action)
	assert.Empty(t, result.Items)
}
