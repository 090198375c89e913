package models

import (
	"time"
)

// Priority levels for shopping list items
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// CommandAction is the coarse operation requested on the shopping list
type CommandAction string

const (
	ActionAdd      CommandAction = "add"
	ActionRemove   CommandAction = "remove"
	ActionSearch   CommandAction = "search"
	ActionClear    CommandAction = "clear"
	ActionComplete CommandAction = "complete"
)

// IntentUnknown marks a transcript that matched no trigger group.
// Callers must treat it as a no-op.
const IntentUnknown = "unknown"

// ShoppingItem represents a single entry on a user's shopping list
type ShoppingItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"` // always >= 1
	Category  string    `json:"category"`
	Completed bool      `json:"completed"`
	AddedAt   time.Time `json:"added_at"`
	Priority  Priority  `json:"priority"`
}

// ItemRef is the minimal item view the suggestion engine operates on.
// Both the current list and the purchase history are sequences of these.
type ItemRef struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// VoiceCommand is the structured result of interpreting a transcript
type VoiceCommand struct {
	Action   CommandAction `json:"action"`
	Intent   string        `json:"intent"`
	Item     string        `json:"item,omitempty"`
	Quantity int           `json:"quantity,omitempty"`
	Category string        `json:"category,omitempty"`
	Raw      string        `json:"raw"` // original transcript, kept for diagnostics
}

// Suggestion is a single ranked recommendation
type Suggestion struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"` // 0..1, ranking only
	Seasonal   bool    `json:"seasonal,omitempty"`
	Substitute bool    `json:"substitute,omitempty"`
}

// Request types

// VoiceRequest is the request body for submitting a transcript
type VoiceRequest struct {
	Transcript string `json:"transcript"`
}

// VoiceResponse is the result of processing a voice command
type VoiceResponse struct {
	Transcript  string         `json:"transcript"`
	Translated  string         `json:"translated,omitempty"`
	Command     VoiceCommand   `json:"command"`
	Items       []ShoppingItem `json:"items"`
	Suggestions []Suggestion   `json:"suggestions"`
}

// UpdateItemRequest is the request body for updating a list item
type UpdateItemRequest struct {
	Quantity  *int  `json:"quantity,omitempty"`
	Completed *bool `json:"completed,omitempty"`
}

// TranscriptionResult is what the external recognizer returns for an audio clip
type TranscriptionResult struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
}
