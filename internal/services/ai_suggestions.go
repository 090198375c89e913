package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/foxxcyber/voicecart/internal/models"
)

const (
	chatCompletionsURL = "https://api.openai.com/v1/chat/completions"
	aiModel            = "gpt-4o-mini"
	aiRequestTimeout   = 15 * time.Second
	aiSuggestionCount  = 5
)

// AISuggestionService asks a generative model for shopping suggestions.
// It is best-effort by contract: every failure path (network, non-200,
// missing or malformed JSON) degrades to an empty result so callers can
// always fall back to the rule-based engine.
type AISuggestionService struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
}

// UserContext is the purchase context sent to the generation service
type UserContext struct {
	History     []string
	CurrentList []string
	Season      string
}

// NewAISuggestionService creates a new AI suggestion client
func NewAISuggestionService(apiKey string) *AISuggestionService {
	return &AISuggestionService{
		apiKey: apiKey,
		apiURL: chatCompletionsURL,
		httpClient: &http.Client{
			Timeout: aiRequestTimeout,
		},
	}
}

// Enabled reports whether the service is configured with an API key
func (s *AISuggestionService) Enabled() bool {
	return s.apiKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// rawSuggestion is one object from the model's JSON array. Confidence is
// kept loose because models sometimes emit it as a quoted string.
type rawSuggestion struct {
	Name       string          `json:"name"`
	Reason     string          `json:"reason"`
	Category   string          `json:"category"`
	Confidence json.RawMessage `json:"confidence"`
}

// FetchSuggestions asks the model for exactly 5 suggestions for the given
// context. The reply may wrap the JSON array in prose; the first array
// substring is extracted and parsed. Returns an empty slice on any failure.
func (s *AISuggestionService) FetchSuggestions(ctx context.Context, user UserContext) []models.Suggestion {
	if !s.Enabled() {
		return []models.Suggestion{}
	}

	payload := chatCompletionRequest{
		Model:       aiModel,
		Messages:    []chatMessage{{Role: "user", Content: buildPrompt(user)}},
		Temperature: 0.7,
		MaxTokens:   300,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Warning: AI suggestions request encode failed: %v", err)
		return []models.Suggestion{}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		log.Printf("Warning: AI suggestions request failed: %v", err)
		return []models.Suggestion{}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("Warning: AI suggestions call failed: %v", err)
		return []models.Suggestion{}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("Warning: AI suggestions read failed: %v", err)
		return []models.Suggestion{}
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("Warning: AI suggestions returned status %d", resp.StatusCode)
		return []models.Suggestion{}
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		log.Printf("Warning: AI suggestions decode failed: %v", err)
		return []models.Suggestion{}
	}
	if len(completion.Choices) == 0 {
		return []models.Suggestion{}
	}

	return ParseSuggestionsReply(completion.Choices[0].Message.Content)
}

// ParseSuggestionsReply extracts and normalizes the suggestion array from a
// raw model reply. The service may prepend or append prose around the JSON.
func ParseSuggestionsReply(reply string) []models.Suggestion {
	start := strings.Index(reply, "[")
	end := strings.LastIndex(reply, "]")
	if start < 0 || end < start {
		log.Printf("Warning: no JSON array in AI suggestions reply")
		return []models.Suggestion{}
	}

	var parsed []rawSuggestion
	if err := json.Unmarshal([]byte(reply[start:end+1]), &parsed); err != nil {
		log.Printf("Warning: AI suggestions array parse failed: %v", err)
		return []models.Suggestion{}
	}

	out := make([]models.Suggestion, 0, len(parsed))
	for idx, item := range parsed {
		suggestion := models.Suggestion{
			ID:         fmt.Sprintf("ai-%d", idx),
			Name:       item.Name,
			Category:   item.Category,
			Reason:     item.Reason,
			Confidence: parseConfidence(item.Confidence),
		}
		if suggestion.Category == "" {
			suggestion.Category = "General"
		}
		if suggestion.Reason == "" {
			suggestion.Reason = "AI suggestion"
		}
		out = append(out, suggestion)
	}
	return out
}

// parseConfidence tolerates missing or non-numeric confidence values
func parseConfidence(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0.8
	}
	var value float64
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0.8
	}
	return value
}

// buildPrompt renders the fixed instruction template for the model
func buildPrompt(user UserContext) string {
	history := "none"
	if len(user.History) > 0 {
		history = strings.Join(user.History, ", ")
	}
	current := "none"
	if len(user.CurrentList) > 0 {
		current = strings.Join(user.CurrentList, ", ")
	}
	season := user.Season
	if season == "" {
		season = "unknown"
	}

	return fmt.Sprintf(`You are a shopping assistant.
Generate exactly %d product suggestions in STRICT JSON format.
Do not include explanations or extra text. Only output a JSON array.

Each suggestion object must have:
- name (string)
- reason (string)  // must specify if it's "History", "Seasonal", or "Substitute"
- category (string)
- confidence (number between 0 and 1)

Context:
- Purchase history: %s
- Current shopping list: %s
- Season: %s

Rules:
1. Recommend items from purchase history that are NOT in the current shopping list.
2. Recommend at least one seasonal item appropriate for the given season.
3. If an item in history might need a healthier/alternative option, suggest a substitute.
4. Keep all output in a single JSON array of %d objects.`,
		aiSuggestionCount, history, current, season, aiSuggestionCount)
}
