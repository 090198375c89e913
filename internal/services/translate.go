package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"
)

const (
	defaultTranslateURL     = "https://libretranslate.de/translate"
	translateRequestTimeout = 10 * time.Second
)

// TranslateService normalizes transcripts to English before interpretation.
// Failures are non-fatal: the input text is returned unchanged so the
// multilingual keyword rules in the parser remain the fallback.
type TranslateService struct {
	apiURL     string
	httpClient *http.Client
}

// NewTranslateService creates a translation client. An empty apiURL uses
// the public LibreTranslate endpoint.
func NewTranslateService(apiURL string) *TranslateService {
	if apiURL == "" {
		apiURL = defaultTranslateURL
	}
	return &TranslateService{
		apiURL: apiURL,
		httpClient: &http.Client{
			Timeout: translateRequestTimeout,
		},
	}
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// ToEnglish translates text into English, auto-detecting the source
// language. On any failure the original text is returned.
func (s *TranslateService) ToEnglish(ctx context.Context, text string) string {
	payload := translateRequest{
		Q:      text,
		Source: "auto",
		Target: "en",
		Format: "text",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return text
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return text
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("Warning: translation call failed: %v", err)
		return text
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil || resp.StatusCode != http.StatusOK {
		log.Printf("Warning: translation returned status %d", resp.StatusCode)
		return text
	}

	var result translateResponse
	if err := json.Unmarshal(respBody, &result); err != nil || result.TranslatedText == "" {
		return text
	}
	return result.TranslatedText
}
