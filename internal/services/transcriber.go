package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/foxxcyber/voicecart/internal/models"
)

const (
	transcriptionsURL        = "https://api.openai.com/v1/audio/transcriptions"
	transcriptionModel       = "whisper-1"
	transcribeRequestTimeout = 30 * time.Second
)

var (
	ErrTranscriberDisabled = errors.New("transcription service not configured")
	ErrTranscriptionFailed = errors.New("transcription service error")
)

// TranscriberService sends recorded audio clips to the external speech
// recognizer and returns the transcript. Speech-to-text itself happens
// entirely on the remote side; this is only the boundary client.
type TranscriberService struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
}

// NewTranscriberService creates a transcription client
func NewTranscriberService(apiKey string) *TranscriberService {
	return &TranscriberService{
		apiKey: apiKey,
		apiURL: transcriptionsURL,
		httpClient: &http.Client{
			Timeout: transcribeRequestTimeout,
		},
	}
}

// Enabled reports whether the service is configured with an API key
func (s *TranscriberService) Enabled() bool {
	return s.apiKey != ""
}

type transcriptionResponse struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// Transcribe uploads an audio clip and returns the recognized text with
// the detected language.
func (s *TranscriberService) Transcribe(ctx context.Context, filename string, audio io.Reader) (*models.TranscriptionResult, error) {
	if !s.Enabled() {
		return nil, ErrTranscriberDisabled
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build transcription request: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return nil, fmt.Errorf("failed to read audio: %w", err)
	}
	if err := writer.WriteField("model", transcriptionModel); err != nil {
		return nil, fmt.Errorf("failed to build transcription request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build transcription request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build transcription request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transcription call failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcription response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrTranscriptionFailed, resp.StatusCode)
	}

	var result transcriptionResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to decode transcription response: %w", err)
	}

	return &models.TranscriptionResult{
		Text:     result.Text,
		Language: result.Language,
	}, nil
}
