package handlers

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/foxxcyber/voicecart/internal/middleware"
)

// maxAudioSize caps uploaded clips at 10 MB
const maxAudioSize = 10 << 20

// ProcessVoiceAudio accepts a recorded audio clip, stores it (when storage
// is configured), sends it to the external recognizer, and runs the
// resulting transcript through the same pipeline as text input.
func (h *Handler) ProcessVoiceAudio(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return Error(c, fiber.StatusUnauthorized, "not authenticated")
	}

	if !h.transcriber.Enabled() {
		return Error(c, fiber.StatusServiceUnavailable, "audio transcription is not configured")
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "audio file is required")
	}
	if fileHeader.Size > maxAudioSize {
		return Error(c, fiber.StatusRequestEntityTooLarge, "audio file too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "failed to read audio file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return Error(c, fiber.StatusBadRequest, "failed to read audio file")
	}

	// Keep the clip if storage is configured; transcription proceeds
	// either way.
	if h.storage != nil {
		key := fmt.Sprintf("%d/%s%s", userID, uuid.NewString(), clipExtension(fileHeader.Filename))
		contentType := fileHeader.Header.Get("Content-Type")
		if _, err := h.storage.Upload(c.Context(), key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
			log.Printf("Warning: failed to store audio clip: %v", err)
		}
	}

	start := time.Now()
	result, err := h.transcriber.Transcribe(c.Context(), fileHeader.Filename, bytes.NewReader(data))
	if err != nil {
		log.Printf("Warning: transcription failed: %v", err)
		return Error(c, fiber.StatusBadGateway, "failed to transcribe audio")
	}
	log.Printf("Transcribed %d bytes in %s", len(data), time.Since(start).Round(time.Millisecond))

	if strings.TrimSpace(result.Text) == "" {
		return Error(c, fiber.StatusUnprocessableEntity, "no speech recognized")
	}

	resp := h.runVoicePipeline(c.Context(), userID, result.Text)
	return Success(c, fiber.Map{
		"language": result.Language,
		"result":   resp,
	})
}

// clipExtension returns a safe file extension for the stored clip
func clipExtension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".wav", ".mp3", ".ogg", ".webm", ".m4a", ".flac":
		return ext
	default:
		return ".bin"
	}
}
