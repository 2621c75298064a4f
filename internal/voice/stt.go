// ABOUTME: Speech-to-text over an OpenAI-compatible transcription endpoint.
// ABOUTME: Empty transcripts are reported as ErrUnintelligible.
package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrUnintelligible means the service answered but heard no speech.
var ErrUnintelligible = errors.New("speech not recognized")

// Recognizer transcribes an audio file.
type Recognizer interface {
	Recognize(ctx context.Context, path string) (string, error)
}

// WhisperConfig configures a Whisper-compatible transcription endpoint.
type WhisperConfig struct {
	URL      string
	APIKey   string
	Model    string
	Language string
	Timeout  time.Duration
}

// WhisperRecognizer calls POST {url}/v1/audio/transcriptions.
type WhisperRecognizer struct {
	cfg    WhisperConfig
	client *http.Client
	logger zerolog.Logger
}

// NewWhisperRecognizer creates a recognizer, filling defaults for empty fields.
func NewWhisperRecognizer(logger zerolog.Logger, cfg WhisperConfig) *WhisperRecognizer {
	if cfg.URL == "" {
		cfg.URL = DefaultOpenAIURL
	}
	cfg.URL = strings.TrimRight(cfg.URL, "/")
	if cfg.Model == "" {
		cfg.Model = "whisper-1"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &WhisperRecognizer{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger.With().Str("provider", "whisper").Logger(),
	}
}

// Recognize uploads the file at path and returns the transcript.
func (w *WhisperRecognizer) Recognize(ctx context.Context, path string) (string, error) {
	if w.cfg.APIKey == "" && w.cfg.URL == DefaultOpenAIURL {
		return "", errors.New("OpenAI API key not configured")
	}

	audio, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read audio: %w", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("write audio data: %w", err)
	}
	if err := mw.WriteField("model", w.cfg.Model); err != nil {
		return "", fmt.Errorf("write model field: %w", err)
	}
	if w.cfg.Language != "" {
		if err := mw.WriteField("language", w.cfg.Language); err != nil {
			return "", fmt.Errorf("write language field: %w", err)
		}
	}
	if err := mw.WriteField("response_format", "json"); err != nil {
		return "", fmt.Errorf("write format field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.URL+"/v1/audio/transcriptions", &buf)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if w.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+w.cfg.APIKey)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		w.logger.Error().Int("status", resp.StatusCode).Str("body", string(body)).Msg("transcription failed")
		return "", fmt.Errorf("transcription returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}

	text := strings.TrimSpace(result.Text)
	if text == "" {
		return "", ErrUnintelligible
	}

	w.logger.Debug().Int("text_len", len(text)).Msg("transcription complete")
	return text, nil
}
