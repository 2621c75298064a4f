// ABOUTME: Client for a local Ollama server's non-streaming generate API.
// ABOUTME: Implements Generator so the coach can swap in test doubles.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/harperreed/coach/internal/logging"
	"github.com/rs/zerolog"
)

// Defaults for a stock local Ollama install.
const (
	DefaultURL         = "http://localhost:11434"
	DefaultModel       = "mistral"
	DefaultTemperature = 0.7
)

// ErrEmptyResponse is returned when the model produced no text.
var ErrEmptyResponse = errors.New("empty response from model")

// Generator turns a prompt into model text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// OllamaConfig holds Ollama client configuration.
type OllamaConfig struct {
	URL         string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// DefaultOllamaConfig returns the local defaults.
func DefaultOllamaConfig() *OllamaConfig {
	return &OllamaConfig{
		URL:         DefaultURL,
		Model:       DefaultModel,
		Temperature: DefaultTemperature,
		Timeout:     120 * time.Second,
	}
}

// OllamaClient talks to /api/generate.
type OllamaClient struct {
	baseURL     string
	model       string
	temperature float64
	httpClient  *http.Client
	logger      zerolog.Logger
}

// Compile-time check that OllamaClient implements Generator.
var _ Generator = (*OllamaClient)(nil)

// NewOllamaClient creates a client. Empty config fields fall back to defaults.
func NewOllamaClient(logger zerolog.Logger, cfg *OllamaConfig) *OllamaClient {
	def := DefaultOllamaConfig()
	if cfg == nil {
		cfg = def
	}

	c := &OllamaClient{
		baseURL:     strings.TrimRight(cfg.URL, "/"),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		logger:      logging.Component(logger, "ollama"),
	}
	if c.baseURL == "" {
		c.baseURL = def.URL
	}
	if c.model == "" {
		c.model = def.Model
	}
	if cfg.Timeout == 0 {
		c.httpClient.Timeout = def.Timeout
	}
	return c
}

// Model returns the model name sent with each request.
func (c *OllamaClient) Model() string {
	return c.model
}

type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type generateResponse struct {
	Model     string `json:"model"`
	Response  string `json:"response"`
	Done      bool   `json:"done"`
	EvalCount int    `json:"eval_count"`
}

// Generate sends prompt to the model and returns the raw response text.
func (c *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:   c.model,
		Prompt:  prompt,
		Stream:  false,
		Options: map[string]any{"temperature": c.temperature},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/api/generate", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	c.logger.Debug().Str("model", c.model).Int("prompt_len", len(prompt)).Msg("sending generate request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if strings.TrimSpace(out.Response) == "" {
		return "", ErrEmptyResponse
	}

	c.logger.Debug().
		Int("eval_count", out.EvalCount).
		Dur("elapsed", time.Since(start)).
		Msg("generate complete")

	return out.Response, nil
}

// Health checks that the server answers /api/tags.
func (c *OllamaClient) Health(ctx context.Context) error {
	url := fmt.Sprintf("%s/api/tags", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create health request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama health check returned status %d", resp.StatusCode)
	}
	return nil
}
