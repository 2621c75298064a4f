// ABOUTME: Coach configuration management with backend and service selection.
// ABOUTME: Handles settings, storage backend factory, and provider construction.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/coach/internal/llm"
	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/storage"
	"github.com/harperreed/coach/internal/tips"
	"github.com/harperreed/coach/internal/voice"
	"github.com/rs/zerolog"
)

// Config stores coach tool configuration.
type Config struct {
	// Backend selects the storage backend: "csv" (default) or "sqlite".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for data storage.
	// CSV puts user_logs.csv, chat_history.csv and tip_log.csv here.
	// SQLite puts coach.db here. Supports ~ expansion.
	DataDir string `json:"data_dir,omitempty"`

	// AudioDir holds response.mp3. Defaults to DataDir/audio.
	AudioDir string `json:"audio_dir,omitempty"`

	// TipsFile is an optional CSV of tip,category rows replacing the
	// built-in tips.
	TipsFile string `json:"tips_file,omitempty"`

	Ollama *OllamaSettings `json:"ollama,omitempty"`
	TTS    *TTSSettings    `json:"tts,omitempty"`
	STT    *STTSettings    `json:"stt,omitempty"`
}

// OllamaSettings configures the local model server.
type OllamaSettings struct {
	URL         string   `json:"url,omitempty"`
	Model       string   `json:"model,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
}

// TTSSettings configures speech synthesis.
type TTSSettings struct {
	// Provider is "google" (default) or "openai".
	Provider string `json:"provider,omitempty"`
	URL      string `json:"url,omitempty"`
	APIKey   string `json:"api_key,omitempty"`
	Model    string `json:"model,omitempty"`
	Voice    string `json:"voice,omitempty"`
	Lang     string `json:"lang,omitempty"`
}

// STTSettings configures a Whisper-compatible transcription endpoint.
type STTSettings struct {
	URL      string `json:"url,omitempty"`
	APIKey   string `json:"api_key,omitempty"`
	Model    string `json:"model,omitempty"`
	Language string `json:"language,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "csv".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "csv"
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetAudioDir returns the directory for synthesized speech.
func (c *Config) GetAudioDir() string {
	if c.AudioDir == "" {
		return filepath.Join(c.GetDataDir(), "audio")
	}
	return ExpandPath(c.AudioDir)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	return c.OpenBackend(c.GetBackend())
}

// OpenBackend opens the named backend in the configured data directory.
func (c *Config) OpenBackend(backend string) (storage.Repository, error) {
	dataDir := c.GetDataDir()

	switch backend {
	case "csv":
		return storage.NewCSVStore(dataDir)
	case "sqlite":
		dbPath := filepath.Join(dataDir, "coach.db")
		return storage.Open(dbPath)
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// LoadTips returns the tips from TipsFile, or the built-in list when unset.
func (c *Config) LoadTips() ([]models.Tip, error) {
	if c.TipsFile == "" {
		return tips.DefaultTips(), nil
	}
	return tips.LoadCSV(ExpandPath(c.TipsFile))
}

// OllamaConfig returns client settings with defaults applied.
func (c *Config) OllamaConfig() *llm.OllamaConfig {
	cfg := llm.DefaultOllamaConfig()
	if c.Ollama == nil {
		return cfg
	}
	if c.Ollama.URL != "" {
		cfg.URL = c.Ollama.URL
	}
	if c.Ollama.Model != "" {
		cfg.Model = c.Ollama.Model
	}
	if c.Ollama.Temperature != nil {
		cfg.Temperature = *c.Ollama.Temperature
	}
	return cfg
}

// NewSynthesizer builds the configured speech synthesizer.
func (c *Config) NewSynthesizer(logger zerolog.Logger) (voice.Synthesizer, error) {
	s := TTSSettings{}
	if c.TTS != nil {
		s = *c.TTS
	}

	switch s.Provider {
	case "", "google":
		return voice.NewGoogleTTS(logger, s.URL, s.Lang), nil
	case "openai":
		return voice.NewOpenAITTS(logger, voice.OpenAIConfig{
			URL:    s.URL,
			APIKey: apiKey(s.APIKey),
			Model:  s.Model,
			Voice:  s.Voice,
		}), nil
	default:
		return nil, fmt.Errorf("unknown tts provider: %q", s.Provider)
	}
}

// NewRecognizer builds the speech recognizer.
func (c *Config) NewRecognizer(logger zerolog.Logger) voice.Recognizer {
	s := STTSettings{}
	if c.STT != nil {
		s = *c.STT
	}
	return voice.NewWhisperRecognizer(logger, voice.WhisperConfig{
		URL:      s.URL,
		APIKey:   apiKey(s.APIKey),
		Model:    s.Model,
		Language: s.Language,
	})
}

// apiKey falls back to OPENAI_API_KEY when key is empty.
func apiKey(key string) string {
	if key != "" {
		return key
	}
	return os.Getenv("OPENAI_API_KEY")
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "coach", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
