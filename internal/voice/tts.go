// ABOUTME: Text-to-speech providers returning mp3 audio bytes.
// ABOUTME: Google translate TTS (keyless) and OpenAI-compatible /v1/audio/speech.
package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// ErrEmptyText is returned when there is nothing to synthesize.
var ErrEmptyText = errors.New("no text to speak")

// Synthesizer converts text to mp3 audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// GoogleTTSMaxChars is the longest text the translate endpoint accepts per request.
const GoogleTTSMaxChars = 100

// DefaultGoogleTTSURL is the translate_tts endpoint.
const DefaultGoogleTTSURL = "https://translate.google.com/translate_tts"

// GoogleTTS uses the Google Translate speech endpoint. Long text is split
// on word boundaries and the mp3 segments are concatenated.
type GoogleTTS struct {
	url    string
	lang   string
	client *http.Client
	logger zerolog.Logger
}

// NewGoogleTTS creates a GoogleTTS. Empty url and lang default to the public
// endpoint and English.
func NewGoogleTTS(logger zerolog.Logger, endpoint, lang string) *GoogleTTS {
	if endpoint == "" {
		endpoint = DefaultGoogleTTSURL
	}
	if lang == "" {
		lang = "en"
	}
	return &GoogleTTS{
		url:    endpoint,
		lang:   lang,
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger.With().Str("provider", "google-tts").Logger(),
	}
}

// Synthesize fetches speech for text.
func (g *GoogleTTS) Synthesize(ctx context.Context, text string) ([]byte, error) {
	chunks := splitText(text, GoogleTTSMaxChars)
	if len(chunks) == 0 {
		return nil, ErrEmptyText
	}

	var audio bytes.Buffer
	for i, chunk := range chunks {
		if err := g.fetch(ctx, chunk, i, len(chunks), &audio); err != nil {
			return nil, fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}
	}

	g.logger.Debug().Int("chunks", len(chunks)).Int("bytes", audio.Len()).Msg("synthesis complete")
	return audio.Bytes(), nil
}

func (g *GoogleTTS) fetch(ctx context.Context, chunk string, idx, total int, w io.Writer) error {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("q", chunk)
	q.Set("tl", g.lang)
	q.Set("client", "tw-ob")
	q.Set("ttsspeed", "1")
	q.Set("total", strconv.Itoa(total))
	q.Set("idx", strconv.Itoa(idx))
	q.Set("textlen", strconv.Itoa(utf8.RuneCountInString(chunk)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.url+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("google tts returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	return nil
}

// DefaultOpenAIURL is the base URL for the hosted OpenAI audio APIs.
const DefaultOpenAIURL = "https://api.openai.com"

// OpenAIConfig configures an OpenAI-compatible speech endpoint.
type OpenAIConfig struct {
	URL     string
	APIKey  string
	Model   string
	Voice   string
	Timeout time.Duration
}

// OpenAITTS calls POST {url}/v1/audio/speech. Local servers that mimic the
// API work without a key.
type OpenAITTS struct {
	cfg    OpenAIConfig
	client *http.Client
	logger zerolog.Logger
}

// NewOpenAITTS creates an OpenAITTS, filling defaults for empty fields.
func NewOpenAITTS(logger zerolog.Logger, cfg OpenAIConfig) *OpenAITTS {
	if cfg.URL == "" {
		cfg.URL = DefaultOpenAIURL
	}
	cfg.URL = strings.TrimRight(cfg.URL, "/")
	if cfg.Model == "" {
		cfg.Model = "tts-1"
	}
	if cfg.Voice == "" {
		cfg.Voice = "nova"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &OpenAITTS{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger.With().Str("provider", "openai-tts").Logger(),
	}
}

type speechRequest struct {
	Model          string `json:"model"`
	Input          string `json:"input"`
	Voice          string `json:"voice"`
	ResponseFormat string `json:"response_format"`
}

// Synthesize requests mp3 speech for text.
func (o *OpenAITTS) Synthesize(ctx context.Context, text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	if o.cfg.APIKey == "" && o.cfg.URL == DefaultOpenAIURL {
		return nil, errors.New("OpenAI API key not configured")
	}

	body, err := json.Marshal(speechRequest{
		Model:          o.cfg.Model,
		Input:          text,
		Voice:          o.cfg.Voice,
		ResponseFormat: "mp3",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.cfg.URL+"/v1/audio/speech", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if o.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+o.cfg.APIKey)
	}

	o.logger.Debug().Str("voice", o.cfg.Voice).Str("model", o.cfg.Model).Int("text_len", len(text)).Msg("sending TTS request")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		o.logger.Error().Int("status", resp.StatusCode).Str("body", string(b)).Msg("TTS request failed")
		return nil, fmt.Errorf("tts returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return audio, nil
}

// splitText breaks text into chunks of at most max runes, preferring word
// boundaries. Words longer than max are cut.
func splitText(text string, max int) []string {
	var chunks []string
	var cur strings.Builder
	curLen := 0

	flush := func() {
		if curLen > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
			curLen = 0
		}
	}

	for _, word := range strings.Fields(text) {
		for utf8.RuneCountInString(word) > max {
			flush()
			r := []rune(word)
			chunks = append(chunks, string(r[:max]))
			word = string(r[max:])
		}

		n := utf8.RuneCountInString(word)
		if curLen > 0 && curLen+1+n > max {
			flush()
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(word)
		curLen += n
	}
	flush()

	return chunks
}
