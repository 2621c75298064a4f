package voice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitText(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want []string
	}{
		{"empty", "   ", 10, nil},
		{"fits", "drink water", 20, []string{"drink water"}},
		{"word boundary", "drink more water daily", 11, []string{"drink more", "water daily"}},
		{"long word cut", "abcdefghij k", 4, []string{"abcd", "efgh", "ij k"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitText(tt.text, tt.max))
		})
	}
}

func TestSplitTextRespectsLimit(t *testing.T) {
	text := strings.Repeat("hydration matters every single day ", 20)
	for _, chunk := range splitText(text, GoogleTTSMaxChars) {
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), GoogleTTSMaxChars)
	}
}

func TestGoogleTTSConcatenatesChunks(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "en", r.URL.Query().Get("tl"))
		assert.NotEmpty(t, r.URL.Query().Get("q"))
		_, _ = w.Write([]byte("mp3|"))
	}))
	defer server.Close()

	g := NewGoogleTTS(zerolog.Nop(), server.URL, "")
	text := strings.Repeat("word ", 50) // 249 chars -> 3 chunks

	audio, err := g.Synthesize(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, "mp3|mp3|mp3|", string(audio))
}

func TestGoogleTTSErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	g := NewGoogleTTS(zerolog.Nop(), server.URL, "en")

	_, err := g.Synthesize(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")

	_, err = g.Synthesize(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestOpenAITTS(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/speech", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req speechRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hello there", req.Input)
		assert.Equal(t, "mp3", req.ResponseFormat)
		assert.Equal(t, "tts-1", req.Model)

		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("ID3fake"))
	}))
	defer server.Close()

	o := NewOpenAITTS(zerolog.Nop(), OpenAIConfig{URL: server.URL, APIKey: "sk-test"})

	audio, err := o.Synthesize(context.Background(), "  hello there ")
	require.NoError(t, err)
	assert.Equal(t, "ID3fake", string(audio))
}

func TestOpenAITTSRequiresKeyForHostedAPI(t *testing.T) {
	o := NewOpenAITTS(zerolog.Nop(), OpenAIConfig{})
	_, err := o.Synthesize(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}
