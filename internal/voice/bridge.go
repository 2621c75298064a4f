// ABOUTME: Voice Bridge: speak text to a fixed mp3 path and transcribe audio.
// ABOUTME: Failures are returned as strings prefixed with an error marker.
package voice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/logging"
	"github.com/rs/zerolog"
)

// OutputFile is the name of the single synthesized audio file.
const OutputFile = "response.mp3"

// FailurePrefix starts every failure string returned by the Bridge.
const FailurePrefix = "❌"

// CouldNotUnderstand is returned when the audio held no recognizable speech.
const CouldNotUnderstand = FailurePrefix + " Could not understand the audio."

// Bridge connects the CLI to a Synthesizer and a Recognizer.
type Bridge struct {
	synth      Synthesizer
	recognizer Recognizer
	outputPath string
	tempDir    string
	logger     zerolog.Logger
}

// NewBridge creates a Bridge writing speech to audioDir/response.mp3.
// Either provider may be nil, in which case that direction reports an error.
func NewBridge(logger zerolog.Logger, synth Synthesizer, recognizer Recognizer, audioDir string) *Bridge {
	return &Bridge{
		synth:      synth,
		recognizer: recognizer,
		outputPath: filepath.Join(audioDir, OutputFile),
		tempDir:    os.TempDir(),
		logger:     logging.Component(logger, "voice"),
	}
}

// OutputPath returns where Speak writes audio.
func (b *Bridge) OutputPath() string {
	return b.outputPath
}

// Speak synthesizes text and writes it to OutputPath, replacing any earlier
// file. It returns the path, or a failure string.
func (b *Bridge) Speak(ctx context.Context, text string) string {
	if err := b.speak(ctx, text); err != nil {
		b.logger.Warn().Err(err).Msg("speech synthesis failed")
		return fmt.Sprintf("%s TTS generation failed: %v", FailurePrefix, err)
	}
	return b.outputPath
}

func (b *Bridge) speak(ctx context.Context, text string) error {
	if b.synth == nil {
		return errors.New("no speech synthesizer configured")
	}

	audio, err := b.synth.Synthesize(ctx, text)
	if err != nil {
		return err
	}
	if len(audio) == 0 {
		return errors.New("synthesizer returned no audio")
	}

	if err := os.MkdirAll(filepath.Dir(b.outputPath), 0750); err != nil {
		return fmt.Errorf("create audio directory: %w", err)
	}

	tmp := b.outputPath + ".tmp"
	if err := os.WriteFile(tmp, audio, 0600); err != nil {
		return fmt.Errorf("write audio: %w", err)
	}
	if err := os.Rename(tmp, b.outputPath); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write audio: %w", err)
	}
	return nil
}

// Transcribe copies audio to a temporary wav file and recognizes it. It
// returns the transcript, CouldNotUnderstand, or a failure string.
func (b *Bridge) Transcribe(ctx context.Context, audio io.Reader) string {
	path, err := b.spool(audio)
	if err != nil {
		b.logger.Warn().Err(err).Msg("could not buffer audio")
		return fmt.Sprintf("%s Error processing audio: %v", FailurePrefix, err)
	}
	defer os.Remove(path)

	if b.recognizer == nil {
		return fmt.Sprintf("%s Recognition error: %v", FailurePrefix, errors.New("no speech recognizer configured"))
	}

	text, err := b.recognizer.Recognize(ctx, path)
	switch {
	case errors.Is(err, ErrUnintelligible):
		return CouldNotUnderstand
	case err != nil:
		b.logger.Warn().Err(err).Msg("speech recognition failed")
		return fmt.Sprintf("%s Recognition error: %v", FailurePrefix, err)
	}
	return text
}

// TranscribeFile opens path and transcribes it.
func (b *Bridge) TranscribeFile(ctx context.Context, path string) string {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Sprintf("%s Error processing audio: %v", FailurePrefix, err)
	}
	defer f.Close()

	return b.Transcribe(ctx, f)
}

func (b *Bridge) spool(audio io.Reader) (string, error) {
	path := filepath.Join(b.tempDir, "coach-"+uuid.New().String()+".wav")

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, audio); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return path, nil
}

// IsFailure reports whether s is a Bridge failure string.
func IsFailure(s string) bool {
	return strings.HasPrefix(s, FailurePrefix)
}
