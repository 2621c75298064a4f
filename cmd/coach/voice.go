// ABOUTME: CLI commands for text-to-speech and speech-to-text.
// ABOUTME: speak writes the fixed audio file; transcribe prints recognized text.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/coach/internal/voice"
	"github.com/spf13/cobra"
)

var speakCmd = &cobra.Command{
	Use:   "speak <text...>",
	Short: "Convert text to speech",
	Long: `Synthesize text to audio. The result always goes to the same file
(audio/response.mp3 under the data directory), replacing the previous one.

EXAMPLES:

  coach speak "Time for a walk"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !speakTo(cmd, strings.Join(args, " ")) {
			return fmt.Errorf("speech synthesis failed")
		}
		return nil
	},
}

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <file>",
	Short: "Convert recorded speech to text",
	Long: `Transcribe an audio file using the configured speech recognizer.

EXAMPLES:

  coach transcribe question.wav`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bridge, err := newBridge()
		if err != nil {
			return err
		}

		text := bridge.TranscribeFile(cmd.Context(), args[0])
		if voice.IsFailure(text) {
			color.New(color.FgRed).Fprintln(cmd.ErrOrStderr(), text)
			return fmt.Errorf("transcription failed")
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

// speakTo synthesizes text and reports where the audio went. It returns
// false when synthesis failed.
func speakTo(cmd *cobra.Command, text string) bool {
	bridge, err := newBridge()
	if err != nil {
		color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "⚠ %v\n", err)
		return false
	}

	result := bridge.Speak(cmd.Context(), text)
	if voice.IsFailure(result) {
		color.New(color.FgRed).Fprintln(cmd.ErrOrStderr(), result)
		return false
	}
	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "🔊 Audio saved to %s\n", result)
	return true
}

func init() {
	rootCmd.AddCommand(speakCmd)
	rootCmd.AddCommand(transcribeCmd)
}
