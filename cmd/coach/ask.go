// ABOUTME: CLI command for asking the health coach a question.
// ABOUTME: Questions can be typed or transcribed from an audio file.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/coach/internal/coach"
	"github.com/harperreed/coach/internal/voice"
	"github.com/spf13/cobra"
)

var (
	askSpeak bool
	askAudio string
)

var askCmd = &cobra.Command{
	Use:   "ask [question...]",
	Short: "Ask the health coach",
	Long: `Ask the coach a question. The last 7 log entries are sent along as context.

Asking for past answers ("show me the last 3 chats", "last chat") replays
the chat log instead of calling the model.

EXAMPLES:

  coach ask "How can I get more energy in the afternoon?"
  coach ask show me the last 2 chats
  coach ask --audio question.wav --speak`,
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.TrimSpace(strings.Join(args, " "))

		if askAudio != "" {
			bridge, err := newBridge()
			if err != nil {
				return err
			}
			heard := bridge.TranscribeFile(cmd.Context(), askAudio)
			if voice.IsFailure(heard) {
				color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "⚠ %s\n", heard)
				return nil
			}
			color.New(color.Faint).Fprintf(cmd.OutOrStdout(), "You said: %s\n", heard)
			question = heard
		}

		if question == "" {
			return fmt.Errorf("a question is required (pass it as arguments or use --audio)")
		}

		reply, err := newSession().Ask(cmd.Context(), question)
		if err != nil && reply == "" {
			return err
		}

		out := cmd.OutOrStdout()
		if coach.IsError(reply) {
			color.New(color.FgRed).Fprintln(out, reply)
		} else {
			fmt.Fprintln(out, reply)
		}
		if err != nil {
			color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "⚠ %v\n", err)
		}

		if askSpeak && !coach.IsError(reply) {
			speakTo(cmd, reply)
		}
		return nil
	},
}

func init() {
	askCmd.Flags().BoolVar(&askSpeak, "speak", false, "also synthesize the reply to audio")
	askCmd.Flags().StringVar(&askAudio, "audio", "", "transcribe the question from this audio file")

	rootCmd.AddCommand(askCmd)
}
