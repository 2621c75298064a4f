// ABOUTME: Root Cobra command for coach CLI.
// ABOUTME: Loads config and opens the storage backend via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/harperreed/coach/internal/config"
	"github.com/harperreed/coach/internal/logging"
	"github.com/harperreed/coach/internal/storage"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	repo   storage.Repository
	logger = zerolog.Nop()

	verbose     bool
	dataDirFlag string
	backendFlag string
)

var rootCmd = &cobra.Command{
	Use:   "coach",
	Short: "Personal wellness log with an AI health coach",
	Long: `Coach keeps a daily wellness log and answers questions about it using a
local language model.

WHAT IT TRACKS:

  Each day: hours of sleep, meals, mood (Happy, Stressed, Tired, Energetic,
  Sad), and steps walked.

QUICK START:

  $ coach log add --sleep 7.5 --meals "oats, salad" --mood happy --steps 8000
  $ coach log list                       # Last 7 days
  $ coach tip --category hydration       # A random tip
  $ coach ask "How can I sleep better?"  # Ask the coach
  $ coach ask "show me the last 3 chats" # Replay past answers
  $ coach summary                        # Averages and moods for the week

VOICE:

  $ coach tip --speak                    # Writes audio/response.mp3
  $ coach ask --audio question.wav       # Transcribe, then ask
  $ coach transcribe note.wav

THE COACH:

  Questions go to a local Ollama server (default http://localhost:11434,
  model mistral). The last 7 log entries are included as context.

MCP INTEGRATION:

  Run 'coach mcp' to start the Model Context Protocol server:

  {
    "mcpServers": {
      "coach": { "command": "coach", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  CSV files under ~/.local/share/coach by default (user_logs.csv,
  chat_history.csv, tip_log.csv). Set "backend": "sqlite" in
  ~/.config/coach/config.json to use coach.db instead.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.New(verbose)

		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if dataDirFlag != "" {
			c.DataDir = dataDirFlag
		}
		if backendFlag != "" {
			c.Backend = backendFlag
		}
		cfg = c

		if !needsStorage(cmd) {
			return nil
		}

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		logger.Debug().Str("backend", cfg.GetBackend()).Str("data_dir", cfg.GetDataDir()).Msg("storage opened")
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			err := repo.Close()
			repo = nil
			return err
		}
		return nil
	},
}

func needsStorage(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "version", "install-skill", "speak", "transcribe":
		return false
	}
	return true
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "storage backend: csv or sqlite (overrides config)")
}
