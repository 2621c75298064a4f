// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"github.com/harperreed/coach/internal/llm"
	"github.com/harperreed/coach/internal/logging"
	"github.com/harperreed/coach/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "coach": {
        "command": "coach",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  log_entry      Record a day's sleep, meals, mood, and steps
  list_entries   List recent log entries
  clear_log      Delete the wellness log
  get_tip        Random wellness tip, optionally by category
  ask_coach      Ask the health coach a question
  chat_history   Recent coach conversations

AVAILABLE RESOURCES:

  coach://log/recent    Last 7 log entries
  coach://chat/recent   Recent chat turns
  coach://summary       Averages and mood counts`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		selector, err := newSelector()
		if err != nil {
			return err
		}

		log := logging.Component(logger, "mcp")
		ollama := llm.NewOllamaClient(logger, cfg.OllamaConfig())
		if err := ollama.Health(cmd.Context()); err != nil {
			log.Warn().Err(err).Str("model", ollama.Model()).Msg("ollama not reachable, ask_coach will report errors")
		}

		server, err := mcp.NewServer(repo, selector, newSessionWith(ollama))
		if err != nil {
			return err
		}

		log.Debug().Msg("server starting on stdio")
		return server.Serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
