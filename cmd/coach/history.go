// ABOUTME: CLI commands for the coach chat log.
// ABOUTME: history shows past exchanges; history clear deletes them.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/coach/internal/coach"
	"github.com/harperreed/coach/internal/models"
	"github.com/spf13/cobra"
)

var (
	historyLimit    int
	historyClearYes bool
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"chats"},
	Short:   "Show past conversations with the coach",
	Long: `Show the most recent chat turns, oldest first.

EXAMPLES:

  coach history          # Last 10 turns
  coach history -n 0     # Everything
  coach history clear    # Delete the chat log`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		turns, err := newSession().History(historyLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(turns) == 0 {
			fmt.Fprintln(out, coach.NoHistory)
			return nil
		}

		you := color.New(color.FgCyan, color.Bold)
		bot := color.New(color.FgGreen, color.Bold)
		faint := color.New(color.Faint)
		for _, t := range turns {
			speaker := bot
			if t.Role == models.RoleUser {
				speaker = you
			}
			fmt.Fprintf(out, "%s %s %s\n", speaker.Sprint(t.Speaker()), faint.Sprintf("(%s)", t.Timestamp), t.Message)
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the chat log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !historyClearYes {
			ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Delete all chat history?")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Canceled.")
				return nil
			}
		}

		if err := newSession().Clear(); err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "✓ Chat history cleared")
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "max number of turns (0 for all)")
	historyClearCmd.Flags().BoolVarP(&historyClearYes, "yes", "y", false, "skip confirmation prompt")

	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}
