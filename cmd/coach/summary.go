// ABOUTME: CLI command for the weekly wellness dashboard.
// ABOUTME: Shows the recent rows with average sleep, steps, and mood counts.
package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/harperreed/coach/internal/coach"
	"github.com/spf13/cobra"
)

var summaryJSON bool

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize the last 7 log entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := repo.ListEntries(coach.ContextRows)
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}
		s := coach.Summarize(rows)

		out := cmd.OutOrStdout()
		if summaryJSON {
			data, err := json.MarshalIndent(s, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		if len(s.Rows) == 0 {
			fmt.Fprintln(out, coach.EmptyLog)
			return nil
		}

		printEntries(cmd, s.Rows)
		fmt.Fprintln(out)

		bold := color.New(color.Bold)
		bold.Fprint(out, "Avg sleep: ")
		fmt.Fprintln(out, formatAvg(s.AvgSleep, "%.1f h"))
		bold.Fprint(out, "Avg steps: ")
		fmt.Fprintln(out, formatAvg(s.AvgSteps, "%.0f"))

		moods := make([]string, 0, len(s.MoodCounts))
		for m := range s.MoodCounts {
			moods = append(moods, m)
		}
		sort.Slice(moods, func(i, j int) bool {
			if s.MoodCounts[moods[i]] != s.MoodCounts[moods[j]] {
				return s.MoodCounts[moods[i]] > s.MoodCounts[moods[j]]
			}
			return moods[i] < moods[j]
		})
		bold.Fprintln(out, "Moods:")
		for _, m := range moods {
			fmt.Fprintf(out, "  %s %d\n", padRight(m, 10), s.MoodCounts[m])
		}
		return nil
	},
}

func formatAvg(v *float64, format string) string {
	if v == nil {
		return coach.Missing
	}
	return fmt.Sprintf(format, *v)
}

func init() {
	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "print the summary as JSON")
	rootCmd.AddCommand(summaryCmd)
}
