// ABOUTME: CLI commands for the daily wellness log.
// ABOUTME: log add, log list, and log clear.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/coach/internal/coach"
	"github.com/harperreed/coach/internal/models"
	"github.com/spf13/cobra"
)

var (
	logSleep float64
	logMeals string
	logMood  string
	logSteps int64
	logDate  string

	logListLimit int
	logClearYes  bool
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Record and review daily wellness entries",
}

var logAddCmd = &cobra.Command{
	Use:     "add",
	Aliases: []string{"a"},
	Short:   "Add today's wellness entry",
	Long: `Add a wellness entry. Mood is required; other fields may be omitted and
are stored as missing.

MOODS:

  Happy, Stressed, Tired, Energetic, Sad (case-insensitive)

EXAMPLES:

  coach log add --sleep 7.5 --meals "oats, salad, curry" --mood happy --steps 8000
  coach log add --mood tired --sleep 5
  coach log add --mood sad --date 2025-01-31`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mood, ok := models.ParseMood(logMood)
		if !ok {
			return fmt.Errorf("unknown mood: %q\nValid moods: %s", logMood, moodList())
		}

		day := time.Now()
		if logDate != "" {
			d, ok := models.ParseDate(logDate)
			if !ok {
				return fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", logDate)
			}
			day = d
		}

		e := &models.Entry{
			Date:  day.Format(models.DateLayout),
			Meals: strings.TrimSpace(logMeals),
			Mood:  string(mood),
		}
		if cmd.Flags().Changed("sleep") {
			sleep := logSleep
			e.SleepHours = &sleep
		}
		if cmd.Flags().Changed("steps") {
			steps := logSteps
			e.Steps = &steps
		}
		if err := models.ValidateEntry(e); err != nil {
			return err
		}

		if err := repo.AppendEntry(e); err != nil {
			return fmt.Errorf("failed to save entry: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Logged %s\n", e.Date)
		fmt.Fprintf(out, "  sleep %s h, steps %s, mood %s\n", orNA(e.SleepText()), orNA(e.StepsText()), e.Mood)
		return nil
	},
}

var logListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List recent wellness entries",
	Long: `List wellness entries, oldest first.

EXAMPLES:

  coach log list          # Last 7 entries
  coach log list -n 30    # Last 30 entries
  coach log list -n 0     # Everything`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := repo.ListEntries(logListLimit)
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No entries found.")
			return nil
		}

		printEntries(cmd, entries)
		return nil
	},
}

var logClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every wellness entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !logClearYes {
			ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Delete all wellness entries?")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Canceled.")
				return nil
			}
		}

		if err := repo.ClearEntries(); err != nil {
			return fmt.Errorf("failed to clear log: %w", err)
		}
		color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "✓ Wellness log cleared")
		return nil
	},
}

func printEntries(cmd *cobra.Command, entries []*models.Entry) {
	out := cmd.OutOrStdout()
	faint := color.New(color.Faint)

	faint.Fprintf(out, "%s %s %s %s %s\n",
		padRight("DATE", 11), padRight("SLEEP", 6), padRight("STEPS", 7), padRight("MOOD", 10), "MEALS")
	for _, e := range entries {
		fmt.Fprintf(out, "%s %s %s %s %s\n",
			padRight(e.Date, 11),
			padRight(orNA(e.SleepText()), 6),
			padRight(orNA(e.StepsText()), 7),
			padRight(orNA(e.Mood), 10),
			faint.Sprint(truncate(orNA(e.Meals), 40)))
	}
}

func moodList() string {
	names := make([]string, len(models.AllMoods))
	for i, m := range models.AllMoods {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

func orNA(s string) string {
	if s == "" {
		return coach.Missing
	}
	return s
}

func init() {
	logAddCmd.Flags().Float64Var(&logSleep, "sleep", 0, "hours slept")
	logAddCmd.Flags().StringVar(&logMeals, "meals", "", "what you ate")
	logAddCmd.Flags().StringVar(&logMood, "mood", "", "mood: "+strings.ToLower(moodList()))
	logAddCmd.Flags().Int64Var(&logSteps, "steps", 0, "steps walked")
	logAddCmd.Flags().StringVar(&logDate, "date", "", "entry date (YYYY-MM-DD, default today)")
	_ = logAddCmd.MarkFlagRequired("mood")

	logListCmd.Flags().IntVarP(&logListLimit, "limit", "n", coach.ContextRows, "max number of entries (0 for all)")

	logClearCmd.Flags().BoolVarP(&logClearYes, "yes", "y", false, "skip confirmation prompt")

	logCmd.AddCommand(logAddCmd, logListCmd, logClearCmd)
	rootCmd.AddCommand(logCmd)
}
