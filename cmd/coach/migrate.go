// ABOUTME: CLI command for moving data between storage backends.
// ABOUTME: Copies the wellness log and chat history from csv to sqlite or back.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/coach/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateTo     string
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy data to another storage backend",
	Long: `Copy the wellness log and chat history from the current backend to another.

The destination lives in the same data directory and must be empty. The tip
log is not copied. After migrating, set "backend" in the config file to
switch over.

USAGE:

  coach migrate --to sqlite --dry-run   # Preview what would be copied
  coach migrate --to sqlite             # Copy csv files into coach.db
  coach --backend sqlite migrate --to csv`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		from := cfg.GetBackend()
		if migrateTo == from {
			return fmt.Errorf("already using the %s backend", from)
		}

		dst, err := cfg.OpenBackend(migrateTo)
		if err != nil {
			return fmt.Errorf("failed to open %s backend: %w", migrateTo, err)
		}
		defer dst.Close()

		empty, err := storage.IsEmpty(dst)
		if err != nil {
			return fmt.Errorf("failed to inspect %s backend: %w", migrateTo, err)
		}
		if !empty {
			return fmt.Errorf("the %s backend already has data; clear it first", migrateTo)
		}

		if migrateDryRun {
			color.New(color.FgYellow).Fprintln(out, "Dry run mode - no changes will be made")
			entries, err := repo.ListEntries(0)
			if err != nil {
				return err
			}
			turns, err := repo.ListChat(0)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Would copy %d entries and %d chat turns from %s to %s\n", len(entries), len(turns), from, migrateTo)
			return nil
		}

		summary, err := storage.MigrateData(repo, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.New(color.FgGreen).Fprintf(out, "✓ Copied %d entries and %d exchanges from %s to %s\n", summary.Entries, summary.Exchanges, from, migrateTo)
		if summary.Skipped > 0 {
			color.New(color.FgYellow).Fprintf(out, "⚠ Skipped %d unpaired chat turns\n", summary.Skipped)
		}
		fmt.Fprintf(out, "Set \"backend\": %q in the config file to use it.\n", migrateTo)
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", "sqlite", "destination backend: csv or sqlite")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	rootCmd.AddCommand(migrateCmd)
}
