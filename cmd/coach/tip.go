// ABOUTME: CLI command for showing a random wellness tip.
// ABOUTME: Supports category filtering, listing categories, and speaking the tip.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	tipCategory       string
	tipSpeak          bool
	tipListCategories bool
)

var tipCmd = &cobra.Command{
	Use:   "tip",
	Short: "Show a random wellness tip",
	Long: `Show a random wellness tip, optionally from one category. Every tip shown
is recorded in the tip log.

EXAMPLES:

  coach tip                        # Any category
  coach tip --category hydration   # Category match is case-insensitive
  coach tip --categories           # List known categories
  coach tip --speak                # Also write the tip as audio`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		selector, err := newSelector()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if tipListCategories {
			fmt.Fprintln(out, strings.Join(selector.Categories(), "\n"))
			return nil
		}

		tip := selector.Daily(tipCategory)
		color.New(color.FgCyan, color.Bold).Fprintf(out, "💡 %s\n", tip.Text)
		if tip.Category != "" {
			color.New(color.Faint).Fprintf(out, "   %s\n", tip.Category)
		}

		if tipSpeak {
			speakTo(cmd, tip.Text)
		}
		return nil
	},
}

func init() {
	tipCmd.Flags().StringVarP(&tipCategory, "category", "c", "", "only pick tips from this category")
	tipCmd.Flags().BoolVar(&tipSpeak, "speak", false, "also synthesize the tip to audio")
	tipCmd.Flags().BoolVar(&tipListCategories, "categories", false, "list tip categories and exit")

	rootCmd.AddCommand(tipCmd)
}
