// ABOUTME: Install Claude Code skill for coach
// ABOUTME: Embeds and installs the skill definition to ~/.claude/skills/

package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

//go:embed skill/SKILL.md
var skillFS embed.FS

var skillSkipConfirm bool

var installSkillCmd = &cobra.Command{
	Use:   "install-skill",
	Short: "Install Claude Code skill",
	Long: `Install the coach skill for Claude Code.

This copies the skill definition to ~/.claude/skills/coach/
so Claude Code can use coach commands contextually.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		return installSkill(cmd, filepath.Join(home, ".claude", "skills", "coach"))
	},
}

func init() {
	installSkillCmd.Flags().BoolVarP(&skillSkipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(installSkillCmd)
}

func installSkill(cmd *cobra.Command, skillDir string) error {
	out := cmd.OutOrStdout()
	skillPath := filepath.Join(skillDir, "SKILL.md")

	fmt.Fprintln(out, "┌─────────────────────────────────────────────────────────────┐")
	fmt.Fprintln(out, "│              Coach Skill for Claude Code                    │")
	fmt.Fprintln(out, "└─────────────────────────────────────────────────────────────┘")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "This will install the coach skill, enabling Claude Code to:")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  • Log sleep, meals, mood, and steps")
	fmt.Fprintln(out, "  • Ask the health coach about your week")
	fmt.Fprintln(out, "  • Pull wellness tips by category")
	fmt.Fprintln(out, "  • Use the /coach slash command")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Destination:")
	fmt.Fprintf(out, "  %s\n", skillPath)
	fmt.Fprintln(out)

	if _, err := os.Stat(skillPath); err == nil {
		fmt.Fprintln(out, "Note: A skill file already exists and will be overwritten.")
		fmt.Fprintln(out)
	}

	if !skillSkipConfirm {
		ok, err := confirm(cmd.InOrStdin(), out, "Install the coach skill?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Installation canceled.")
			return nil
		}
		fmt.Fprintln(out)
	}

	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		return fmt.Errorf("failed to read embedded skill: %w", err)
	}

	if err := os.MkdirAll(skillDir, 0750); err != nil {
		return fmt.Errorf("failed to create skill directory: %w", err)
	}

	if err := os.WriteFile(skillPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write skill file: %w", err)
	}

	color.New(color.FgGreen).Fprintln(out, "✓ Installed coach skill successfully!")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Claude Code will now recognize /coach commands.")
	fmt.Fprintln(out, "Try asking Claude: \"Log that I slept 7 hours and felt tired\" or \"How was my week?\"")
	return nil
}
