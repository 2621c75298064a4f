// ABOUTME: Export functionality for wellness data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats over any Repository.
package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/coach/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format for coach data.
type ExportData struct {
	Version    string            `json:"version" yaml:"version"`
	ExportedAt time.Time         `json:"exported_at" yaml:"exported_at"`
	Tool       string            `json:"tool" yaml:"tool"`
	Entries    []*models.Entry   `json:"entries" yaml:"entries"`
	Chat       []models.ChatTurn `json:"chat" yaml:"chat"`
}

// GetAllData retrieves all entries and chat turns for export.
func GetAllData(repo Repository) (*ExportData, error) {
	entries, err := repo.ListEntries(0)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	chat, err := repo.ListChat(0)
	if err != nil {
		return nil, fmt.Errorf("list chat: %w", err)
	}

	return &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "coach",
		Entries:    entries,
		Chat:       chat,
	}, nil
}

// ExportJSON exports all data as JSON.
func ExportJSON(repo Repository) ([]byte, error) {
	data, err := GetAllData(repo)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML.
func ExportYAML(repo Repository) ([]byte, error) {
	data, err := GetAllData(repo)
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version    string            `yaml:"version"`
		ExportedAt string            `yaml:"exported_at"`
		Tool       string            `yaml:"tool"`
		Entries    []*models.Entry   `yaml:"entries"`
		Chat       []models.ChatTurn `yaml:"chat"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Entries:    data.Entries,
		Chat:       data.Chat,
	}

	return yaml.Marshal(yamlData)
}

// ExportMarkdown exports the wellness log and chat transcript as Markdown.
// Rows whose date cannot be parsed are kept when since is set.
func ExportMarkdown(repo Repository, since *time.Time) (string, error) {
	data, err := GetAllData(repo)
	if err != nil {
		return "", err
	}

	entries := data.Entries
	if since != nil {
		var filtered []*models.Entry
		for _, e := range entries {
			d, ok := e.ParsedDate()
			if !ok || !d.Before(*since) {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Wellness Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	sb.WriteString("## Wellness Log\n\n")
	sb.WriteString("| Date | Sleep (h) | Meals | Mood | Steps |\n")
	sb.WriteString("|------|-----------|-------|------|-------|\n")
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
			e.Date, e.SleepText(), escapeCell(e.Meals), e.Mood, e.StepsText()))
	}

	if len(data.Chat) > 0 {
		sb.WriteString("\n## Chat History\n\n")
		for _, turn := range data.Chat {
			sb.WriteString(fmt.Sprintf("- **%s** (%s): %s\n", turn.Speaker(), turn.Timestamp, turn.Message))
		}
	}

	return sb.String(), nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
