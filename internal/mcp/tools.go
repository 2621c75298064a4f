// ABOUTME: MCP tool implementations for the wellness coach.
// ABOUTME: Log entries, read them back, draw tips, and talk to the coach.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/coach/internal/coach"
	"github.com/harperreed/coach/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_entry",
		Description: "Record a day's sleep hours, meals, mood, and steps",
	}, s.handleLogEntry)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_entries",
		Description: "List the most recent wellness log entries",
	}, s.handleListEntries)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "clear_log",
		Description: "Delete every wellness log entry (requires confirm=true)",
	}, s.handleClearLog)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_tip",
		Description: "Get a random health tip, optionally from one category",
	}, s.handleGetTip)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "ask_coach",
		Description: "Ask the health coach a question; the last 7 log entries are shared as context",
	}, s.handleAskCoach)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "chat_history",
		Description: "Show recent messages between the user and the coach",
	}, s.handleChatHistory)
}

// Tool input/output types

type logEntryInput struct {
	Date       string   `json:"date,omitempty" jsonschema:"Day of the entry (YYYY-MM-DD), defaults to today"`
	SleepHours *float64 `json:"sleep_hours,omitempty" jsonschema:"Hours slept"`
	Meals      string   `json:"meals,omitempty" jsonschema:"What was eaten"`
	Mood       string   `json:"mood" jsonschema:"One of Happy, Stressed, Tired, Energetic, Sad"`
	Steps      *int64   `json:"steps,omitempty" jsonschema:"Steps walked"`
}

type entryOutput struct {
	Entry   *models.Entry `json:"entry"`
	Message string        `json:"message"`
}

type listEntriesInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 7)"`
}

type clearLogInput struct {
	Confirm bool `json:"confirm" jsonschema:"Must be true to delete the log"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type getTipInput struct {
	Category string `json:"category,omitempty" jsonschema:"Tip category such as Hydration or Sleep; empty for any"`
}

type askCoachInput struct {
	Question string `json:"question" jsonschema:"The question for the coach"`
}

type askCoachOutput struct {
	Reply  string `json:"reply"`
	Failed bool   `json:"failed"`
}

type chatHistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max messages (default 10)"`
}

// Tool handlers

func (s *Server) handleLogEntry(ctx context.Context, req *mcp.CallToolRequest, input logEntryInput) (*mcp.CallToolResult, entryOutput, error) {
	mood, ok := models.ParseMood(input.Mood)
	if !ok {
		return nil, entryOutput{}, fmt.Errorf("unknown mood: %q", input.Mood)
	}

	day := time.Now()
	if input.Date != "" {
		d, ok := models.ParseDate(input.Date)
		if !ok {
			return nil, entryOutput{}, fmt.Errorf("invalid date: %q", input.Date)
		}
		day = d
	}

	e := &models.Entry{
		Date:       day.Format(models.DateLayout),
		SleepHours: input.SleepHours,
		Meals:      strings.TrimSpace(input.Meals),
		Mood:       string(mood),
		Steps:      input.Steps,
	}

	if err := models.ValidateEntry(e); err != nil {
		return nil, entryOutput{}, err
	}

	if err := s.repo.AppendEntry(e); err != nil {
		return nil, entryOutput{}, fmt.Errorf("failed to log entry: %w", err)
	}

	return nil, entryOutput{
		Entry:   e,
		Message: fmt.Sprintf("Logged %s: sleep %s h, steps %s, mood %s", e.Date, orNA(e.SleepText()), orNA(e.StepsText()), e.Mood),
	}, nil
}

func (s *Server) handleListEntries(ctx context.Context, req *mcp.CallToolRequest, input listEntriesInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = coach.ContextRows
	}

	entries, err := s.repo.ListEntries(input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list entries: %w", err)
	}

	if len(entries) == 0 {
		return nil, map[string]interface{}{"message": "No entries found."}, nil
	}

	return nil, map[string]interface{}{"entries": entries}, nil
}

func (s *Server) handleClearLog(ctx context.Context, req *mcp.CallToolRequest, input clearLogInput) (*mcp.CallToolResult, simpleOutput, error) {
	if !input.Confirm {
		return nil, simpleOutput{}, errors.New("refusing to clear log without confirm=true")
	}

	if err := s.repo.ClearEntries(); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to clear log: %w", err)
	}

	return nil, simpleOutput{Message: "Wellness log cleared."}, nil
}

func (s *Server) handleGetTip(ctx context.Context, req *mcp.CallToolRequest, input getTipInput) (*mcp.CallToolResult, models.Tip, error) {
	return nil, s.tips.Daily(strings.TrimSpace(input.Category)), nil
}

func (s *Server) handleAskCoach(ctx context.Context, req *mcp.CallToolRequest, input askCoachInput) (*mcp.CallToolResult, askCoachOutput, error) {
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return nil, askCoachOutput{}, errors.New("question is required")
	}

	reply, err := s.session.Ask(ctx, question)
	if err != nil {
		return nil, askCoachOutput{}, err
	}

	return nil, askCoachOutput{Reply: reply, Failed: coach.IsError(reply)}, nil
}

func (s *Server) handleChatHistory(ctx context.Context, req *mcp.CallToolRequest, input chatHistoryInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 10
	}

	turns, err := s.session.History(input.Limit)
	if err != nil {
		return nil, nil, err
	}

	if len(turns) == 0 {
		return nil, map[string]interface{}{"message": coach.NoHistory}, nil
	}

	return nil, map[string]interface{}{"messages": turns}, nil
}

func orNA(s string) string {
	if s == "" {
		return coach.Missing
	}
	return s
}
