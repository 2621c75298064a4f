// ABOUTME: MCP resource implementations for the wellness coach.
// ABOUTME: Provides coach://log/recent, coach://chat/recent, and coach://summary.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/coach/internal/coach"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	recentLogURI  = "coach://log/recent"
	recentChatURI = "coach://chat/recent"
	summaryURI    = "coach://summary"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         recentLogURI,
		Name:        "Recent Wellness Log",
		Description: "The last 7 log entries, the same window the coach sees",
		MIMEType:    "application/json",
	}, s.handleRecentLogResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         recentChatURI,
		Name:        "Recent Chat",
		Description: "The last 10 messages with the coach",
		MIMEType:    "application/json",
	}, s.handleRecentChatResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         summaryURI,
		Name:        "Wellness Summary",
		Description: "Average sleep and steps plus mood counts over the last 7 entries",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

// Resource handlers

func (s *Server) handleRecentLogResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	entries, err := s.repo.ListEntries(coach.ContextRows)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	return jsonResource(recentLogURI, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

func (s *Server) handleRecentChatResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	turns, err := s.repo.ListChat(10)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat: %w", err)
	}

	return jsonResource(recentChatURI, map[string]interface{}{
		"messages": turns,
		"count":    len(turns),
	})
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	entries, err := s.repo.ListEntries(coach.ContextRows)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	return jsonResource(summaryURI, map[string]interface{}{
		"generated_at": time.Now().Format(time.RFC3339),
		"summary":      coach.Summarize(entries),
	})
}

func jsonResource(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
